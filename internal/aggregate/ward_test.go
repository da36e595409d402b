package aggregate

import (
	"testing"

	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/pkg/constants"
	"github.com/civicpulse/tif-surplus/pkg/mathutil"
)

func TestByWardCoverageIsNotAWeight(t *testing.T) {
	// One district worth $100 per method, present in ward 1 at 10%
	// coverage and ward 2 at 90%. Both wards receive the full $100.
	snap := &dataset.Snapshot{
		Districts: []dataset.DistrictRecord{
			district("A", "T-001", 100, 100, 100, 100, 100),
		},
		Overlaps: []dataset.WardOverlap{
			{RawDistrictNumber: "TF001", WardID: 1, Coverage: 0.1},
			{RawDistrictNumber: "TF001", WardID: 2, Coverage: 0.9},
		},
	}

	totals := ByWard(snap)
	if len(totals) != 2 {
		t.Fatalf("expected 2 wards, got %d", len(totals))
	}
	for _, w := range totals {
		if w.Raw.Unallocated != 100 {
			t.Errorf("ward %d raw unallocated = %v, expected the full 100", w.WardID, w.Raw.Unallocated)
		}
	}

	// Coverage survives for display.
	if totals[0].Districts[0].Coverage != 0.1 || totals[1].Districts[0].Coverage != 0.9 {
		t.Errorf("coverage not carried through: %+v, %+v", totals[0].Districts, totals[1].Districts)
	}
}

func TestByWardSumsDistrictsPerWard(t *testing.T) {
	snap := &dataset.Snapshot{
		Districts: []dataset.DistrictRecord{
			district("A", "T-001", 1000, 2000, 3000, 4000, 5000),
			district("B", "T-002", 100, 200, 300, 400, 500),
		},
		Overlaps: []dataset.WardOverlap{
			{RawDistrictNumber: "TF001", WardID: 27, Coverage: 0.5},
			{RawDistrictNumber: "TF002", WardID: 27, Coverage: 0.25},
		},
	}

	totals := ByWard(snap)
	if len(totals) != 1 {
		t.Fatalf("expected 1 ward, got %d", len(totals))
	}

	w := totals[0]
	if w.WardID != 27 {
		t.Errorf("ward id = %d", w.WardID)
	}
	if w.Raw.Unallocated != 1100 || w.Raw.CTUWeighted != 5500 {
		t.Errorf("raw sums wrong: %+v", w.Raw)
	}
	if len(w.Districts) != 2 {
		t.Errorf("expected 2 district entries, got %d", len(w.Districts))
	}

	// Apportioned totals track the raw totals by the fixed shares.
	if !mathutil.WithinTolerance(w.CPS.Unallocated, 1100*constants.CPSShare, 1e-6) {
		t.Errorf("CPS unallocated = %v, expected %v", w.CPS.Unallocated, 1100*constants.CPSShare)
	}
	if !mathutil.WithinTolerance(w.City.CityOMB, 2200*constants.CityShare, 1e-6) {
		t.Errorf("City cityOMB = %v, expected %v", w.City.CityOMB, 2200*constants.CityShare)
	}
}

func TestByWardDropsUnjoinableRows(t *testing.T) {
	snap := &dataset.Snapshot{
		Districts: []dataset.DistrictRecord{
			district("A", "T-001", 100, 100, 100, 100, 100),
		},
		Overlaps: []dataset.WardOverlap{
			{RawDistrictNumber: "TF001", WardID: 1, Coverage: 1},
			// No matching district record.
			{RawDistrictNumber: "TF099", WardID: 2, Coverage: 1},
			// Malformed identifier fails closed.
			{RawDistrictNumber: "TFxyz", WardID: 3, Coverage: 1},
		},
	}

	totals := ByWard(snap)
	if len(totals) != 1 || totals[0].WardID != 1 {
		t.Fatalf("expected only ward 1 to survive, got %+v", totals)
	}
}

func TestByWardDistrictInMultipleWardsAndOrdering(t *testing.T) {
	snap := &dataset.Snapshot{
		Districts: []dataset.DistrictRecord{
			district("A", "T-007", 10, 20, 30, 40, 50),
		},
		Overlaps: []dataset.WardOverlap{
			{RawDistrictNumber: "TF007", WardID: 42, Coverage: 0.3},
			{RawDistrictNumber: "TF007", WardID: 5, Coverage: 0.7},
		},
	}

	totals := ByWard(snap)
	if len(totals) != 2 {
		t.Fatalf("expected 2 wards, got %d", len(totals))
	}
	if totals[0].WardID != 5 || totals[1].WardID != 42 {
		t.Errorf("wards not ordered by id: %d, %d", totals[0].WardID, totals[1].WardID)
	}
}

func TestFindDistrict(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("Kinzie Industrial", "T-001", 1, 2, 3, 4, 5),
		district("Near South", "T-002", 6, 7, 8, 9, 10),
	}

	d, ok := FindDistrict(districts, "Near South")
	if !ok || d.Number != "T-002" {
		t.Errorf("FindDistrict(Near South) = %+v, %v", d, ok)
	}

	if _, ok := FindDistrict(districts, "Nowhere"); ok {
		t.Error("FindDistrict returned ok for unknown name")
	}
}

func TestFindWard(t *testing.T) {
	totals := []WardTotal{{WardID: 5}, {WardID: 42}}

	w, ok := FindWard(totals, 42)
	if !ok || w.WardID != 42 {
		t.Errorf("FindWard(42) = %+v, %v", w, ok)
	}
	if _, ok := FindWard(totals, 1); ok {
		t.Error("FindWard returned ok for unknown ward")
	}
}
