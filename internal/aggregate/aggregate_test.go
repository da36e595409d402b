package aggregate

import (
	"testing"

	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/pkg/apportion"
	"github.com/civicpulse/tif-surplus/pkg/constants"
	"github.com/civicpulse/tif-surplus/pkg/mathutil"
)

func district(name, number string, amounts ...float64) dataset.DistrictRecord {
	return dataset.DistrictRecord{
		Name:   name,
		Number: number,
		Amounts: dataset.MethodAmounts{
			Unallocated:   amounts[0],
			CityOMB:       amounts[1],
			CTUAverage:    amounts[2],
			CTUPolynomial: amounts[3],
			CTUWeighted:   amounts[4],
		},
	}
}

func TestCitywideTotals(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("A", "T-001", 1000000, 500000, 400000, 450000, 420000),
		district("B", "T-002", 2000000, 900000, 800000, 850000, 820000),
	}

	totals := CitywideTotals(districts)
	if totals.Unallocated != 3000000 {
		t.Errorf("Unallocated total = %v, expected 3000000", totals.Unallocated)
	}
	if totals.CityOMB != 1400000 {
		t.Errorf("CityOMB total = %v, expected 1400000", totals.CityOMB)
	}
	if totals.CTUPolynomial != 1300000 {
		t.Errorf("CTUPolynomial total = %v, expected 1300000", totals.CTUPolynomial)
	}
}

func TestCitywideTotalsEmpty(t *testing.T) {
	totals := CitywideTotals(nil)
	if totals != (dataset.MethodAmounts{}) {
		t.Errorf("expected zero totals for empty input, got %+v", totals)
	}
}

func TestApportionmentCommutesWithCitywideTotals(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("A", "T-001", 1000000.33, 500000.25, 400000, 450000, 420000),
		district("B", "T-002", 2000000.67, 900000.75, 800000, 850000, 820000),
		district("C", "T-003", 12345.67, 7654.32, 100.01, 99.99, 0),
	}

	totals := CitywideTotals(districts)
	for _, m := range dataset.Methods() {
		var apportionThenSum float64
		for _, d := range districts {
			apportionThenSum += apportion.CPS(d.Amounts.Get(m))
		}
		sumThenApportion := apportion.CPS(totals.Get(m))
		if !mathutil.WithinTolerance(apportionThenSum, sumThenApportion, 1e-6) {
			t.Errorf("method %s: apportion-then-sum %v != sum-then-apportion %v",
				m, apportionThenSum, sumThenApportion)
		}
	}
}

func TestTopN(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("Low", "T-001", 0, 0, 0, 100, 0),
		district("High", "T-002", 0, 0, 0, 900, 0),
		district("Mid", "T-003", 0, 0, 0, 500, 0),
		district("TieFirst", "T-004", 0, 0, 0, 300, 0),
		district("TieSecond", "T-005", 0, 0, 0, 300, 0),
		district("Bottom", "T-006", 0, 0, 0, 50, 0),
	}

	top := TopN(districts, 5, dataset.MethodCTUPolynomial)
	if len(top) != 5 {
		t.Fatalf("expected 5 districts, got %d", len(top))
	}
	if top[0].Name != "High" || top[1].Name != "Mid" {
		t.Errorf("unexpected ranking order: %s, %s", top[0].Name, top[1].Name)
	}

	// Ties keep input order under the stable sort.
	if top[2].Name != "TieFirst" || top[3].Name != "TieSecond" {
		t.Errorf("tie order not stable: %s before %s", top[2].Name, top[3].Name)
	}

	// Every selected value bounds every excluded value.
	selectedMin := top[len(top)-1].Amounts.Get(dataset.MethodCTUPolynomial)
	for _, d := range districts {
		included := false
		for _, s := range top {
			if s.Number == d.Number {
				included = true
				break
			}
		}
		if !included && d.Amounts.Get(dataset.MethodCTUPolynomial) > selectedMin {
			t.Errorf("excluded district %s outranks selected minimum %v", d.Name, selectedMin)
		}
	}
}

func TestTopNFewerThanN(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("Only", "T-001", 0, 0, 0, 100, 0),
	}

	top := TopN(districts, 5, dataset.MethodCTUPolynomial)
	if len(top) != 1 {
		t.Errorf("expected all districts when fewer than n, got %d", len(top))
	}
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("A", "T-001", 0, 0, 0, 1, 0),
		district("B", "T-002", 0, 0, 0, 2, 0),
	}

	TopN(districts, 1, dataset.MethodCTUPolynomial)
	if districts[0].Name != "A" || districts[1].Name != "B" {
		t.Error("TopN reordered the input slice")
	}
}

func TestSubsetRangeSumsPerRowBounds(t *testing.T) {
	// Two districts with method values (10, 20, 15, 15, 15) and
	// (5, 50, 8, 8, 8): the combined bound is the sum of per-row
	// bounds, 15 to 70, not the bound of the sums.
	districts := []dataset.DistrictRecord{
		district("A", "T-001", 10, 20, 15, 15, 15),
		district("B", "T-002", 5, 50, 8, 8, 8),
	}

	min, max := SubsetRange(districts)
	if min != 15 {
		t.Errorf("subset min = %v, expected 15 (sum of per-row minimums)", min)
	}
	if max != 70 {
		t.Errorf("subset max = %v, expected 70 (sum of per-row maximums)", max)
	}
}

func TestSubsetRangeApportionsConsistently(t *testing.T) {
	districts := []dataset.DistrictRecord{
		district("A", "T-001", 1000, 2000, 1500, 1200, 1800),
		district("B", "T-002", 500, 5000, 800, 900, 700),
	}

	min, max := SubsetRange(districts)
	cpsMin := apportion.CPS(min)
	cpsMax := apportion.CPS(max)
	if cpsMin >= min || cpsMax >= max {
		t.Errorf("apportioned bounds (%v, %v) should shrink raw bounds (%v, %v)",
			cpsMin, cpsMax, min, max)
	}
	if !mathutil.WithinTolerance(cpsMin, min*constants.CPSShare, 1e-9) {
		t.Errorf("cps min = %v, expected %v", cpsMin, min*constants.CPSShare)
	}
}
