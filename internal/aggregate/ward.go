package aggregate

import (
	"sort"

	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/pkg/constants"
)

// WardDistrict describes one district's presence in a ward, carried for
// display alongside the ward totals.
type WardDistrict struct {
	Number   string
	Name     string
	Coverage float64
}

// WardTotal is the aggregated view of every district touching one ward:
// raw surplus amounts plus the CPS and City apportioned equivalents,
// summed per method.
type WardTotal struct {
	WardID    int
	Raw       dataset.MethodAmounts
	CPS       dataset.MethodAmounts
	City      dataset.MethodAmounts
	Districts []WardDistrict
}

// ByWard joins district records onto ward overlap rows via the
// normalized district number, apportions every method per joined row,
// and sums by ward. Overlap rows whose district number cannot be
// normalized or matches no district are dropped. Coverage is NOT used
// as a weight: a district overlapping a ward at 10% contributes its
// full amounts, the same as one at 100%. Results are ordered by ward id.
func ByWard(snapshot *dataset.Snapshot) []WardTotal {
	byNumber := make(map[string]dataset.DistrictRecord, len(snapshot.Districts))
	for _, d := range snapshot.Districts {
		byNumber[d.Number] = d
	}

	totals := make(map[int]*WardTotal)
	for _, overlap := range snapshot.Overlaps {
		number, ok := dataset.NormalizeDistrictNumber(overlap.RawDistrictNumber)
		if !ok {
			continue
		}
		district, ok := byNumber[number]
		if !ok {
			continue
		}

		t := totals[overlap.WardID]
		if t == nil {
			t = &WardTotal{WardID: overlap.WardID}
			totals[overlap.WardID] = t
		}

		t.Raw = t.Raw.Add(district.Amounts)
		t.CPS = t.CPS.Add(district.Amounts.Apportion(constants.CPSShare))
		t.City = t.City.Add(district.Amounts.Apportion(constants.CityShare))
		t.Districts = append(t.Districts, WardDistrict{
			Number:   district.Number,
			Name:     district.Name,
			Coverage: overlap.Coverage,
		})
	}

	result := make([]WardTotal, 0, len(totals))
	for _, t := range totals {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WardID < result[j].WardID
	})
	return result
}

// FindDistrict returns the first filtered district with the given
// display name. Names are treated as de facto unique for selection.
func FindDistrict(districts []dataset.DistrictRecord, name string) (dataset.DistrictRecord, bool) {
	for _, d := range districts {
		if d.Name == name {
			return d, true
		}
	}
	return dataset.DistrictRecord{}, false
}

// FindWard returns the aggregated totals for one ward id.
func FindWard(totals []WardTotal, wardID int) (WardTotal, bool) {
	for _, t := range totals {
		if t.WardID == wardID {
			return t, true
		}
	}
	return WardTotal{}, false
}
