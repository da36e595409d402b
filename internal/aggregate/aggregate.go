// Package aggregate derives citywide, top-N, and ward-level views from a
// loaded dataset snapshot. Every function returns fresh values; the
// snapshot is never mutated.
package aggregate

import (
	"sort"

	"github.com/civicpulse/tif-surplus/internal/dataset"
)

// CitywideTotals sums every surplus method across all filtered
// districts, each method independently.
func CitywideTotals(districts []dataset.DistrictRecord) dataset.MethodAmounts {
	var totals dataset.MethodAmounts
	for _, d := range districts {
		totals = totals.Add(d.Amounts)
	}
	return totals
}

// TopN returns the n districts with the largest value of the ranking
// method, in descending order. The sort is stable so ties keep input
// order. When fewer than n districts exist, all are returned.
func TopN(districts []dataset.DistrictRecord, n int, method dataset.Method) []dataset.DistrictRecord {
	ranked := make([]dataset.DistrictRecord, len(districts))
	copy(ranked, districts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amounts.Get(method) > ranked[j].Amounts.Get(method)
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// SubsetRange reports the surplus bound for a multi-row subset as the
// sum of each row's own minimum and the sum of each row's own maximum.
// This is deliberately wider than the range of the row sums: it answers
// "if every district used its cheapest (or richest) method".
func SubsetRange(districts []dataset.DistrictRecord) (min, max float64) {
	for _, d := range districts {
		rowMin, rowMax := d.Amounts.Range()
		min += rowMin
		max += rowMax
	}
	return min, max
}
