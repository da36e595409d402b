// Package dataset defines the TIF district and ward tables and loads
// them from their CSV sources.
package dataset

import (
	"fmt"

	"github.com/civicpulse/tif-surplus/pkg/apportion"
	"github.com/civicpulse/tif-surplus/pkg/mathutil"
)

// Method identifies one of the surplus estimation methods carried in the
// district table.
type Method int

const (
	MethodUnallocated Method = iota
	MethodCityOMB
	MethodCTUAverage
	MethodCTUPolynomial
	MethodCTUWeighted
)

// Methods returns every surplus method in display order.
func Methods() []Method {
	return []Method{
		MethodUnallocated,
		MethodCityOMB,
		MethodCTUAverage,
		MethodCTUPolynomial,
		MethodCTUWeighted,
	}
}

// String returns the stable key used in queries and configuration.
func (m Method) String() string {
	switch m {
	case MethodUnallocated:
		return "unallocated"
	case MethodCityOMB:
		return "city"
	case MethodCTUAverage:
		return "avg"
	case MethodCTUPolynomial:
		return "poly"
	case MethodCTUWeighted:
		return "weighted"
	}
	return "unknown"
}

// Label returns the display name used in summary tables.
func (m Method) Label() string {
	switch m {
	case MethodUnallocated:
		return "Unallocated Funds"
	case MethodCityOMB:
		return "Surplus (City OMB Method)"
	case MethodCTUAverage:
		return "CTU Method 1"
	case MethodCTUPolynomial:
		return "CTU Method 2"
	case MethodCTUWeighted:
		return "CTU Method 3"
	}
	return "Unknown"
}

// ExportLabel returns the column label used in the CSV downloads.
func (m Method) ExportLabel() string {
	if m == MethodCityOMB {
		return "City Surplus Method"
	}
	return m.Label()
}

// ParseMethod resolves a query/config key into a Method.
func ParseMethod(key string) (Method, error) {
	for _, m := range Methods() {
		if m.String() == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown surplus method %q", key)
}

// MethodAmounts holds one amount per surplus method for a district, a
// subset, or a ward.
type MethodAmounts struct {
	Unallocated   float64
	CityOMB       float64
	CTUAverage    float64
	CTUPolynomial float64
	CTUWeighted   float64
}

// Get returns the amount for one method.
func (a MethodAmounts) Get(m Method) float64 {
	switch m {
	case MethodUnallocated:
		return a.Unallocated
	case MethodCityOMB:
		return a.CityOMB
	case MethodCTUAverage:
		return a.CTUAverage
	case MethodCTUPolynomial:
		return a.CTUPolynomial
	case MethodCTUWeighted:
		return a.CTUWeighted
	}
	return 0
}

// Add returns the method-wise sum of two amount sets.
func (a MethodAmounts) Add(b MethodAmounts) MethodAmounts {
	return MethodAmounts{
		Unallocated:   a.Unallocated + b.Unallocated,
		CityOMB:       a.CityOMB + b.CityOMB,
		CTUAverage:    a.CTUAverage + b.CTUAverage,
		CTUPolynomial: a.CTUPolynomial + b.CTUPolynomial,
		CTUWeighted:   a.CTUWeighted + b.CTUWeighted,
	}
}

// Apportion returns the amounts scaled by a taxing body share.
func (a MethodAmounts) Apportion(share float64) MethodAmounts {
	return MethodAmounts{
		Unallocated:   apportion.Apportion(a.Unallocated, share),
		CityOMB:       apportion.Apportion(a.CityOMB, share),
		CTUAverage:    apportion.Apportion(a.CTUAverage, share),
		CTUPolynomial: apportion.Apportion(a.CTUPolynomial, share),
		CTUWeighted:   apportion.Apportion(a.CTUWeighted, share),
	}
}

// Range returns the minimum and maximum across the methods, bounding the
// surplus estimate for one record.
func (a MethodAmounts) Range() (min, max float64) {
	min = a.Unallocated
	max = a.Unallocated
	for _, m := range Methods()[1:] {
		v := a.Get(m)
		min = mathutil.Min(min, v)
		max = mathutil.Max(max, v)
	}
	return min, max
}

// DistrictRecord is one row of the filtered district table.
type DistrictRecord struct {
	Name            string
	Number          string
	DesignationDate string
	ExpirationDate  string
	Amounts         MethodAmounts
}

// WardOverlap is one district-in-ward mapping from the ward table. A
// district appears once per ward it overlaps.
type WardOverlap struct {
	RawDistrictNumber string
	WardID            int
	Coverage          float64
}

// Snapshot is the immutable result of one load. All derived tables are
// computed fresh from it; nothing mutates it after Load returns.
type Snapshot struct {
	Districts []DistrictRecord
	Overlaps  []WardOverlap
}
