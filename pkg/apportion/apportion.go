// Package apportion splits surplus estimates between taxing bodies
// according to their fixed shares of the composite property tax rate.
package apportion

import "github.com/civicpulse/tif-surplus/pkg/constants"

// Apportion returns the portion of amount allocated to a taxing body
// holding the given share. Applied identically at every aggregation
// level so that apportioning commutes with summation.
func Apportion(amount, share float64) float64 {
	return amount * share
}

// CPS returns the Chicago Public Schools portion of amount.
func CPS(amount float64) float64 {
	return Apportion(amount, constants.CPSShare)
}

// City returns the City of Chicago portion of amount.
func City(amount float64) float64 {
	return Apportion(amount, constants.CityShare)
}

// Breakdown holds an amount alongside its apportioned portions.
type Breakdown struct {
	Amount float64
	CPS    float64
	City   float64
}

// Split builds the full breakdown for one amount.
func Split(amount float64) Breakdown {
	return Breakdown{
		Amount: amount,
		CPS:    CPS(amount),
		City:   City(amount),
	}
}
