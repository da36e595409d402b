// Package output provides utilities for formatting and displaying
// surplus results on the command line.
package output

import (
	"fmt"

	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/pkg/apportion"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettySummary outputs the citywide totals per surplus method as a
// human-readable rather than machine-readable table.
func PrettySummary(totals dataset.MethodAmounts, min, max float64) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Citywide TIF surplus estimates ---\n")
	fmt.Printf("Surplus method            | Surplus amount | CPS revenue    | City revenue\n")
	fmt.Printf("______________            | ______________ | ___________    | ____________\n")
	for _, m := range dataset.Methods() {
		b := apportion.Split(totals.Get(m))
		_, _ = p.Printf("%-25s | $%.0f | $%.0f | $%.0f\n", m.Label(), b.Amount, b.CPS, b.City)
	}
	_, _ = p.Printf("\nEstimated citywide surplus is between $%.0f and $%.0f depending on method.\n", min, max)
}

// PrettyTopN outputs the largest-surplus district subset ranked by the
// given method.
func PrettyTopN(top []dataset.DistrictRecord, method dataset.Method) {
	if len(top) == 0 {
		return
	}
	p := message.NewPrinter(language.English)
	fmt.Printf("\n--- Top %d districts by %s ---\n", len(top), method.Label())
	for i, d := range top {
		_, _ = p.Printf("%d. %s (%s): $%.0f\n", i+1, d.Name, d.Number, d.Amounts.Get(method))
	}
}

// CsvSummary outputs the citywide totals in comma-separated value format.
func CsvSummary(totals dataset.MethodAmounts) {
	fmt.Printf("\"surplus method\",\"surplus amount\",\"cps revenue\",\"city revenue\"\n")
	for _, m := range dataset.Methods() {
		b := apportion.Split(totals.Get(m))
		fmt.Printf("\"%s\",\"%.2f\",\"%.2f\",\"%.2f\"\n", m.Label(), b.Amount, b.CPS, b.City)
	}
}
