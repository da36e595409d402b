// Package export assembles the CSV downloads. Export is a formatting
// pass over the same aggregates the API serves, never a separate
// computation path.
package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/civicpulse/tif-surplus/internal/aggregate"
	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/pkg/format"
)

// DistrictCSV renders every filtered district record with display
// labels and currency-formatted amounts.
func DistrictCSV(districts []dataset.DistrictRecord) (string, error) {
	header := []string{"TIF District", "TIF Number", "Designation Date", "Expiration Date"}
	for _, m := range dataset.Methods() {
		header = append(header, m.ExportLabel())
	}

	rows := [][]string{header}
	for _, d := range districts {
		row := []string{d.Name, d.Number, d.DesignationDate, d.ExpirationDate}
		for _, m := range dataset.Methods() {
			row = append(row, format.Currency(d.Amounts.Get(m)))
		}
		rows = append(rows, row)
	}

	return writeRows(rows)
}

// WardCSV renders the ward aggregation with raw and CPS-apportioned
// totals per method.
func WardCSV(totals []aggregate.WardTotal) (string, error) {
	header := []string{"Ward"}
	for _, m := range dataset.Methods() {
		header = append(header, "Surplus Est: "+m.ExportLabel())
		header = append(header, "CPS Revenue Est: "+m.ExportLabel())
	}

	rows := [][]string{header}
	for _, w := range totals {
		row := []string{strconv.Itoa(w.WardID)}
		for _, m := range dataset.Methods() {
			row = append(row, format.Currency(w.Raw.Get(m)))
			row = append(row, format.Currency(w.CPS.Get(m)))
		}
		rows = append(rows, row)
	}

	return writeRows(rows)
}

func writeRows(rows [][]string) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return builder.String(), nil
}
