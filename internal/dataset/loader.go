package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/civicpulse/tif-surplus/pkg/constants"
	"go.uber.org/zap"
)

// ErrDataUnavailable indicates an input table could not be located or
// read. Callers halt dependent computation and surface a message rather
// than rendering partial results.
var ErrDataUnavailable = errors.New("dataset unavailable")

// Paths locates the two input tables.
type Paths struct {
	DistrictFile string
	WardFile     string
}

// Load reads both tables, applies the expiration-year exclusion to the
// district table, and returns an immutable Snapshot. A missing or
// unreadable file maps to ErrDataUnavailable; a missing required column
// fails immediately as a configuration error.
func Load(logger *zap.Logger, paths Paths, excludedYear string) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	districtRecords, err := readTable(paths.DistrictFile, "district")
	if err != nil {
		return nil, err
	}
	districts, excluded, err := parseDistricts(districtRecords, excludedYear)
	if err != nil {
		return nil, fmt.Errorf("district table %s: %w", paths.DistrictFile, err)
	}

	wardRecords, err := readTable(paths.WardFile, "ward")
	if err != nil {
		return nil, err
	}
	overlaps, dropped, err := parseOverlaps(wardRecords)
	if err != nil {
		return nil, fmt.Errorf("ward table %s: %w", paths.WardFile, err)
	}

	logger.Info("dataset loaded",
		zap.String("op", "dataset.Load"),
		zap.Int("districts", len(districts)),
		zap.Int("districtsExcluded", excluded),
		zap.Int("wardOverlaps", len(overlaps)),
		zap.Int("wardRowsDropped", dropped),
		zap.String("excludedYear", excludedYear),
	)

	return &Snapshot{Districts: districts, Overlaps: overlaps}, nil
}

type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(path, kind string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s table %s: %v", ErrDataUnavailable, kind, path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s table %s: %v", ErrDataUnavailable, kind, path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: %s table %s: no header row", ErrDataUnavailable, kind, path)
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	columns := map[string]int{}
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}

	return &table{columns: columns, rows: records[1:]}, nil
}

func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return fmt.Errorf("missing required column: %s", name)
		}
	}
	return nil
}

func (t *table) get(row []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) getFloat(row []string, rowIdx int, name string) (float64, error) {
	raw := t.get(row, name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %s is not numeric (got %q)", rowIdx+2, name, raw)
	}
	return v, nil
}

func parseDistricts(t *table, excludedYear string) ([]DistrictRecord, int, error) {
	if err := t.require(
		constants.ColumnDistrictName,
		constants.ColumnDistrictNumber,
		constants.ColumnDesignationDate,
		constants.ColumnExpirationDate,
		constants.ColumnUnallocated,
		constants.ColumnCityOMB,
		constants.ColumnCTUAverage,
		constants.ColumnCTUPolynomial,
		constants.ColumnCTUWeighted,
	); err != nil {
		return nil, 0, err
	}

	var districts []DistrictRecord
	excluded := 0
	for i, row := range t.rows {
		expiration := t.get(row, constants.ColumnExpirationDate)
		if ExpirationYear(expiration) == excludedYear {
			excluded++
			continue
		}

		rec := DistrictRecord{
			Name:            t.get(row, constants.ColumnDistrictName),
			Number:          t.get(row, constants.ColumnDistrictNumber),
			DesignationDate: t.get(row, constants.ColumnDesignationDate),
			ExpirationDate:  expiration,
		}

		var err error
		if rec.Amounts.Unallocated, err = t.getFloat(row, i, constants.ColumnUnallocated); err != nil {
			return nil, 0, err
		}
		if rec.Amounts.CityOMB, err = t.getFloat(row, i, constants.ColumnCityOMB); err != nil {
			return nil, 0, err
		}
		if rec.Amounts.CTUAverage, err = t.getFloat(row, i, constants.ColumnCTUAverage); err != nil {
			return nil, 0, err
		}
		if rec.Amounts.CTUPolynomial, err = t.getFloat(row, i, constants.ColumnCTUPolynomial); err != nil {
			return nil, 0, err
		}
		if rec.Amounts.CTUWeighted, err = t.getFloat(row, i, constants.ColumnCTUWeighted); err != nil {
			return nil, 0, err
		}

		districts = append(districts, rec)
	}

	return districts, excluded, nil
}

func parseOverlaps(t *table) ([]WardOverlap, int, error) {
	if err := t.require(
		constants.ColumnWardDistrictNumber,
		constants.ColumnWardID,
		constants.ColumnWardCoverage,
	); err != nil {
		return nil, 0, err
	}

	var overlaps []WardOverlap
	dropped := 0
	for _, row := range t.rows {
		raw := t.get(row, constants.ColumnWardDistrictNumber)
		wardRaw := t.get(row, constants.ColumnWardID)
		wardID, err := strconv.Atoi(wardRaw)
		if raw == "" || wardRaw == "" || err != nil {
			// Unresolvable join key; excluded, not fatal.
			dropped++
			continue
		}

		coverage, err := strconv.ParseFloat(t.get(row, constants.ColumnWardCoverage), 64)
		if err != nil {
			coverage = 0
		}

		overlaps = append(overlaps, WardOverlap{
			RawDistrictNumber: raw,
			WardID:            wardID,
			Coverage:          coverage,
		})
	}

	return overlaps, dropped, nil
}

// ExpirationYear extracts the trailing four characters of an expiration
// date string. Upstream date formats are inconsistent, so exclusion is a
// literal suffix comparison rather than a parsed-date comparison.
func ExpirationYear(expirationDate string) string {
	if len(expirationDate) < 4 {
		return expirationDate
	}
	return expirationDate[len(expirationDate)-4:]
}
