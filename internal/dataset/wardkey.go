package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// canonicalNumberPrefix is the district-number prefix used by the
// comptroller-report table.
const canonicalNumberPrefix = "T-"

// NormalizeDistrictNumber converts a ward-table district identifier such
// as "TF007" into the canonical "T-007" form used by the district table:
// the two-character prefix is dropped, the remainder parsed as an
// integer and re-rendered zero-padded to three digits. Padding never
// truncates, so "TF1234" normalizes to "T-1234". Returns false for
// absent or non-numeric identifiers; callers drop those rows.
func NormalizeDistrictNumber(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) <= 2 {
		return "", false
	}

	n, err := strconv.Atoi(trimmed[2:])
	if err != nil || n < 0 {
		return "", false
	}

	return fmt.Sprintf("%s%03d", canonicalNumberPrefix, n), true
}
