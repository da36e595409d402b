// Package constants provides shared constants for the tif-surplus application.
package constants

// Apportionment shares. Each taxing body's share is its component of the
// composite Chicago property tax rate divided by the composite rate
// (City ACFR 2024, pp. 234-5). The shares intentionally sum to less than
// one; the remainder belongs to taxing bodies not modeled here.
const (
	// CityShare is the City of Chicago's fraction of the composite rate.
	CityShare = 1.741 / 6.995

	// CPSShare is the Chicago Public Schools fraction of the composite rate.
	CPSShare = 3.829 / 6.995
)

// Dataset defaults
const (
	// DefaultExcludedYear is the expiration year whose districts are
	// dropped at load time, compared as a string suffix.
	DefaultExcludedYear = "2024"

	// DefaultTopN is the default size of the largest-surplus district subset.
	DefaultTopN = 5
)

// District table column names
const (
	ColumnDistrictName    = "tif_name_comptroller_report"
	ColumnDistrictNumber  = "tif_num_ctu"
	ColumnDesignationDate = "designation_date"
	ColumnExpirationDate  = "expiration_date"
	ColumnUnallocated     = "unallocated_funds_2025"
	ColumnCityOMB         = "surplus_2025"
	ColumnCTUAverage      = "full_surplus_avg_method_25"
	ColumnCTUPolynomial   = "full_surplus_poly_method_25"
	ColumnCTUWeighted     = "full_surplus_weighted_method_25"
)

// Ward table column names
const (
	ColumnWardDistrictNumber = "tif_num"
	ColumnWardID             = "ward_id"
	ColumnWardCoverage       = "tif_coverage"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)

// Validation constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
