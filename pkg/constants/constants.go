// Package constants provides shared constants for the amortize application.
package constants

// Financial constants
const (
	// DecimalPlaces is the number of decimals kept for currency amounts
	DecimalPlaces = 2
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"
	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
	// OutputFormatXLSX is the spreadsheet output format
	OutputFormatXLSX = "xlsx"
)

// Export constants
const (
	// ExportSheetName is the worksheet name used in spreadsheet exports
	ExportSheetName = "Schedule"
	// ExportFileBaseName is the default file name (without extension) for exports
	ExportFileBaseName = "Payment_Schedule"
	// TotalsLabel labels the totals row in rendered and exported tables
	TotalsLabel = "Totals"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
	// EnvPrefix is the prefix for environment overrides of configuration keys
	EnvPrefix = "AMORTIZE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
	// DefaultMaxPeriods caps the number of periods the API will compute per schedule
	DefaultMaxPeriods = 12 * 100
	// DefaultCacheEntries is the default capacity of the in-memory schedule cache
	DefaultCacheEntries = 1024
	// ServerEngineNetHTTP serves the API with net/http
	ServerEngineNetHTTP = "nethttp"
	// ServerEngineFastHTTP serves the API with fasthttp
	ServerEngineFastHTTP = "fasthttp"
)
