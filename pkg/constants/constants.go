// Package constants provides shared constants for the salary-advance service.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Advance policy constants
const (
	// MinMonthlySalary is the minimum monthly salary for advance eligibility
	MinMonthlySalary = 1000.0

	// MaxAdvanceFraction is the maximum advance as a fraction of monthly salary
	MaxAdvanceFraction = 0.5

	// FeeRate is the advance fee rate applied to the requested amount
	FeeRate = 0.05

	// FeeFloor is the minimum fee charged on an approved advance
	FeeFloor = 10.0

	// FeeCap is the maximum fee charged on an approved advance
	FeeCap = 50.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// ScheduleCSVFilename is the fixed filename for exported amortization schedules
	ScheduleCSVFilename = "amortization_schedule.csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8000"

	// DefaultReadTimeoutSeconds is the default HTTP read timeout
	DefaultReadTimeoutSeconds = 15

	// DefaultWriteTimeoutSeconds is the default HTTP write timeout
	DefaultWriteTimeoutSeconds = 15

	// DefaultIdleTimeoutSeconds is the default HTTP idle timeout
	DefaultIdleTimeoutSeconds = 60

	// DefaultShutdownTimeoutSeconds is the grace period for in-flight requests
	DefaultShutdownTimeoutSeconds = 10
)

// Client defaults mirror the form front-end's transport behavior.
const (
	// DefaultClientRetries is the bounded retry count for transient failures
	DefaultClientRetries = 10

	// DefaultClientRetryDelaySeconds is the fixed delay between retries
	DefaultClientRetryDelaySeconds = 5

	// DefaultClientTimeoutSeconds is the per-request timeout
	DefaultClientTimeoutSeconds = 5
)
