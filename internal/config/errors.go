package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
// Callers use errors.Is() for programmatic handling.
var (
	// ErrUnknownDriver is returned when the driver is neither sqlite nor postgres.
	ErrUnknownDriver = errors.New("unknown database driver: must be sqlite or postgres")

	// ErrMissingDSN is returned when the postgres driver is selected without --dsn.
	ErrMissingDSN = errors.New("missing DSN: the postgres driver requires --dsn")

	// ErrMissingDBDir is returned when the sqlite driver has no database directory.
	ErrMissingDBDir = errors.New("missing database directory: the sqlite driver requires --db-dir")

	// ErrNoYear is returned when no reporting year is configured.
	ErrNoYear = errors.New("no reporting year specified: use --year")

	// ErrInvalidYear is returned when a reporting year is outside 1..9999.
	ErrInvalidYear = errors.New("invalid year: must be between 1 and 9999")

	// ErrInvalidQuarter is returned when the ranking quarter is not 1 to 4.
	ErrInvalidQuarter = errors.New("invalid quarter: must be between Q1 and Q4")

	// ErrNoCountries is returned when the policy country list is empty.
	// An empty list would classify every customer as outside the policy.
	ErrNoCountries = errors.New("no policy countries specified")

	// ErrInvalidThresholds is returned when the silver threshold is negative
	// or above the gold threshold.
	ErrInvalidThresholds = errors.New("invalid tier thresholds: silver must be between 0 and gold")

	// ErrInvalidDiscountRate is returned when a tier discount is outside [0, 1].
	ErrInvalidDiscountRate = errors.New("invalid discount rate: must be between 0 and 1")

	// ErrInvalidTopPercent is returned when --top-percent is outside 1..100.
	ErrInvalidTopPercent = errors.New("invalid top percent: must be between 1 and 100")

	// ErrInvalidTopN is returned when --top-employees or --top-pairs is not positive.
	ErrInvalidTopN = errors.New("invalid top count: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnknownReport is returned for a report name outside AllReports and "all".
	ErrUnknownReport = errors.New("unknown report")
)
