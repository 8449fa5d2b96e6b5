package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/shopspring/decimal"

	"github.com/nao1215/salesreport/internal/model"
)

// Supported database drivers.
const (
	// DriverSQLite reads the dataset from a SQLite file (modernc.org/sqlite).
	DriverSQLite = "sqlite"

	// DriverPostgres reads the dataset from PostgreSQL (github.com/lib/pq).
	DriverPostgres = "postgres"
)

// Report names accepted by the report command.
const (
	ReportSummary   = "summary"
	ReportQuarterly = "quarterly"
	ReportProducts  = "products"
	ReportCountries = "countries"
	ReportTiers     = "tiers"
	ReportEmployees = "employees"
	ReportPairs     = "pairs"

	// ReportAll expands to every report.
	ReportAll = "all"
)

// AllReports lists every report in execution order.
var AllReports = []string{
	ReportSummary,
	ReportQuarterly,
	ReportProducts,
	ReportCountries,
	ReportTiers,
	ReportEmployees,
	ReportPairs,
}

// Default configuration values.
// The report defaults reproduce the original business questions: the 1997
// figures, the top 20% of products and the top three employees and pairs.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "salesreport"

	// DefaultDriver is the dataset source used when none is configured.
	DefaultDriver = DriverSQLite

	// DefaultDBFile is the SQLite file name inside the database directory.
	DefaultDBFile = "salesreport.db"

	// DefaultYear is the reporting year.
	DefaultYear = 1997

	// DefaultTopPercent is the share of ranked products kept by the
	// top products report.
	DefaultTopPercent = 20

	// DefaultTopEmployees is the number of employees in the ranking.
	DefaultTopEmployees = 3

	// DefaultTopPairs is the number of product pairs reported.
	DefaultTopPairs = 3

	// DefaultConcurrency is the number of reporting years processed at once.
	DefaultConcurrency = 4
)

// Config holds all configuration options for salesreport.
// It is populated from defaults, then the YAML file, then CLI flags, and
// passed through the application rather than held in global state.
type Config struct {
	// Driver selects the dataset source: DriverSQLite or DriverPostgres.
	Driver string

	// DSN is the PostgreSQL connection string. It may contain a password
	// and is masked in log output. Ignored by the SQLite driver.
	DSN string

	// DBDir is the directory of the SQLite database file.
	// Defaults to the XDG data directory (~/.local/share/salesreport on Linux).
	DBDir string

	// Years are the reporting years. Each year produces one ReportSet.
	Years []int

	// Quarter is the quarter of the employee performance ranking.
	// When zero, the first quarter after each reporting year is used.
	Quarter model.Quarter

	// Policy is the loyal customer policy.
	Policy model.TierPolicy

	// TopPercent is the share of ranked products to report, 1 to 100.
	TopPercent int

	// TopEmployees is the number of employees to report.
	TopEmployees int

	// TopPairs is the number of product pairs to report.
	TopPairs int

	// Concurrency is the number of reporting years processed at once.
	Concurrency int

	// Reports are the names of the reports to compute, in AllReports order.
	Reports []string

	// ContinueOnError keeps computing the remaining reports after one fails.
	ContinueOnError bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Tee also prints the text report to stdout when ReportFile is set.
	Tee bool

	// ConfigFilePath is the path of the YAML configuration file.
	// If empty, .salesreport is searched in the current and home directories.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Driver:       DefaultDriver,
		DBDir:        XDGDataDir(),
		Years:        []int{DefaultYear},
		Policy:       model.DefaultTierPolicy(),
		TopPercent:   DefaultTopPercent,
		TopEmployees: DefaultTopEmployees,
		TopPairs:     DefaultTopPairs,
		Concurrency:  DefaultConcurrency,
		Reports:      slices.Clone(AllReports),
	}
}

// XDGDataDir returns the XDG data directory for salesreport.
// On Linux: ~/.local/share/salesreport
// On macOS: ~/Library/Application Support/salesreport
// On Windows: %LOCALAPPDATA%\salesreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for salesreport.
// On Linux: ~/.config/salesreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DBPath returns the SQLite database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DBDir, DefaultDBFile)
}

// QuarterFor returns the employee ranking quarter for a reporting year:
// the configured Quarter, or the first quarter of the following year.
func (c *Config) QuarterFor(year int) model.Quarter {
	if c.Quarter.Year != 0 {
		return c.Quarter
	}
	return model.Quarter{Year: year + 1, Q: 1}
}

// ResolveReports expands "all", removes duplicates and returns the report
// names in AllReports order. An unknown name is ErrUnknownReport.
// An empty list means every report.
func ResolveReports(names []string) ([]string, error) {
	if len(names) == 0 {
		return slices.Clone(AllReports), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n == ReportAll {
			return slices.Clone(AllReports), nil
		}
		if !slices.Contains(AllReports, n) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReport, n)
		}
		want[n] = true
	}
	out := make([]string, 0, len(want))
	for _, n := range AllReports {
		if want[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error (see errors.go).
// This is called once after configuration is assembled, before any
// dataset access.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.DBDir == "" {
			return ErrMissingDBDir
		}
	case DriverPostgres:
		if c.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return ErrUnknownDriver
	}

	if len(c.Years) == 0 {
		return ErrNoYear
	}
	for _, y := range c.Years {
		if y < 1 || y > 9999 {
			return ErrInvalidYear
		}
	}

	if c.Quarter.Year != 0 && (c.Quarter.Q < 1 || c.Quarter.Q > 4) {
		return ErrInvalidQuarter
	}

	if len(c.Policy.Countries) == 0 {
		return ErrNoCountries
	}
	if c.Policy.SilverThreshold.GreaterThan(c.Policy.GoldThreshold) || c.Policy.SilverThreshold.IsNegative() {
		return ErrInvalidThresholds
	}
	for _, rate := range []decimal.Decimal{c.Policy.GoldDiscount, c.Policy.SilverDiscount} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidDiscountRate
		}
	}

	if c.TopPercent < 1 || c.TopPercent > 100 {
		return ErrInvalidTopPercent
	}
	if c.TopEmployees <= 0 || c.TopPairs <= 0 {
		return ErrInvalidTopN
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if _, err := ResolveReports(c.Reports); err != nil {
		return err
	}

	return nil
}
