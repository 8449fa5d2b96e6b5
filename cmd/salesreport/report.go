package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/database"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/pipeline"
	"github.com/nao1215/salesreport/internal/report"
)

// errReportsFailed is returned after output when at least one report failed.
var errReportsFailed = errors.New("one or more reports failed")

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [report-name...]",
		Short: "Compute sales reports",
		Long: `Report computes the selected reports for each reporting year.

Report names: summary, quarterly, products, countries, tiers, employees,
pairs, or all (default).

Employee performance ranks the quarter after the reporting year (1998Q1 for
1997) unless --quarter is given. Customer discounts in that ranking are
decided by the revenue of the year before the quarter.

Examples:
  # Every report for 1997 from the default SQLite store
  salesreport report

  # Tiers and products for two years, as JSON
  salesreport report tiers products --year 1997 --year 1998 --json

  # Read an existing PostgreSQL Northwind database
  salesreport report --driver postgres --dsn "postgres://report@localhost/northwind?sslmode=disable"

  # Markdown report written to a file
  salesreport report --markdown -o reports/1997.md

  # JSON to a file while the text report goes to the terminal
  salesreport report --json -o reports/1997.json --tee`,
		Args: cobra.ArbitraryArgs,
		RunE: runReportCmd,
	}

	// Database flags
	cmd.Flags().String("driver", config.DefaultDriver,
		"Dataset store driver: sqlite or postgres")
	cmd.Flags().String("dsn", "",
		"PostgreSQL connection string (driver postgres)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding "+config.DefaultDBFile+" (driver sqlite)")

	// Report parameter flags
	cmd.Flags().IntSliceP("year", "y", []int{config.DefaultYear},
		"Reporting year (repeatable)")
	cmd.Flags().StringSlice("countries", model.DefaultPolicyCountries,
		"Countries taking part in the loyal customer policy")
	cmd.Flags().StringP("quarter", "q", "",
		"Quarter for the employee ranking, e.g. 1998Q1 (default: Q1 after each year)")
	cmd.Flags().Int("top-percent", config.DefaultTopPercent,
		"Percentage of products to keep in the top products report")
	cmd.Flags().Int("top-employees", config.DefaultTopEmployees,
		"Number of employees in the performance ranking")
	cmd.Flags().Int("top-pairs", config.DefaultTopPairs,
		"Number of product pairs to show")
	cmd.Flags().IntP("concurrency", "p", config.DefaultConcurrency,
		"Number of reporting years computed at once")
	cmd.Flags().Bool("continue-on-error", false,
		"Keep computing the remaining reports after one fails")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .salesreport in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the text report to stdout")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)
	return runReport(cmd, cfg, logger)
}

// buildConfig assembles the configuration: defaults, then the configuration
// file, then the flags the user set explicitly.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly given file must exist; a missing default file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Reports = args
	}

	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("driver") {
		if cfg.Driver, err = flags.GetString("driver"); err != nil {
			return err
		}
	}
	if flags.Changed("dsn") {
		if cfg.DSN, err = flags.GetString("dsn"); err != nil {
			return err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}
	if flags.Changed("year") {
		if cfg.Years, err = flags.GetIntSlice("year"); err != nil {
			return err
		}
	}
	if flags.Changed("countries") {
		if cfg.Policy.Countries, err = flags.GetStringSlice("countries"); err != nil {
			return err
		}
	}
	if flags.Changed("quarter") {
		s, err := flags.GetString("quarter")
		if err != nil {
			return err
		}
		if cfg.Quarter, err = model.ParseQuarter(s); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}
	if flags.Changed("top-percent") {
		if cfg.TopPercent, err = flags.GetInt("top-percent"); err != nil {
			return err
		}
	}
	if flags.Changed("top-employees") {
		if cfg.TopEmployees, err = flags.GetInt("top-employees"); err != nil {
			return err
		}
	}
	if flags.Changed("top-pairs") {
		if cfg.TopPairs, err = flags.GetInt("top-pairs"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}

	if cfg.ContinueOnError, err = flags.GetBool("continue-on-error"); err != nil {
		return err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return err
	}
	if cfg.Tee, err = flags.GetBool("tee"); err != nil {
		return err
	}

	return nil
}

// runReport loads the dataset and computes the reports of every year.
func runReport(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	ctx := cmd.Context()

	logger.Info("starting report",
		"driver", cfg.Driver,
		"dsn", cfg.DSN,
		"years", cfg.Years,
		"reports", cfg.Reports,
	)

	store, err := database.Open(ctx, database.Options{
		Driver: cfg.Driver,
		Dir:    cfg.DBDir,
		DSN:    cfg.DSN,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()
	logger.Info("database opened", "driver", store.Driver(), "location", store.Location())

	startTime := time.Now()
	ds, err := store.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Info("dataset loaded", "rows", ds.Stats(), "elapsed", time.Since(startTime))

	if err := ds.Validate(); err != nil {
		logger.Warn("dataset has invalid rows; affected rows drop out of joins", "error", err)
	}

	// Steps only hold parameters, so one set is shared by every year's pipeline.
	params := pipeline.ParamsFromConfig(cfg)
	params.Logger = logger
	steps, err := pipeline.StepsFor(cfg.Reports, params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			p := pipeline.New(
				pipeline.WithLogger(logger),
				pipeline.WithContinueOnError(cfg.ContinueOnError),
			)
			p.AddSteps(steps...)
			return p
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	sets, err := bp.ProcessYears(ctx, ds, cfg.Years)
	if err != nil {
		return fmt.Errorf("report cancelled: %w", err)
	}

	if err := outputReport(cmd.OutOrStdout(), cfg, sets); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, rs := range sets {
		if rs != nil && rs.HasErrors() {
			return errReportsFailed
		}
	}
	return nil
}

// outputReport writes the report sets in the requested format to the
// configured file, or to stdout. With Tee, a file report is paired with the
// text report on stdout.
func outputReport(stdout io.Writer, cfg *config.Config, sets []*model.ReportSet) error {
	output := stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	if cfg.Tee && cfg.ReportFile != "" {
		w = report.NewMultiWriter(w, report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose)))
	}

	_, err := w.WriteAll(sets)
	return err
}
