package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/database"
	"github.com/nao1215/salesreport/internal/loader"
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <csv-dir>",
		Short: "Import Northwind CSV files into the SQLite store",
		Long: `Load reads the Northwind tables from a directory of CSV files and writes
them into the SQLite store used by "salesreport report".

Expected files: categories.csv, suppliers.csv, shippers.csv (optional),
customers.csv, employees.csv, products.csv, orders.csv, order_details.csv.
Columns are mapped by header name; OrderID and order_id are equivalent.

Loading the same files again updates the existing rows.

Examples:
  # Import into the default store
  salesreport load ./northwind

  # Import into a store in a custom directory
  salesreport load ./northwind --db-dir ./data`,
		Args: cobra.ExactArgs(1),
		RunE: runLoadCmd,
	}

	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding "+config.DefaultDBFile)

	return cmd
}

// runLoadCmd executes the load command.
func runLoadCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dir == "" {
		return fmt.Errorf("configuration error: %w", config.ErrMissingDBDir)
	}

	logger := setupLogger(cmd)
	ctx := cmd.Context()

	startTime := time.Now()
	ds, err := loader.LoadDir(args[0])
	if err != nil {
		return fmt.Errorf("failed to read CSV files: %w", err)
	}
	logger.Info("CSV files read", "dir", args[0], "rows", ds.Stats())

	if err := ds.Validate(); err != nil {
		logger.Warn("dataset has invalid rows; affected rows drop out of joins", "error", err)
	}

	store, err := database.Open(ctx, database.DefaultOptions(dir))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Import(ctx, ds); err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}

	stats := ds.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d orders (%d lines) into %s in %s\n",
		stats["orders"], stats["order_details"], store.Location(),
		time.Since(startTime).Round(time.Millisecond))

	return nil
}
