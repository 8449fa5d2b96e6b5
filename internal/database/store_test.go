package database

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/salesreport/internal/analysis"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/testutil"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), DefaultOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := Open(context.Background(), DefaultOptions(dbDir))
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer s.Close()

		dbPath := filepath.Join(dbDir, DefaultDBFile)
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if s.Location() != dbPath {
			t.Errorf("expected location %q, got %q", dbPath, s.Location())
		}
		if s.Driver() != DriverSQLite {
			t.Errorf("expected driver %q, got %q", DriverSQLite, s.Driver())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions(filepath.Join(t.TempDir(), "missing"))
		opts.CreateIfNotExists = false
		if _, err := Open(context.Background(), opts); err == nil {
			t.Error("expected error when database does not exist")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := Open(context.Background(), DefaultOptions(dir))
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = s.Close()

		opts := DefaultOptions(dir)
		opts.CreateIfNotExists = false
		s, err = Open(context.Background(), opts)
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		_ = s.Close()
	})

	t.Run("unknown driver returns ErrUnsupportedDriver", func(t *testing.T) {
		t.Parallel()

		_, err := Open(context.Background(), Options{Driver: "mysql"})
		if !errors.Is(err, ErrUnsupportedDriver) {
			t.Errorf("expected ErrUnsupportedDriver, got %v", err)
		}
	})
}

func TestLoadDatasetEmpty(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ds, err := s.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	if len(ds.Orders()) != 0 || len(ds.Lines()) != 0 {
		t.Errorf("expected empty dataset, got %v", ds.Stats())
	}
	if got := analysis.QuarterlyRevenue(ds); len(got) != 0 {
		t.Errorf("expected empty quarterly table, got %v", got)
	}
}

func TestImportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t)
	want := testutil.Dataset()

	if err := s.Import(ctx, want); err != nil {
		t.Fatalf("failed to import: %v", err)
	}
	// A second import upserts and leaves the row counts unchanged.
	if err := s.Import(ctx, want); err != nil {
		t.Fatalf("failed to re-import: %v", err)
	}

	got, err := s.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}

	t.Run("row counts match", func(t *testing.T) {
		t.Parallel()
		for table, n := range want.Stats() {
			if got.Stats()[table] != n {
				t.Errorf("%s: expected %d rows, got %d", table, n, got.Stats()[table])
			}
		}
	})

	t.Run("dates survive the round trip", func(t *testing.T) {
		t.Parallel()
		o, ok := got.Order(10001)
		if !ok {
			t.Fatal("order 10001 not found")
		}
		if !o.RequiredDate.Equal(testutil.Date(1997, time.January, 30)) {
			t.Errorf("unexpected required date %v", o.RequiredDate)
		}
		if o.ShippedDate == nil || !o.ShippedDate.Equal(testutil.Date(1997, time.January, 10)) {
			t.Errorf("unexpected shipped date %v", o.ShippedDate)
		}
		o, _ = got.Order(10000)
		if o.ShippedDate != nil {
			t.Errorf("expected unshipped order, got %v", o.ShippedDate)
		}
	})

	t.Run("flags and names survive the round trip", func(t *testing.T) {
		t.Parallel()
		p, ok := got.Product(3)
		if !ok || !p.Discontinued || p.Name != "Aniseed Syrup" {
			t.Errorf("unexpected product %+v", p)
		}
		c, ok := got.Customer("BONAP")
		if !ok || c.Country != "France" {
			t.Errorf("unexpected customer %+v", c)
		}
	})

	t.Run("reports are identical", func(t *testing.T) {
		t.Parallel()
		policy := model.DefaultTierPolicy()
		q := model.Quarter{Year: 1998, Q: 1}
		reports := func(ds *model.Dataset) []any {
			return []any{
				analysis.Summary(ds),
				analysis.QuarterlyRevenue(ds),
				analysis.TopProducts(ds, 1997, 100),
				analysis.RevenueByCountry(ds, 1997),
				analysis.CustomerTiers(ds, 1997, policy),
				analysis.EmployeePerformance(ds, q.Start(), q.End(), policy, 3),
				analysis.FrequentPairs(ds, 3),
			}
		}
		wantJSON, err := json.Marshal(reports(want))
		if err != nil {
			t.Fatal(err)
		}
		gotJSON, err := json.Marshal(reports(got))
		if err != nil {
			t.Fatal(err)
		}
		if string(wantJSON) != string(gotJSON) {
			t.Errorf("reports differ after round trip\nwant: %s\ngot:  %s", wantJSON, gotJSON)
		}
	})
}

func TestImportReadOnly(t *testing.T) {
	t.Parallel()

	s := &Store{driver: DriverPostgres}
	err := s.Import(context.Background(), testutil.Dataset())
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}
