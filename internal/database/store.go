package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// Supported drivers. The names are the database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultDBFile is the SQLite file name inside Options.Dir.
const DefaultDBFile = "salesreport.db"

var (
	// ErrUnsupportedDriver is returned by Open for a driver other than
	// DriverSQLite or DriverPostgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrReadOnly is returned when writing to a store that salesreport does
	// not own (PostgreSQL).
	ErrReadOnly = errors.New("store is read-only")
)

// Store is a dataset source backed by database/sql.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// driver is DriverSQLite or DriverPostgres.
	driver string

	// location is the SQLite file path, or "postgres" for a DSN.
	// The DSN itself is never kept because it may contain a password.
	location string
}

// Options configures Open.
type Options struct {
	// Driver selects the database: DriverSQLite or DriverPostgres.
	Driver string

	// Dir is the directory of the SQLite file. Ignored by PostgreSQL.
	Dir string

	// DSN is the PostgreSQL connection string. Ignored by SQLite.
	DSN string

	// CreateIfNotExists creates the SQLite directory and file if missing.
	// When false, opening a missing SQLite file is an error.
	CreateIfNotExists bool

	// EnableWAL enables SQLite Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns options for a SQLite store in dir.
func DefaultOptions(dir string) Options {
	return Options{
		Driver:            DriverSQLite,
		Dir:               dir,
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens the store and verifies the connection with a ping.
// SQLite stores get the Northwind schema created if it does not exist.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Driver {
	case DriverSQLite:
		return openSQLite(ctx, opts)
	case DriverPostgres:
		return openPostgres(ctx, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, opts.Driver)
	}
}

func openSQLite(ctx context.Context, opts Options) (*Store, error) {
	dbPath := filepath.Join(opts.Dir, DefaultDBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run \"salesreport load\" first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(opts.Dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw refuses to create a new file, mode=rwc allows it.
	mode := "rw"
	if opts.CreateIfNotExists {
		mode = "rwc"
	}
	dsn := dbPath + "?mode=" + mode + "&_pragma=busy_timeout(5000)"

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, driver: DriverSQLite, location: dbPath}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", dbPath, err)
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func openPostgres(ctx context.Context, opts Options) (*Store, error) {
	db, err := sql.Open(DriverPostgres, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Store{db: db, driver: DriverPostgres, location: DriverPostgres}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the driver name of the store.
func (s *Store) Driver() string {
	return s.driver
}

// Location returns the SQLite file path, or "postgres" for PostgreSQL stores.
func (s *Store) Location() string {
	return s.location
}

// createTables creates the Northwind schema if it doesn't exist.
// Only the columns read by the reports are declared.
func (s *Store) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		category_id INTEGER PRIMARY KEY,
		category_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS suppliers (
		supplier_id INTEGER PRIMARY KEY,
		company_name TEXT NOT NULL,
		country TEXT
	);

	CREATE TABLE IF NOT EXISTS shippers (
		shipper_id INTEGER PRIMARY KEY,
		company_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS customers (
		customer_id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		country TEXT
	);

	CREATE TABLE IF NOT EXISTS employees (
		employee_id INTEGER PRIMARY KEY,
		last_name TEXT NOT NULL,
		first_name TEXT NOT NULL,
		title TEXT
	);

	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		product_name TEXT NOT NULL,
		supplier_id INTEGER,
		category_id INTEGER,
		discontinued INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		customer_id TEXT,
		employee_id INTEGER,
		order_date DATE,
		required_date DATE,
		shipped_date DATE,
		ship_via INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_orders_required_date ON orders(required_date);

	CREATE TABLE IF NOT EXISTS order_details (
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		unit_price NUMERIC NOT NULL,
		quantity INTEGER NOT NULL,
		discount NUMERIC NOT NULL DEFAULT 0,
		PRIMARY KEY (order_id, product_id)
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
