package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nao1215/salesreport/internal/model"
)

// Table file names.
const (
	CategoriesFile   = "categories.csv"
	SuppliersFile    = "suppliers.csv"
	ShippersFile     = "shippers.csv"
	CustomersFile    = "customers.csv"
	EmployeesFile    = "employees.csv"
	ProductsFile     = "products.csv"
	OrdersFile       = "orders.csv"
	OrderDetailsFile = "order_details.csv"
)

var (
	// ErrMissingFile is returned when a required table file is absent.
	ErrMissingFile = errors.New("missing table file")

	// ErrMissingColumn is returned when a required column is absent from a header.
	ErrMissingColumn = errors.New("missing column")
)

// ParseError describes a malformed cell.
type ParseError struct {
	File   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: column %s: %v", e.File, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// dateLayouts are the date formats seen in Northwind exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
}

// LoadDir reads every table file in dir and builds the dataset.
// shippers.csv is optional.
func LoadDir(dir string) (*model.Dataset, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS is LoadDir over an fs.FS.
func LoadFS(fsys fs.FS) (*model.Dataset, error) {
	var (
		t   model.Tables
		err error
	)

	if t.Categories, err = readTable(fsys, CategoriesFile, parseCategory); err != nil {
		return nil, err
	}
	if t.Suppliers, err = readTable(fsys, SuppliersFile, parseSupplier); err != nil {
		return nil, err
	}
	if t.Shippers, err = readTable(fsys, ShippersFile, parseShipper); err != nil && !errors.Is(err, ErrMissingFile) {
		return nil, err
	}
	if t.Customers, err = readTable(fsys, CustomersFile, parseCustomer); err != nil {
		return nil, err
	}
	if t.Employees, err = readTable(fsys, EmployeesFile, parseEmployee); err != nil {
		return nil, err
	}
	if t.Products, err = readTable(fsys, ProductsFile, parseProduct); err != nil {
		return nil, err
	}
	if t.Orders, err = readTable(fsys, OrdersFile, parseOrder); err != nil {
		return nil, err
	}
	if t.Lines, err = readTable(fsys, OrderDetailsFile, parseLine); err != nil {
		return nil, err
	}

	return model.NewDataset(t), nil
}

// normalizeHeader maps "Order_ID", "order id" and "OrderID" to "orderid".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", " ", "").Replace(h)
}

// readTable reads file and parses every record with parse.
func readTable[T any](fsys fs.FS, file string, parse func(*row) (T, error)) ([]T, error) {
	f, err := fsys.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, file)
		}
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s headers: %w", file, err)
	}
	reader.FieldsPerRecord = len(headers)

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[normalizeHeader(h)] = i
	}

	var results []T
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		line, _ := reader.FieldPos(0)
		v, err := parse(&row{file: file, line: line, index: index, rec: rec})
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// row is one CSV record with header-based accessors.
// Column names passed to the accessors are already normalized; the first
// name present in the header wins, so aliases can be listed.
type row struct {
	file  string
	line  int
	index map[string]int
	rec   []string
}

func (r *row) lookup(cols []string) (string, string, bool) {
	for _, c := range cols {
		if i, ok := r.index[c]; ok {
			v := strings.TrimSpace(r.rec[i])
			if strings.EqualFold(v, "null") {
				v = ""
			}
			return c, v, true
		}
	}
	return cols[0], "", false
}

func (r *row) fail(col string, err error) error {
	return &ParseError{File: r.file, Line: r.line, Column: col, Err: err}
}

// str returns a required text column.
func (r *row) str(cols ...string) (string, error) {
	col, v, ok := r.lookup(cols)
	if !ok {
		return "", r.fail(col, ErrMissingColumn)
	}
	return v, nil
}

// optStr returns an optional text column.
func (r *row) optStr(cols ...string) string {
	_, v, _ := r.lookup(cols)
	return v
}

// integer returns a required integer column. An empty required cell is an error.
func (r *row) integer(cols ...string) (int, error) {
	col, v, ok := r.lookup(cols)
	if !ok {
		return 0, r.fail(col, ErrMissingColumn)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, r.fail(col, err)
	}
	return n, nil
}

// optInteger returns an optional integer column; empty means zero.
func (r *row) optInteger(cols ...string) (int, error) {
	col, v, ok := r.lookup(cols)
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, r.fail(col, err)
	}
	return n, nil
}

// dec returns a decimal column. An empty cell is zero when optional.
func (r *row) dec(optional bool, cols ...string) (decimal.Decimal, error) {
	col, v, ok := r.lookup(cols)
	if !ok {
		if optional {
			return decimal.Zero, nil
		}
		return decimal.Zero, r.fail(col, ErrMissingColumn)
	}
	if v == "" && optional {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(v, "$"))
	if err != nil {
		return decimal.Zero, r.fail(col, err)
	}
	return d, nil
}

// date returns an optional date column; ok is false for an empty cell.
func (r *row) date(cols ...string) (time.Time, bool, error) {
	col, v, ok := r.lookup(cols)
	if !ok || v == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, r.fail(col, fmt.Errorf("unrecognized date %q", v))
}

// flag returns an optional boolean column ("1", "0", "true", "false").
func (r *row) flag(cols ...string) (bool, error) {
	col, v, ok := r.lookup(cols)
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, r.fail(col, err)
	}
	return b, nil
}
