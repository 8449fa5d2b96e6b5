package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testTables() Tables {
	day := time.Date(1997, time.March, 1, 0, 0, 0, 0, time.UTC)
	return Tables{
		Categories: []Category{{ID: 1, Name: "Beverages"}},
		Suppliers:  []Supplier{{ID: 1, Name: "Exotic Liquids"}},
		Customers:  []Customer{{ID: "VINET", Country: "France"}, {ID: "ALFKI", Country: "Germany"}},
		Employees:  []Employee{{ID: 5, FirstName: "Steven", LastName: "Buchanan"}},
		Products: []Product{
			{ID: 2, Name: "Chang", CategoryID: 1, SupplierID: 1},
			{ID: 1, Name: "Chai", CategoryID: 1, SupplierID: 1},
		},
		Orders: []Order{
			{ID: 10249, CustomerID: "VINET", EmployeeID: 5, OrderDate: day, RequiredDate: day},
			{ID: 10248, CustomerID: "ALFKI", EmployeeID: 5, OrderDate: day, RequiredDate: day},
		},
		Lines: []OrderLine{
			{OrderID: 10249, ProductID: 2, UnitPrice: decimal.NewFromInt(19), Quantity: 1},
			{OrderID: 10248, ProductID: 2, UnitPrice: decimal.NewFromInt(19), Quantity: 2},
			{OrderID: 10248, ProductID: 1, UnitPrice: decimal.NewFromInt(18), Quantity: 3},
		},
	}
}

// TestNewDataset verifies ordering and lookups of the indexed dataset.
func TestNewDataset(t *testing.T) {
	t.Parallel()

	ds := NewDataset(testTables())

	t.Run("orders tables by identifier", func(t *testing.T) {
		t.Parallel()
		if got := ds.Orders()[0].ID; got != 10248 {
			t.Errorf("expected first order 10248, got %d", got)
		}
		if got := ds.Customers()[0].ID; got != "ALFKI" {
			t.Errorf("expected first customer ALFKI, got %s", got)
		}
		if got := ds.Products()[0].Name; got != "Chai" {
			t.Errorf("expected first product Chai, got %s", got)
		}
	})

	t.Run("groups lines by order ordered by product", func(t *testing.T) {
		t.Parallel()
		lines := ds.LinesOf(10248)
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0].ProductID != 1 || lines[1].ProductID != 2 {
			t.Errorf("expected products 1, 2; got %d, %d", lines[0].ProductID, lines[1].ProductID)
		}
		if len(ds.LinesOf(99999)) != 0 {
			t.Error("expected no lines for unknown order")
		}
	})

	t.Run("looks up entities", func(t *testing.T) {
		t.Parallel()
		if _, ok := ds.Customer("VINET"); !ok {
			t.Error("expected customer VINET")
		}
		if _, ok := ds.Customer("NOPE"); ok {
			t.Error("expected unknown customer to be missing")
		}
		if e, ok := ds.Employee(5); !ok || e.FullName() != "Steven Buchanan" {
			t.Errorf("expected Steven Buchanan, got %+v", e)
		}
	})

	t.Run("copies the input tables", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		d := NewDataset(tables)
		tables.Orders[0].CustomerID = "CHANGED"
		if o, _ := d.Order(10249); o.CustomerID != "VINET" {
			t.Errorf("dataset must not alias input slices, got %s", o.CustomerID)
		}
	})

	t.Run("repeated identifiers keep the last row", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		tables.Orders = append(tables.Orders, Order{ID: 10248, CustomerID: "VINET", EmployeeID: 5})
		tables.Lines = append(tables.Lines, OrderLine{OrderID: 10248, ProductID: 1, UnitPrice: decimal.NewFromInt(20), Quantity: 1})

		d := NewDataset(tables)
		if n := len(d.Orders()); n != 2 {
			t.Fatalf("expected 2 orders, got %d", n)
		}
		if o, _ := d.Order(10248); o.CustomerID != "VINET" || d.Orders()[0].CustomerID != "VINET" {
			t.Errorf("expected the last order row to win, got %+v", o)
		}
		lines := d.LinesOf(10248)
		if len(lines) != 2 || !lines[0].UnitPrice.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected the last line row to win, got %+v", lines)
		}
		if n := len(d.Lines()); n != 3 {
			t.Errorf("expected 3 lines, got %d", n)
		}
	})

	t.Run("reports table sizes", func(t *testing.T) {
		t.Parallel()
		stats := ds.Stats()
		if stats["order_details"] != 3 {
			t.Errorf("expected 3 order_details, got %d", stats["order_details"])
		}
		if stats["orders"] != 2 {
			t.Errorf("expected 2 orders, got %d", stats["orders"])
		}
	})
}

// TestOrderLineRevenue verifies unitPrice × quantity × (1 − discount).
func TestOrderLineRevenue(t *testing.T) {
	t.Parallel()

	l := OrderLine{
		UnitPrice: decimal.RequireFromString("14.4"),
		Quantity:  12,
		Discount:  decimal.RequireFromString("0.15"),
	}
	if got := l.Revenue().StringFixed(2); got != "146.88" {
		t.Errorf("expected 146.88, got %s", got)
	}
}

// TestDatasetValidate verifies invariant checks.
func TestDatasetValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid dataset returns nil", func(t *testing.T) {
		t.Parallel()
		if err := NewDataset(testTables()).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("dangling order reference", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		tables.Lines = append(tables.Lines, OrderLine{OrderID: 1, ProductID: 1, Quantity: 1})
		err := NewDataset(tables).Validate()
		if !errors.Is(err, ErrDanglingReference) {
			t.Errorf("expected ErrDanglingReference, got %v", err)
		}
		if !strings.Contains(err.Error(), "order 1") {
			t.Errorf("expected error to name order 1, got %v", err)
		}
	})

	t.Run("discount above one", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		tables.Lines[0].Discount = decimal.RequireFromString("1.5")
		if err := NewDataset(tables).Validate(); !errors.Is(err, ErrInvalidDiscount) {
			t.Errorf("expected ErrInvalidDiscount, got %v", err)
		}
	})

	t.Run("duplicate order ID", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		tables.Orders = append(tables.Orders, tables.Orders[0])
		err := NewDataset(tables).Validate()
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
		if !strings.Contains(err.Error(), "order 10249") {
			t.Errorf("expected error to name order 10249, got %v", err)
		}
	})

	t.Run("duplicate order line", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		tables.Lines = append(tables.Lines, tables.Lines[0])
		err := NewDataset(tables).Validate()
		if !errors.Is(err, ErrDuplicateID) || !strings.Contains(err.Error(), "order line (10249, 2)") {
			t.Errorf("expected duplicate line (10249, 2), got %v", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		t.Parallel()
		tables := testTables()
		tables.Lines[0].Quantity = 0
		if err := NewDataset(tables).Validate(); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}
