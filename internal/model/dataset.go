package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Dataset validation errors. Validate wraps these with the offending row so
// callers can test the category with errors.Is.
var (
	// ErrDanglingReference is returned when a row references a missing entity.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrInvalidDiscount is returned when a line discount is outside [0, 1].
	ErrInvalidDiscount = errors.New("discount out of range [0, 1]")

	// ErrInvalidQuantity is returned when a line quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrDuplicateID is returned when two rows of a table share an identifier.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// Tables holds the raw rows of the sales dataset as read from a source.
// It is the input of NewDataset.
type Tables struct {
	Categories []Category
	Suppliers  []Supplier
	Shippers   []Shipper
	Customers  []Customer
	Employees  []Employee
	Products   []Product
	Orders     []Order
	Lines      []OrderLine
}

// Dataset is an immutable, indexed view of the sales dataset.
// It is safe for concurrent readers once constructed.
type Dataset struct {
	tables Tables

	categories map[int]Category
	suppliers  map[int]Supplier
	shippers   map[int]Shipper
	customers  map[string]Customer
	employees  map[int]Employee
	products   map[int]Product
	orders     map[int]Order

	// linesByOrder maps an order ID to its lines, ordered by product ID.
	linesByOrder map[int][]OrderLine

	// duplicates holds one error per identifier repeated in the input.
	duplicates []error
}

// lineKey identifies an order line: one line per product and order.
type lineKey struct {
	orderID, productID int
}

// keepLast removes all but the last row of each run of equal keys from a
// sorted slice, in place. It returns the kept rows and the repeated keys.
func keepLast[T any, K comparable](rows []T, key func(T) K) ([]T, []K) {
	var dups []K
	out := rows[:0]
	for i, r := range rows {
		k := key(r)
		if i+1 < len(rows) && key(rows[i+1]) == k {
			if len(dups) == 0 || dups[len(dups)-1] != k {
				dups = append(dups, k)
			}
			continue
		}
		out = append(out, r)
	}
	return out, dups
}

// dedupe applies keepLast to rows and records one ErrDuplicateID per
// repeated key, described by name.
func dedupe[T any, K comparable](ds *Dataset, rows []T, key func(T) K, name func(K) string) []T {
	kept, dups := keepLast(rows, key)
	for _, k := range dups {
		ds.duplicates = append(ds.duplicates, fmt.Errorf("%s: %w", name(k), ErrDuplicateID))
	}
	return kept
}

// NewDataset copies the given tables, orders every table by identifier and
// builds the lookup indexes. When an identifier is repeated within a table,
// only the last row with it is kept (order lines are identified by order and
// product); Validate reports the repetition as ErrDuplicateID.
func NewDataset(t Tables) *Dataset {
	ds := &Dataset{
		tables: Tables{
			Categories: slices.Clone(t.Categories),
			Suppliers:  slices.Clone(t.Suppliers),
			Shippers:   slices.Clone(t.Shippers),
			Customers:  slices.Clone(t.Customers),
			Employees:  slices.Clone(t.Employees),
			Products:   slices.Clone(t.Products),
			Orders:     slices.Clone(t.Orders),
			Lines:      slices.Clone(t.Lines),
		},
		categories:   make(map[int]Category, len(t.Categories)),
		suppliers:    make(map[int]Supplier, len(t.Suppliers)),
		shippers:     make(map[int]Shipper, len(t.Shippers)),
		customers:    make(map[string]Customer, len(t.Customers)),
		employees:    make(map[int]Employee, len(t.Employees)),
		products:     make(map[int]Product, len(t.Products)),
		orders:       make(map[int]Order, len(t.Orders)),
		linesByOrder: make(map[int][]OrderLine, len(t.Orders)),
	}

	slices.SortStableFunc(ds.tables.Categories, func(a, b Category) int { return a.ID - b.ID })
	slices.SortStableFunc(ds.tables.Suppliers, func(a, b Supplier) int { return a.ID - b.ID })
	slices.SortStableFunc(ds.tables.Shippers, func(a, b Shipper) int { return a.ID - b.ID })
	slices.SortStableFunc(ds.tables.Customers, func(a, b Customer) int { return strings.Compare(a.ID, b.ID) })
	slices.SortStableFunc(ds.tables.Employees, func(a, b Employee) int { return a.ID - b.ID })
	slices.SortStableFunc(ds.tables.Products, func(a, b Product) int { return a.ID - b.ID })
	slices.SortStableFunc(ds.tables.Orders, func(a, b Order) int { return a.ID - b.ID })
	slices.SortStableFunc(ds.tables.Lines, func(a, b OrderLine) int {
		if a.OrderID != b.OrderID {
			return a.OrderID - b.OrderID
		}
		return a.ProductID - b.ProductID
	})

	tb := &ds.tables
	tb.Categories = dedupe(ds, tb.Categories, func(c Category) int { return c.ID },
		func(id int) string { return fmt.Sprintf("category %d", id) })
	tb.Suppliers = dedupe(ds, tb.Suppliers, func(s Supplier) int { return s.ID },
		func(id int) string { return fmt.Sprintf("supplier %d", id) })
	tb.Shippers = dedupe(ds, tb.Shippers, func(s Shipper) int { return s.ID },
		func(id int) string { return fmt.Sprintf("shipper %d", id) })
	tb.Customers = dedupe(ds, tb.Customers, func(c Customer) string { return c.ID },
		func(id string) string { return fmt.Sprintf("customer %q", id) })
	tb.Employees = dedupe(ds, tb.Employees, func(e Employee) int { return e.ID },
		func(id int) string { return fmt.Sprintf("employee %d", id) })
	tb.Products = dedupe(ds, tb.Products, func(p Product) int { return p.ID },
		func(id int) string { return fmt.Sprintf("product %d", id) })
	tb.Orders = dedupe(ds, tb.Orders, func(o Order) int { return o.ID },
		func(id int) string { return fmt.Sprintf("order %d", id) })
	tb.Lines = dedupe(ds, tb.Lines, func(l OrderLine) lineKey { return lineKey{l.OrderID, l.ProductID} },
		func(k lineKey) string { return fmt.Sprintf("order line (%d, %d)", k.orderID, k.productID) })

	for _, c := range ds.tables.Categories {
		ds.categories[c.ID] = c
	}
	for _, s := range ds.tables.Suppliers {
		ds.suppliers[s.ID] = s
	}
	for _, s := range ds.tables.Shippers {
		ds.shippers[s.ID] = s
	}
	for _, c := range ds.tables.Customers {
		ds.customers[c.ID] = c
	}
	for _, e := range ds.tables.Employees {
		ds.employees[e.ID] = e
	}
	for _, p := range ds.tables.Products {
		ds.products[p.ID] = p
	}
	for _, o := range ds.tables.Orders {
		ds.orders[o.ID] = o
	}
	for _, l := range ds.tables.Lines {
		ds.linesByOrder[l.OrderID] = append(ds.linesByOrder[l.OrderID], l)
	}

	return ds
}

// Tables returns a copy of the dataset rows, each table ordered by identifier.
func (ds *Dataset) Tables() Tables {
	return Tables{
		Categories: slices.Clone(ds.tables.Categories),
		Suppliers:  slices.Clone(ds.tables.Suppliers),
		Shippers:   slices.Clone(ds.tables.Shippers),
		Customers:  slices.Clone(ds.tables.Customers),
		Employees:  slices.Clone(ds.tables.Employees),
		Products:   slices.Clone(ds.tables.Products),
		Orders:     slices.Clone(ds.tables.Orders),
		Lines:      slices.Clone(ds.tables.Lines),
	}
}

// Orders returns the orders ordered by ID. The slice must not be modified.
func (ds *Dataset) Orders() []Order { return ds.tables.Orders }

// Lines returns the order lines ordered by (order ID, product ID).
// The slice must not be modified.
func (ds *Dataset) Lines() []OrderLine { return ds.tables.Lines }

// Products returns the products ordered by ID. The slice must not be modified.
func (ds *Dataset) Products() []Product { return ds.tables.Products }

// Customers returns the customers ordered by ID. The slice must not be modified.
func (ds *Dataset) Customers() []Customer { return ds.tables.Customers }

// Employees returns the employees ordered by ID. The slice must not be modified.
func (ds *Dataset) Employees() []Employee { return ds.tables.Employees }

// LinesOf returns the lines of an order ordered by product ID.
func (ds *Dataset) LinesOf(orderID int) []OrderLine { return ds.linesByOrder[orderID] }

// Order looks up an order by ID.
func (ds *Dataset) Order(id int) (Order, bool) {
	o, ok := ds.orders[id]
	return o, ok
}

// Product looks up a product by ID.
func (ds *Dataset) Product(id int) (Product, bool) {
	p, ok := ds.products[id]
	return p, ok
}

// Customer looks up a customer by ID.
func (ds *Dataset) Customer(id string) (Customer, bool) {
	c, ok := ds.customers[id]
	return c, ok
}

// Employee looks up an employee by ID.
func (ds *Dataset) Employee(id int) (Employee, bool) {
	e, ok := ds.employees[id]
	return e, ok
}

// Category looks up a category by ID.
func (ds *Dataset) Category(id int) (Category, bool) {
	c, ok := ds.categories[id]
	return c, ok
}

// Supplier looks up a supplier by ID.
func (ds *Dataset) Supplier(id int) (Supplier, bool) {
	s, ok := ds.suppliers[id]
	return s, ok
}

// Shipper looks up a shipper by ID.
func (ds *Dataset) Shipper(id int) (Shipper, bool) {
	s, ok := ds.shippers[id]
	return s, ok
}

// Stats returns the number of rows per table, keyed by table name.
func (ds *Dataset) Stats() map[string]int {
	return map[string]int{
		"categories":    len(ds.tables.Categories),
		"suppliers":     len(ds.tables.Suppliers),
		"shippers":      len(ds.tables.Shippers),
		"customers":     len(ds.tables.Customers),
		"employees":     len(ds.tables.Employees),
		"products":      len(ds.tables.Products),
		"orders":        len(ds.tables.Orders),
		"order_details": len(ds.tables.Lines),
	}
}

// Validate checks the referential and value invariants of the dataset.
// It returns nil when every invariant holds, otherwise one joined error with
// an entry per violating row.
//
// Reports never depend on Validate: a missing reference is treated as "no
// match" by each report's join semantics.
func (ds *Dataset) Validate() error {
	errs := slices.Clone(ds.duplicates)
	one := decimal.NewFromInt(1)

	for _, l := range ds.tables.Lines {
		if _, ok := ds.orders[l.OrderID]; !ok {
			errs = append(errs, fmt.Errorf("order line (%d, %d): order %d: %w", l.OrderID, l.ProductID, l.OrderID, ErrDanglingReference))
		}
		if _, ok := ds.products[l.ProductID]; !ok {
			errs = append(errs, fmt.Errorf("order line (%d, %d): product %d: %w", l.OrderID, l.ProductID, l.ProductID, ErrDanglingReference))
		}
		if l.Discount.IsNegative() || l.Discount.GreaterThan(one) {
			errs = append(errs, fmt.Errorf("order line (%d, %d): discount %s: %w", l.OrderID, l.ProductID, l.Discount, ErrInvalidDiscount))
		}
		if l.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("order line (%d, %d): quantity %d: %w", l.OrderID, l.ProductID, l.Quantity, ErrInvalidQuantity))
		}
	}

	for _, o := range ds.tables.Orders {
		if _, ok := ds.customers[o.CustomerID]; !ok {
			errs = append(errs, fmt.Errorf("order %d: customer %q: %w", o.ID, o.CustomerID, ErrDanglingReference))
		}
		if _, ok := ds.employees[o.EmployeeID]; !ok {
			errs = append(errs, fmt.Errorf("order %d: employee %d: %w", o.ID, o.EmployeeID, ErrDanglingReference))
		}
	}

	for _, p := range ds.tables.Products {
		if _, ok := ds.suppliers[p.SupplierID]; !ok {
			errs = append(errs, fmt.Errorf("product %d: supplier %d: %w", p.ID, p.SupplierID, ErrDanglingReference))
		}
		if _, ok := ds.categories[p.CategoryID]; !ok {
			errs = append(errs, fmt.Errorf("product %d: category %d: %w", p.ID, p.CategoryID, ErrDanglingReference))
		}
	}

	return errors.Join(errs...)
}
