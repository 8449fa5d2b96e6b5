package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"github.com/nao1215/salesreport/internal/model"
)

// pqUndefinedTable is the PostgreSQL error code for a missing relation.
const pqUndefinedTable = "42P01"

// LoadDataset reads every table into an indexed model.Dataset.
// The shippers table is optional on PostgreSQL: some Northwind ports omit it.
func (s *Store) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	var (
		t   model.Tables
		err error
	)

	if t.Categories, err = queryRows(ctx, s.db, "categories",
		`SELECT category_id, category_name FROM categories`, scanCategory); err != nil {
		return nil, err
	}
	if t.Suppliers, err = queryRows(ctx, s.db, "suppliers",
		`SELECT supplier_id, company_name, country FROM suppliers`, scanSupplier); err != nil {
		return nil, err
	}
	t.Shippers, err = queryRows(ctx, s.db, "shippers",
		`SELECT shipper_id, company_name FROM shippers`, scanShipper)
	if err != nil {
		if !s.isUndefinedTable(err) {
			return nil, err
		}
		slog.Debug("shippers table not found, continuing without shippers")
	}
	if t.Customers, err = queryRows(ctx, s.db, "customers",
		`SELECT customer_id, company_name, country FROM customers`, scanCustomer); err != nil {
		return nil, err
	}
	if t.Employees, err = queryRows(ctx, s.db, "employees",
		`SELECT employee_id, first_name, last_name, title FROM employees`, scanEmployee); err != nil {
		return nil, err
	}
	if t.Products, err = queryRows(ctx, s.db, "products",
		`SELECT product_id, product_name, category_id, supplier_id, discontinued FROM products`, scanProduct); err != nil {
		return nil, err
	}
	if t.Orders, err = queryRows(ctx, s.db, "orders",
		`SELECT order_id, customer_id, employee_id, order_date, required_date, shipped_date, ship_via FROM orders`, scanOrder); err != nil {
		return nil, err
	}
	if t.Lines, err = queryRows(ctx, s.db, "order_details",
		`SELECT order_id, product_id, unit_price, quantity, discount FROM order_details`, scanLine); err != nil {
		return nil, err
	}

	return model.NewDataset(t), nil
}

func (s *Store) isUndefinedTable(err error) bool {
	if s.driver != DriverPostgres {
		return false
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable
}

// queryRows runs query and scans every row with scan.
// Errors name the table.
func queryRows[T any](ctx context.Context, db *sql.DB, table, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return results, nil
}

func scanCategory(rows *sql.Rows) (model.Category, error) {
	var c model.Category
	err := rows.Scan(&c.ID, &c.Name)
	return c, err
}

func scanSupplier(rows *sql.Rows) (model.Supplier, error) {
	var (
		s       model.Supplier
		country sql.NullString
	)
	if err := rows.Scan(&s.ID, &s.Name, &country); err != nil {
		return s, err
	}
	s.Country = country.String
	return s, nil
}

func scanShipper(rows *sql.Rows) (model.Shipper, error) {
	var s model.Shipper
	err := rows.Scan(&s.ID, &s.Name)
	return s, err
}

func scanCustomer(rows *sql.Rows) (model.Customer, error) {
	var (
		c       model.Customer
		country sql.NullString
	)
	if err := rows.Scan(&c.ID, &c.CompanyName, &country); err != nil {
		return c, err
	}
	// customer_id is bpchar(5) in the PostgreSQL dump.
	c.ID = strings.TrimSpace(c.ID)
	c.Country = country.String
	return c, nil
}

func scanEmployee(rows *sql.Rows) (model.Employee, error) {
	var (
		e     model.Employee
		title sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &title); err != nil {
		return e, err
	}
	e.Title = title.String
	return e, nil
}

func scanProduct(rows *sql.Rows) (model.Product, error) {
	var (
		p                  model.Product
		category, supplier sql.NullInt64
		discontinued       any
	)
	if err := rows.Scan(&p.ID, &p.Name, &category, &supplier, &discontinued); err != nil {
		return p, err
	}
	d, err := toBool(discontinued)
	if err != nil {
		return p, fmt.Errorf("product %d: discontinued: %w", p.ID, err)
	}
	p.CategoryID = int(category.Int64)
	p.SupplierID = int(supplier.Int64)
	p.Discontinued = d
	return p, nil
}

func scanOrder(rows *sql.Rows) (model.Order, error) {
	var (
		o                            model.Order
		customer                     sql.NullString
		employee, shipVia            sql.NullInt64
		orderDate, required, shipped any
	)
	if err := rows.Scan(&o.ID, &customer, &employee, &orderDate, &required, &shipped, &shipVia); err != nil {
		return o, err
	}
	o.CustomerID = strings.TrimSpace(customer.String)
	o.EmployeeID = int(employee.Int64)
	o.ShipperID = int(shipVia.Int64)

	var err error
	if o.OrderDate, _, err = toDate(orderDate); err != nil {
		return o, fmt.Errorf("order %d: order_date: %w", o.ID, err)
	}
	if o.RequiredDate, _, err = toDate(required); err != nil {
		return o, fmt.Errorf("order %d: required_date: %w", o.ID, err)
	}
	d, ok, err := toDate(shipped)
	if err != nil {
		return o, fmt.Errorf("order %d: shipped_date: %w", o.ID, err)
	}
	if ok {
		o.ShippedDate = &d
	}
	return o, nil
}

func scanLine(rows *sql.Rows) (model.OrderLine, error) {
	var l model.OrderLine
	// decimal.Decimal implements sql.Scanner for numeric, real and text columns.
	err := rows.Scan(&l.OrderID, &l.ProductID, &l.UnitPrice, &l.Quantity, &l.Discount)
	return l, err
}
