package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nao1215/salesreport/internal/model"
)

// dateLayout is the layout of DATE columns written by Import.
const dateLayout = "2006-01-02"

// Import writes every row of ds into the store in one transaction.
// Rows are upserted by primary key, so importing the same dataset twice is
// a no-op. PostgreSQL stores return ErrReadOnly.
func (s *Store) Import(ctx context.Context, ds *model.Dataset) (err error) {
	if s.driver != DriverSQLite {
		return fmt.Errorf("import into %s: %w", s.driver, ErrReadOnly)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	t := ds.Tables()

	if err = insertRows(ctx, tx, "categories", `
	INSERT INTO categories (category_id, category_name) VALUES (?, ?)
	ON CONFLICT(category_id) DO UPDATE SET category_name = excluded.category_name
	`, t.Categories, func(c model.Category) []any {
		return []any{c.ID, c.Name}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "suppliers", `
	INSERT INTO suppliers (supplier_id, company_name, country) VALUES (?, ?, ?)
	ON CONFLICT(supplier_id) DO UPDATE SET
		company_name = excluded.company_name,
		country = excluded.country
	`, t.Suppliers, func(s model.Supplier) []any {
		return []any{s.ID, s.Name, nullString(s.Country)}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "shippers", `
	INSERT INTO shippers (shipper_id, company_name) VALUES (?, ?)
	ON CONFLICT(shipper_id) DO UPDATE SET company_name = excluded.company_name
	`, t.Shippers, func(s model.Shipper) []any {
		return []any{s.ID, s.Name}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "customers", `
	INSERT INTO customers (customer_id, company_name, country) VALUES (?, ?, ?)
	ON CONFLICT(customer_id) DO UPDATE SET
		company_name = excluded.company_name,
		country = excluded.country
	`, t.Customers, func(c model.Customer) []any {
		return []any{c.ID, c.CompanyName, nullString(c.Country)}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "employees", `
	INSERT INTO employees (employee_id, last_name, first_name, title) VALUES (?, ?, ?, ?)
	ON CONFLICT(employee_id) DO UPDATE SET
		last_name = excluded.last_name,
		first_name = excluded.first_name,
		title = excluded.title
	`, t.Employees, func(e model.Employee) []any {
		return []any{e.ID, e.LastName, e.FirstName, nullString(e.Title)}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "products", `
	INSERT INTO products (product_id, product_name, supplier_id, category_id, discontinued) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(product_id) DO UPDATE SET
		product_name = excluded.product_name,
		supplier_id = excluded.supplier_id,
		category_id = excluded.category_id,
		discontinued = excluded.discontinued
	`, t.Products, func(p model.Product) []any {
		discontinued := 0
		if p.Discontinued {
			discontinued = 1
		}
		return []any{p.ID, p.Name, p.SupplierID, p.CategoryID, discontinued}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "orders", `
	INSERT INTO orders (order_id, customer_id, employee_id, order_date, required_date, shipped_date, ship_via)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(order_id) DO UPDATE SET
		customer_id = excluded.customer_id,
		employee_id = excluded.employee_id,
		order_date = excluded.order_date,
		required_date = excluded.required_date,
		shipped_date = excluded.shipped_date,
		ship_via = excluded.ship_via
	`, t.Orders, func(o model.Order) []any {
		var shipped any
		if o.ShippedDate != nil {
			shipped = o.ShippedDate.Format(dateLayout)
		}
		return []any{o.ID, o.CustomerID, o.EmployeeID, nullDate(o.OrderDate), nullDate(o.RequiredDate), shipped, o.ShipperID}
	}); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, "order_details", `
	INSERT INTO order_details (order_id, product_id, unit_price, quantity, discount) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(order_id, product_id) DO UPDATE SET
		unit_price = excluded.unit_price,
		quantity = excluded.quantity,
		discount = excluded.discount
	`, t.Lines, func(l model.OrderLine) []any {
		return []any{l.OrderID, l.ProductID, l.UnitPrice.String(), l.Quantity, l.Discount.String()}
	}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// insertRows prepares query once and executes it for every row.
func insertRows[T any](ctx context.Context, tx *sql.Tx, table, query string, rows []T, args func(T) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, args(row)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}
