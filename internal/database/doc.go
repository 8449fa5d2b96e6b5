// Package database reads the sales dataset from SQL storage.
//
// Two drivers are supported:
//   - sqlite: a single file managed by salesreport (modernc.org/sqlite).
//     The Northwind schema is created on open and "salesreport load" fills it.
//   - postgres: an existing Northwind database (github.com/lib/pq),
//     opened read-only.
//
// Table and column names follow the snake_case Northwind schema
// (orders.required_date, order_details.unit_price, ...). Dates may come back
// from the driver as time.Time or as text; both are accepted.
package database
