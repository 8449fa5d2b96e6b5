// Package loader reads the sales dataset from a directory of CSV files, one
// file per Northwind table (orders.csv, order_details.csv, ...).
//
// Columns are mapped by header name, ignoring case, spaces and underscores,
// so both the SQL Server export (OrderID, RequiredDate) and the PostgreSQL
// dump (order_id, required_date) load unchanged. Column order is irrelevant
// and unknown columns are ignored.
package loader
