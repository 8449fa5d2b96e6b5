// Package main provides the entry point for the salesreport CLI.
//
// salesreport computes sales reports over a Northwind order dataset stored
// in SQLite or PostgreSQL.
//
// Usage:
//
//	salesreport load ./northwind-csv
//	salesreport report --year 1997
//
// See --help for all available options.
package main

// main is the entry point for salesreport.
func main() {
	Execute()
}
