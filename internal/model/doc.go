// Package model defines the core data structures used throughout salesreport.
//
// This package contains the following main types:
//   - Order, OrderLine, Product, Customer, Employee, Category, Supplier,
//     Shipper: the read-only entities of the sales dataset
//   - Dataset: the in-memory relational representation with lookup indexes
//   - Tier and TierPolicy: the loyal customer classification rules
//   - Quarter: a calendar quarter used as a half-open date range
//   - ReportSet and the *Row types: the result tables of each report
//
// Models live in their own package so that the analysis, database, loader,
// pipeline and report packages can share them without import cycles.
//
// Monetary values use decimal.Decimal from github.com/shopspring/decimal so
// that revenue sums are exact. All types are serializable to JSON.
package model
