// Package analysis computes the sales reports of salesreport.
//
// Every exported function is a pure, deterministic function of a
// *model.Dataset and its parameters. Functions never return an error: a
// filter that matches nothing yields an empty table, and a percentage over a
// zero denominator is nil.
//
// Rounding follows the original SQL reports: money and percentages are
// rounded half away from zero to two decimal places with decimal.Round, and
// a running total sums the already rounded row values.
//
// Ties in a ranking are broken by ascending identifier, so the output order
// does not depend on map iteration or input order.
package analysis
