package analysis

import (
	"time"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
)

// scale is the number of decimal places of rounded money and percentages.
const scale = 2

var hundred = decimal.NewFromInt(100)

// round rounds d to two decimal places.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(scale)
}

// percent returns round(100 × num / den), or nil when den is zero.
func percent(num, den decimal.Decimal) *decimal.Decimal {
	if den.IsZero() {
		return nil
	}
	p := round(num.Mul(hundred).Div(den))
	return &p
}

// growth returns round((current / previous − 1) × 100), or nil when
// previous is zero.
func growth(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	g := round(current.Div(previous).Sub(decimal.NewFromInt(1)).Mul(hundred))
	return &g
}

// hasRequiredDate reports whether the order carries a required date.
func hasRequiredDate(o model.Order) bool {
	return !o.RequiredDate.IsZero()
}

// requiredIn reports whether the order is required in year.
func requiredIn(o model.Order, year int) bool {
	return hasRequiredDate(o) && o.RequiredDate.Year() == year
}

// requiredBetween reports whether the order is required in [start, end).
func requiredBetween(o model.Order, start, end time.Time) bool {
	return hasRequiredDate(o) && !o.RequiredDate.Before(start) && o.RequiredDate.Before(end)
}

// orderTotal returns the undiscounted-by-policy revenue of an order,
// the sum of its line revenues.
func orderTotal(ds *model.Dataset, orderID int) decimal.Decimal {
	total := decimal.Zero
	for _, l := range ds.LinesOf(orderID) {
		total = total.Add(l.Revenue())
	}
	return total
}

// forEachOrderIn calls fn for every order required in year, in ID order.
func forEachOrderIn(ds *model.Dataset, year int, fn func(o model.Order)) {
	for _, o := range ds.Orders() {
		if requiredIn(o, year) {
			fn(o)
		}
	}
}

// customerRevenue sums the revenue per customer ID of the orders required in
// year. Customers without orders that year are absent from the map.
func customerRevenue(ds *model.Dataset, year int) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	forEachOrderIn(ds, year, func(o model.Order) {
		lines := ds.LinesOf(o.ID)
		if len(lines) == 0 {
			return
		}
		sum := out[o.CustomerID]
		for _, l := range lines {
			sum = sum.Add(l.Revenue())
		}
		out[o.CustomerID] = sum
	})
	return out
}

// YearRevenue returns the total line revenue of the orders required in year.
func YearRevenue(ds *model.Dataset, year int) decimal.Decimal {
	total := decimal.Zero
	forEachOrderIn(ds, year, func(o model.Order) {
		total = total.Add(orderTotal(ds, o.ID))
	})
	return total
}
