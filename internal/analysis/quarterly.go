package analysis

import (
	"slices"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
)

// QuarterlyRevenue groups line revenue by the quarter of the parent order's
// required date and returns the periods in chronological order with the
// growth against the immediately preceding period.
//
// Lines whose order is unknown or has no required date are skipped.
// Revenue is rounded to cents before growth is computed.
func QuarterlyRevenue(ds *model.Dataset) []model.QuarterRevenue {
	sums := make(map[model.Quarter]decimal.Decimal)
	for _, l := range ds.Lines() {
		o, ok := ds.Order(l.OrderID)
		if !ok || !hasRequiredDate(o) {
			continue
		}
		q := model.QuarterOf(o.RequiredDate)
		sums[q] = sums[q].Add(l.Revenue())
	}

	quarters := make([]model.Quarter, 0, len(sums))
	for q := range sums {
		quarters = append(quarters, q)
	}
	slices.SortFunc(quarters, func(a, b model.Quarter) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})

	rows := make([]model.QuarterRevenue, len(quarters))
	for i, q := range quarters {
		rows[i] = model.QuarterRevenue{
			Quarter: q,
			Revenue: round(sums[q]),
		}
		if i > 0 {
			rows[i].GrowthPercent = growth(rows[i].Revenue, rows[i-1].Revenue)
		}
	}
	return rows
}
