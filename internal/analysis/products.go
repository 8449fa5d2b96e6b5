package analysis

import (
	"slices"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
)

// TopProducts ranks products by their revenue from orders required in year.
//
// Every product gets its percent of the year's total revenue and a running
// cumulative percent in rank order. Only the top percentRows% of the ranked rows
// are returned, rounded up as SQL "TOP n PERCENT" does; percentRows 100 (or
// more) returns all of them. Products without a known product or supplier
// row are dropped; their revenue still counts toward the total.
func TopProducts(ds *model.Dataset, year int, percentRows int) []model.ProductRevenue {
	sums := make(map[int]decimal.Decimal)
	total := decimal.Zero
	forEachOrderIn(ds, year, func(o model.Order) {
		for _, l := range ds.LinesOf(o.ID) {
			r := l.Revenue()
			sums[l.ProductID] = sums[l.ProductID].Add(r)
			total = total.Add(r)
		}
	})

	ids := make([]int, 0, len(sums))
	for id := range sums {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b int) int {
		if c := sums[b].Cmp(sums[a]); c != 0 {
			return c
		}
		return a - b
	})

	rows := make([]model.ProductRevenue, 0, len(ids))
	cumulative := decimal.Zero
	for _, id := range ids {
		p, ok := ds.Product(id)
		if !ok {
			continue
		}
		s, ok := ds.Supplier(p.SupplierID)
		if !ok {
			continue
		}
		c, _ := ds.Category(p.CategoryID)

		pct := percent(sums[id], total)
		var cum *decimal.Decimal
		if pct != nil {
			cumulative = cumulative.Add(*pct)
			running := cumulative
			cum = &running
		}

		rows = append(rows, model.ProductRevenue{
			ProductID:         id,
			ProductName:       p.Name,
			CategoryID:        p.CategoryID,
			CategoryName:      c.Name,
			SupplierID:        s.ID,
			SupplierName:      s.Name,
			Discontinued:      p.Discontinued,
			Revenue:           round(sums[id]),
			PercentOfTotal:    pct,
			CumulativePercent: cum,
		})
	}

	rows = rows[:topPercentCount(len(rows), percentRows)]
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// topPercentCount returns ceil(n × pct / 100), clamped to [0, n].
func topPercentCount(n, pct int) int {
	if pct <= 0 || n == 0 {
		return 0
	}
	if pct >= 100 {
		return n
	}
	return (n*pct + 99) / 100
}
