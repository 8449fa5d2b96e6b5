package analysis

import (
	"slices"
	"strings"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
)

// RevenueByCountry sums the revenue of orders required in year per customer
// country, ordered by revenue descending and then country name.
// Orders of unknown customers are excluded.
func RevenueByCountry(ds *model.Dataset, year int) []model.CountryRevenue {
	sums := make(map[string]decimal.Decimal)
	forEachOrderIn(ds, year, func(o model.Order) {
		c, ok := ds.Customer(o.CustomerID)
		if !ok {
			return
		}
		lines := ds.LinesOf(o.ID)
		if len(lines) == 0 {
			return
		}
		sum := sums[c.Country]
		for _, l := range lines {
			sum = sum.Add(l.Revenue())
		}
		sums[c.Country] = sum
	})

	rows := make([]model.CountryRevenue, 0, len(sums))
	for country, sum := range sums {
		rows = append(rows, model.CountryRevenue{Country: country, Revenue: sum})
	}
	slices.SortFunc(rows, func(a, b model.CountryRevenue) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.Country, b.Country)
	})
	for i := range rows {
		rows[i].Revenue = round(rows[i].Revenue)
	}
	return rows
}
