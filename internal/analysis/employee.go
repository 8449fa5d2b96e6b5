package analysis

import (
	"slices"
	"time"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
)

// DiscountRates returns the discount rate each customer earns for the year
// after policyYear. Customers with revenue in policyYear are present in the
// map; those outside the policy countries get a zero rate.
func DiscountRates(ds *model.Dataset, policyYear int, policy model.TierPolicy) map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal)
	for id, revenue := range customerRevenue(ds, policyYear) {
		c, ok := ds.Customer(id)
		if !ok {
			continue
		}
		rate := decimal.Zero
		if policy.Eligible(c.Country) {
			rate = policy.Discount(policy.Classify(revenue))
		}
		rates[id] = rate
	}
	return rates
}

// EmployeePerformance ranks employees by the revenue of the orders required
// in [start, end) after the loyal customer discount.
//
// The policy year is the year before start. An order gets its customer's
// discount when it was placed in start's year and the customer had revenue
// in the policy year. Orders handled by an unknown
// employee count toward the total but are not ranked. top limits the
// Top slice; the full ranking is always returned.
func EmployeePerformance(ds *model.Dataset, start, end time.Time, policy model.TierPolicy, top int) *model.EmployeeReport {
	policyYear := start.Year() - 1
	rates := DiscountRates(ds, policyYear, policy)
	yearStart := time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, start.Location())
	yearEnd := yearStart.AddDate(1, 0, 0)

	sums := make(map[int]decimal.Decimal)
	total := decimal.Zero
	for _, o := range ds.Orders() {
		if !requiredBetween(o, start, end) || len(ds.LinesOf(o.ID)) == 0 {
			continue
		}
		amount := orderTotal(ds, o.ID)
		if rate, ok := rates[o.CustomerID]; ok && !o.OrderDate.Before(yearStart) && o.OrderDate.Before(yearEnd) {
			amount = amount.Mul(decimal.NewFromInt(1).Sub(rate))
		}
		sums[o.EmployeeID] = sums[o.EmployeeID].Add(amount)
		total = total.Add(amount)
	}

	ranking := make([]model.EmployeeRevenue, 0, len(sums))
	for id, sum := range sums {
		e, ok := ds.Employee(id)
		if !ok {
			continue
		}
		ranking = append(ranking, model.EmployeeRevenue{
			EmployeeID:       id,
			FirstName:        e.FirstName,
			LastName:         e.LastName,
			Title:            e.Title,
			Revenue:          sum,
			PercentOfQuarter: percent(sum, total),
		})
	}
	slices.SortFunc(ranking, func(a, b model.EmployeeRevenue) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return a.EmployeeID - b.EmployeeID
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
		ranking[i].Revenue = round(ranking[i].Revenue)
	}

	n := min(max(top, 0), len(ranking))
	return &model.EmployeeReport{
		Start:      start,
		End:        end,
		PolicyYear: policyYear,
		Total:      round(total),
		Ranking:    ranking,
		Top:        slices.Clone(ranking[:n]),
	}
}
