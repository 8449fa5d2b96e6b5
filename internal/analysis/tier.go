package analysis

import (
	"slices"
	"strings"

	"github.com/nao1215/salesreport/internal/model"
)

// CustomerTiers classifies the customers of the policy countries on their
// revenue from orders required in year. Only customers with revenue in that
// year are classified; every classified customer is in exactly one tier.
func CustomerTiers(ds *model.Dataset, year int, policy model.TierPolicy) *model.TierReport {
	report := &model.TierReport{
		Year:      year,
		Countries: slices.Clone(policy.Countries),
		Counts:    make([]model.TierCount, len(model.Tiers)),
		Customers: make([]model.CustomerTier, 0),
	}
	for i, t := range model.Tiers {
		report.Counts[i] = model.TierCount{Tier: t}
	}

	for id, revenue := range customerRevenue(ds, year) {
		c, ok := ds.Customer(id)
		if !ok || !policy.Eligible(c.Country) {
			continue
		}
		tier := policy.Classify(revenue)
		report.Customers = append(report.Customers, model.CustomerTier{
			CustomerID: id,
			Country:    c.Country,
			Revenue:    revenue,
			Tier:       tier,
		})
		for i := range report.Counts {
			if report.Counts[i].Tier == tier {
				report.Counts[i].Count++
			}
		}
	}

	slices.SortFunc(report.Customers, func(a, b model.CustomerTier) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.CustomerID, b.CustomerID)
	})
	for i := range report.Customers {
		report.Customers[i].Revenue = round(report.Customers[i].Revenue)
	}
	return report
}
