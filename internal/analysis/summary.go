package analysis

import "github.com/nao1215/salesreport/internal/model"

// Summary describes the extent of the dataset: the required date range,
// the table sizes and the active/discontinued product split.
func Summary(ds *model.Dataset) *model.DatasetSummary {
	s := &model.DatasetSummary{
		Orders:    len(ds.Orders()),
		Lines:     len(ds.Lines()),
		Customers: len(ds.Customers()),
	}
	for _, o := range ds.Orders() {
		if !hasRequiredDate(o) {
			continue
		}
		if s.FirstRequired.IsZero() || o.RequiredDate.Before(s.FirstRequired) {
			s.FirstRequired = o.RequiredDate
		}
		if o.RequiredDate.After(s.LastRequired) {
			s.LastRequired = o.RequiredDate
		}
	}
	for _, p := range ds.Products() {
		if p.Discontinued {
			s.DiscontinuedProducts++
		} else {
			s.ActiveProducts++
		}
	}
	return s
}
