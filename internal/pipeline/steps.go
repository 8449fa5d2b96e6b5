package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/salesreport/internal/analysis"
	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/model"
)

// ErrNoDataset is returned by every step when the dataset is nil.
var ErrNoDataset = errors.New("no dataset loaded")

// Params holds the report parameters shared by the steps.
type Params struct {
	// Policy is the loyal customer policy used by the tier and employee reports.
	Policy model.TierPolicy

	// TopPercent is the share of ranked products kept, 1 to 100.
	TopPercent int

	// TopEmployees is the number of employees in EmployeeReport.Top.
	TopEmployees int

	// TopPairs is the number of product pairs reported.
	TopPairs int

	// QuarterFor returns the employee ranking quarter of a reporting year.
	// When nil, the first quarter of the following year is used.
	QuarterFor func(year int) model.Quarter

	// Logger receives step-level debug logs. When nil, slog.Default() is used.
	Logger *slog.Logger
}

// ParamsFromConfig builds the step parameters from the configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Policy:       cfg.Policy,
		TopPercent:   cfg.TopPercent,
		TopEmployees: cfg.TopEmployees,
		TopPairs:     cfg.TopPairs,
		QuarterFor:   cfg.QuarterFor,
	}
}

func (p Params) quarterFor(year int) model.Quarter {
	if p.QuarterFor != nil {
		return p.QuarterFor(year)
	}
	return model.Quarter{Year: year + 1, Q: 1}
}

func (p Params) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// StepsFor builds the steps for a list of report names.
// "all" or an empty list selects every report. Steps are returned in
// config.AllReports order whatever the input order.
func StepsFor(names []string, params Params) ([]Step, error) {
	resolved, err := config.ResolveReports(names)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(resolved))
	for _, name := range resolved {
		switch name {
		case config.ReportSummary:
			steps = append(steps, &SummaryStep{})
		case config.ReportQuarterly:
			steps = append(steps, &QuarterlyStep{})
		case config.ReportProducts:
			steps = append(steps, &TopProductsStep{percent: params.TopPercent})
		case config.ReportCountries:
			steps = append(steps, &CountryStep{})
		case config.ReportTiers:
			steps = append(steps, &TierStep{policy: params.Policy})
		case config.ReportEmployees:
			steps = append(steps, &EmployeeStep{
				policy:     params.Policy,
				top:        params.TopEmployees,
				quarterFor: params.quarterFor,
				logger:     params.logger(),
			})
		case config.ReportPairs:
			steps = append(steps, &PairsStep{top: params.TopPairs})
		}
	}
	return steps, nil
}

// checkInput returns ctx.Err() or ErrNoDataset when the step cannot run.
func checkInput(ctx context.Context, ds *model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ds == nil {
		return ErrNoDataset
	}
	return nil
}

// SummaryStep computes the dataset overview.
type SummaryStep struct{}

// Name returns the step name.
func (s *SummaryStep) Name() string { return config.ReportSummary }

// Do executes the summary step.
func (s *SummaryStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	rs.Summary = analysis.Summary(ds)
	return nil
}

// QuarterlyStep computes the quarterly revenue trend.
// The trend covers the whole dataset, not only the reporting year.
type QuarterlyStep struct{}

// Name returns the step name.
func (s *QuarterlyStep) Name() string { return config.ReportQuarterly }

// Do executes the quarterly revenue step.
func (s *QuarterlyStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	rs.Quarterly = analysis.QuarterlyRevenue(ds)
	return nil
}

// TopProductsStep computes the top revenue products of the reporting year.
type TopProductsStep struct {
	percent int
}

// Name returns the step name.
func (s *TopProductsStep) Name() string { return config.ReportProducts }

// Do executes the top products step.
func (s *TopProductsStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	if s.percent < 1 || s.percent > 100 {
		return fmt.Errorf("%w: %d", config.ErrInvalidTopPercent, s.percent)
	}
	rs.Products = analysis.TopProducts(ds, rs.Year, s.percent)
	return nil
}

// CountryStep computes the revenue per customer country of the reporting year.
type CountryStep struct{}

// Name returns the step name.
func (s *CountryStep) Name() string { return config.ReportCountries }

// Do executes the country revenue step.
func (s *CountryStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	rs.Countries = analysis.RevenueByCountry(ds, rs.Year)
	return nil
}

// TierStep classifies the policy customers on the reporting year's revenue.
type TierStep struct {
	policy model.TierPolicy
}

// Name returns the step name.
func (s *TierStep) Name() string { return config.ReportTiers }

// Do executes the customer tier step.
func (s *TierStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	rs.Tiers = analysis.CustomerTiers(ds, rs.Year, s.policy)
	return nil
}

// EmployeeStep ranks employees for the quarter following the reporting year,
// with discounts decided by the reporting year's revenue.
type EmployeeStep struct {
	policy     model.TierPolicy
	top        int
	quarterFor func(year int) model.Quarter
	logger     *slog.Logger
}

// Name returns the step name.
func (s *EmployeeStep) Name() string { return config.ReportEmployees }

// Do executes the employee performance step.
func (s *EmployeeStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	if s.top <= 0 {
		return fmt.Errorf("%w: %d", config.ErrInvalidTopN, s.top)
	}

	q := s.quarterFor(rs.Year)
	if q.Q < 1 || q.Q > 4 {
		return fmt.Errorf("%w: %s", config.ErrInvalidQuarter, q)
	}
	s.logger.Debug("ranking employees", "year", rs.Year, "quarter", q.String())

	rs.Employees = analysis.EmployeePerformance(ds, q.Start(), q.End(), s.policy, s.top)
	return nil
}

// PairsStep counts the product pairs most often ordered together.
type PairsStep struct {
	top int
}

// Name returns the step name.
func (s *PairsStep) Name() string { return config.ReportPairs }

// Do executes the frequent pairs step.
func (s *PairsStep) Do(ctx context.Context, ds *model.Dataset, rs *model.ReportSet) error {
	if err := checkInput(ctx, ds); err != nil {
		return err
	}
	if s.top <= 0 {
		return fmt.Errorf("%w: %d", config.ErrInvalidTopN, s.top)
	}
	rs.Pairs = analysis.FrequentPairs(ds, s.top)
	return nil
}
