package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/testutil"
)

func defaultParams() Params {
	return ParamsFromConfig(config.NewConfig())
}

func names(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Name()
	}
	return out
}

func TestStepsFor(t *testing.T) {
	t.Parallel()

	t.Run("all builds every step in order", func(t *testing.T) {
		t.Parallel()

		steps, err := StepsFor([]string{config.ReportAll}, defaultParams())
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(names(steps), config.AllReports) {
			t.Errorf("expected %v, got %v", config.AllReports, names(steps))
		}
	})

	t.Run("selected steps keep report order", func(t *testing.T) {
		t.Parallel()

		steps, err := StepsFor([]string{config.ReportPairs, config.ReportTiers}, defaultParams())
		if err != nil {
			t.Fatal(err)
		}
		want := []string{config.ReportTiers, config.ReportPairs}
		if !slices.Equal(names(steps), want) {
			t.Errorf("expected %v, got %v", want, names(steps))
		}
	})

	t.Run("unknown report returns ErrUnknownReport", func(t *testing.T) {
		t.Parallel()

		if _, err := StepsFor([]string{"inventory"}, defaultParams()); !errors.Is(err, config.ErrUnknownReport) {
			t.Errorf("expected ErrUnknownReport, got %v", err)
		}
	})
}

func TestStepsFillReportSet(t *testing.T) {
	t.Parallel()

	steps, err := StepsFor(nil, defaultParams())
	if err != nil {
		t.Fatal(err)
	}
	p := New()
	p.AddSteps(steps...)

	rs := model.NewReportSet(1997)
	if err := p.Execute(context.Background(), testutil.Dataset(), rs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("every report is present", func(t *testing.T) {
		t.Parallel()
		if rs.Summary == nil || rs.Tiers == nil || rs.Employees == nil {
			t.Fatal("expected summary, tiers and employees reports")
		}
		if len(rs.Quarterly) != 7 || len(rs.Countries) != 4 || len(rs.Pairs) != 3 {
			t.Errorf("unexpected table sizes: quarterly=%d countries=%d pairs=%d",
				len(rs.Quarterly), len(rs.Countries), len(rs.Pairs))
		}
	})

	t.Run("top products keeps 20 percent of rows", func(t *testing.T) {
		t.Parallel()
		if len(rs.Products) != 1 || rs.Products[0].ProductID != 1 {
			t.Errorf("expected only product 1, got %+v", rs.Products)
		}
	})

	t.Run("employees are ranked for the next first quarter", func(t *testing.T) {
		t.Parallel()
		if rs.Employees.PolicyYear != 1997 {
			t.Errorf("expected policy year 1997, got %d", rs.Employees.PolicyYear)
		}
		if got := rs.Employees.Start; got.Year() != 1998 || got.Month() != 1 {
			t.Errorf("expected 1998Q1, got %v", got)
		}
		if len(rs.Employees.Top) != 3 || rs.Employees.Top[0].EmployeeID != 3 {
			t.Errorf("unexpected top employees %+v", rs.Employees.Top)
		}
	})

	t.Run("performed lists every report", func(t *testing.T) {
		t.Parallel()
		if !slices.Equal(rs.Performed, config.AllReports) {
			t.Errorf("expected %v, got %v", config.AllReports, rs.Performed)
		}
	})
}

func TestStepErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil dataset returns ErrNoDataset", func(t *testing.T) {
		t.Parallel()
		err := (&SummaryStep{}).Do(ctx, nil, model.NewReportSet(1997))
		if !errors.Is(err, ErrNoDataset) {
			t.Errorf("expected ErrNoDataset, got %v", err)
		}
	})

	t.Run("invalid percent returns ErrInvalidTopPercent", func(t *testing.T) {
		t.Parallel()
		err := (&TopProductsStep{percent: 0}).Do(ctx, testutil.Dataset(), model.NewReportSet(1997))
		if !errors.Is(err, config.ErrInvalidTopPercent) {
			t.Errorf("expected ErrInvalidTopPercent, got %v", err)
		}
	})

	t.Run("invalid top returns ErrInvalidTopN", func(t *testing.T) {
		t.Parallel()
		err := (&PairsStep{top: 0}).Do(ctx, testutil.Dataset(), model.NewReportSet(1997))
		if !errors.Is(err, config.ErrInvalidTopN) {
			t.Errorf("expected ErrInvalidTopN, got %v", err)
		}
	})

	t.Run("explicit quarter is used", func(t *testing.T) {
		t.Parallel()
		params := defaultParams()
		params.QuarterFor = func(int) model.Quarter { return model.Quarter{Year: 1997, Q: 2} }
		steps, err := StepsFor([]string{config.ReportEmployees}, params)
		if err != nil {
			t.Fatal(err)
		}
		rs := model.NewReportSet(1996)
		if err := steps[0].Do(ctx, testutil.Dataset(), rs); err != nil {
			t.Fatal(err)
		}
		if rs.Employees.PolicyYear != 1996 || rs.Employees.Start.Month() != 4 {
			t.Errorf("unexpected range: policy year %d start %v", rs.Employees.PolicyYear, rs.Employees.Start)
		}
	})

	t.Run("invalid quarter returns ErrInvalidQuarter", func(t *testing.T) {
		t.Parallel()
		step := &EmployeeStep{top: 3, quarterFor: func(int) model.Quarter { return model.Quarter{Year: 1998} }}
		err := step.Do(ctx, testutil.Dataset(), model.NewReportSet(1997))
		if !errors.Is(err, config.ErrInvalidQuarter) {
			t.Errorf("expected ErrInvalidQuarter, got %v", err)
		}
	})
}

func TestEmployeeStepUsesParamsLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	params := defaultParams()
	params.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	steps, err := StepsFor([]string{config.ReportEmployees}, params)
	if err != nil {
		t.Fatal(err)
	}
	if err := steps[0].Do(context.Background(), testutil.Dataset(), model.NewReportSet(1997)); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	if !strings.Contains(got, "ranking employees") || !strings.Contains(got, "quarter=1998Q1") {
		t.Errorf("expected debug log on the injected logger, got %q", got)
	}
}
