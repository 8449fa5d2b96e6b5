package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/model"
	"github.com/nao1215/salesreport/internal/pipeline"
	"github.com/nao1215/salesreport/internal/testutil"
)

// createTestReport runs every report over the fixture for 1997.
func createTestReport(t *testing.T) *model.ReportSet {
	t.Helper()

	steps, err := pipeline.StepsFor(nil, pipeline.ParamsFromConfig(config.NewConfig()))
	if err != nil {
		t.Fatal(err)
	}
	p := pipeline.New()
	p.AddSteps(steps...)

	rs := model.NewReportSet(1997)
	if err := p.Execute(context.Background(), testutil.Dataset(), rs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rs
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q", w)
		}
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(), "SALES REPORT 1997", "Status:    Complete")
	})

	t.Run("writes every section with grouped money", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(),
			"DATASET SUMMARY",
			"QUARTERLY REVENUE",
			"1900.00%",
			"-49.50%",
			"TOP PRODUCTS 1997",
			"Chai",
			"10,150.00",
			"REVENUE BY COUNTRY 1997",
			"10,000.00",
			"LOYAL CUSTOMERS 1997",
			"EMPLOYEE PERFORMANCE 1998-01-01 TO 1998-03-31",
			"Janet Leverling",
			"950.00",
			"PRODUCTS ORDERED TOGETHER",
		)
	})

	t.Run("verbose lists every customer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(), "GREAL", "AROUT", "BONAP")
	})

	t.Run("customers are hidden without verbose", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "GREAL") {
			t.Error("expected customer list to be omitted")
		}
	})

	t.Run("empty sections are shown on request", func(t *testing.T) {
		t.Parallel()

		rs := model.NewReportSet(2001)
		rs.Performed = append(rs.Performed, config.ReportQuarterly, config.ReportCountries)

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(rs); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "QUARTERLY REVENUE") {
			t.Error("expected empty section to be skipped")
		}

		buf.Reset()
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(true)).Write(rs); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), "QUARTERLY REVENUE", "REVENUE BY COUNTRY 2001", "No rows")
	})

	t.Run("failed reports appear in status", func(t *testing.T) {
		t.Parallel()

		rs := model.NewReportSet(1997)
		rs.AddError(config.ReportTiers, errors.New("boom"))

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(rs); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), "ERROR - tiers: boom")
	})
}

func TestSimpleWriterWriteAll(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sets := []*model.ReportSet{model.NewReportSet(1996), nil, model.NewReportSet(1997)}
	n, err := NewSimpleWriter(&buf).WriteAll(sets)
	if err != nil {
		t.Fatal(err)
	}
	if n != buf.Len() {
		t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
	}
	assertContains(t, buf.String(), "SALES REPORT 1996", "SALES REPORT 1997")
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output decodes back", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		if strings.Contains(output, "\n  ") {
			t.Error("expected compact output")
		}
		if !strings.HasSuffix(output, "\n") {
			t.Error("expected trailing newline")
		}

		var got model.ReportSet
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Year != 1997 {
			t.Errorf("expected year 1997, got %d", got.Year)
		}
		if len(got.Countries) != 4 || got.Countries[0].Country != "USA" {
			t.Fatalf("unexpected countries: %+v", got.Countries)
		}
		if !got.Countries[0].Revenue.Equal(testutil.Dec("10000")) {
			t.Errorf("expected 10000, got %s", got.Countries[0].Revenue)
		}
		if got.Tiers == nil || got.Tiers.Count(model.TierGold) != 1 {
			t.Errorf("expected one gold customer, got %+v", got.Tiers)
		}
	})

	t.Run("undefined growth is null", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), `"growthPercent":null`)
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(model.NewReportSet(1997)); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), "\n  \"year\": 1997")
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(model.NewReportSet(1997)); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), "\n>\t\"year\": 1997")
	})

	t.Run("WriteAll emits an array without nil sets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sets := []*model.ReportSet{model.NewReportSet(1996), nil, model.NewReportSet(1997)}
		if _, err := NewJSONWriter(&buf).WriteAll(sets); err != nil {
			t.Fatal(err)
		}
		var got []model.ReportSet
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got) != 2 || got[0].Year != 1996 || got[1].Year != 1997 {
			t.Errorf("unexpected sets: %+v", got)
		}
	})
}

func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewFullJSONWriter(&buf, "v1.2.3").Write(createTestReport(t)); err != nil {
		t.Fatal(err)
	}

	var got JSONReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %q", got.Version)
	}
	if len(got.Reports) != 1 || got.Reports[0].Year != 1997 {
		t.Errorf("unexpected reports: %+v", got.Reports)
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownWriter(&buf).Write(createTestReport(t))
		if err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			t.Error("expected bytes written")
		}
		assertContains(t, buf.String(),
			"# Sales Report 1997",
			"## Quarterly Revenue",
			"1997Q1",
			"## Top Products 1997",
			"10,150.00",
			"## Revenue by Country 1997",
			"## Loyal Customers 1997",
			"```mermaid",
			"Customer Tiers 1997",
			"## Employee Performance 1998Q1",
			"Janet Leverling",
			"## Products Ordered Together",
			"✅ Complete",
		)
	})

	t.Run("tier chart is skipped without customers", func(t *testing.T) {
		t.Parallel()

		rs := model.NewReportSet(2001)
		rs.Tiers = &model.TierReport{
			Year:      2001,
			Countries: []string{"USA"},
			Counts: []model.TierCount{
				{Tier: model.TierGold}, {Tier: model.TierSilver}, {Tier: model.TierNormal},
			},
		}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(rs); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "mermaid") {
			t.Error("expected no pie chart")
		}
		assertContains(t, buf.String(), "## Loyal Customers 2001")
	})

	t.Run("failed reports become alerts", func(t *testing.T) {
		t.Parallel()

		rs := model.NewReportSet(1997)
		rs.AddError(config.ReportPairs, errors.New("boom"))

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(rs); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), "[!CAUTION]", "boom", "1 report(s) failed")
	})

	t.Run("WriteAll writes one heading per year", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sets := []*model.ReportSet{model.NewReportSet(1996), model.NewReportSet(1997)}
		if _, err := NewMarkdownWriter(&buf).WriteAll(sets); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		assertContains(t, output, "# Sales Report 1996", "# Sales Report 1997")
		if strings.Count(output, "Report generated by") != 1 {
			t.Error("expected a single footer")
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := mw.WriteAll([]*model.ReportSet{createTestReport(t)})
	if err != nil {
		t.Fatal(err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money groups thousands", money(testutil.Dec("1234567.891")), "1,234,567.89"},
		{"money rounds half away from zero", money(testutil.Dec("0.125")), "0.13"},
		{"percent of nil is a dash", percent(nil), "-"},
		{"count groups thousands", count(12345), "12,345"},
		{"zero date is a dash", date(testutil.Date(1, 1, 1)), "-"},
		{"date uses ISO layout", date(testutil.Date(1998, 5, 6)), "1998-05-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}

	d := testutil.Dec("-49.5")
	if got := percent(&d); got != "-49.50%" {
		t.Errorf("expected -49.50%%, got %q", got)
	}
}
