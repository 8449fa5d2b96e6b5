package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/model"
)

// MarkdownWriter outputs report sets in Markdown format.
// Each reporting year is a top-level section; tier counts are drawn as a
// mermaid pie chart.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one report set as a Markdown document.
func (w *MarkdownWriter) Write(rs *model.ReportSet) (int, error) {
	return w.WriteAll([]*model.ReportSet{rs})
}

// WriteAll outputs every report set in a single Markdown document.
func (w *MarkdownWriter) WriteAll(sets []*model.ReportSet) (int, error) {
	md := markdown.NewMarkdown(w.output)

	for _, rs := range sets {
		if rs == nil {
			continue
		}
		w.writeHeader(md, rs)
		w.writeSummary(md, rs)
		w.writeQuarterly(md, rs)
		w.writeProducts(md, rs)
		w.writeCountries(md, rs)
		w.writeTiers(md, rs)
		w.writeEmployees(md, rs)
		w.writePairs(md, rs)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the year heading and the run status.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, rs *model.ReportSet) {
	md.H1(fmt.Sprintf("Sales Report %d", rs.Year))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Reporting Year", strconv.Itoa(rs.Year)},
			{"Generated", rs.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Reports", strings.Join(rs.Performed, ", ")},
			{"Status", w.getStatusText(rs)},
		},
	})
	md.PlainText("")

	if rs.HasErrors() {
		names := make([]string, 0, len(rs.Errors))
		for name := range rs.Errors {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			md.Cautionf("Report %q failed: %s", name, rs.Errors[name])
		}
		md.PlainText("")
	}
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(rs *model.ReportSet) string {
	if rs.HasErrors() {
		return "❌ " + strconv.Itoa(len(rs.Errors)) + " report(s) failed"
	}
	return "✅ Complete"
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, rs *model.ReportSet) {
	s := rs.Summary
	if s == nil {
		return
	}
	md.H2("Dataset Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Value"},
		Rows: [][]string{
			{"First required date", date(s.FirstRequired)},
			{"Last required date", date(s.LastRequired)},
			{"Orders", count(s.Orders)},
			{"Order lines", count(s.Lines)},
			{"Customers", count(s.Customers)},
			{"Active products", count(s.ActiveProducts)},
			{"Discontinued products", count(s.DiscontinuedProducts)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeQuarterly(md *markdown.Markdown, rs *model.ReportSet) {
	if !slices.Contains(rs.Performed, config.ReportQuarterly) {
		return
	}
	md.H2("Quarterly Revenue")
	md.PlainText("")
	if len(rs.Quarterly) == 0 {
		md.PlainText("No orders with a required date.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(rs.Quarterly))
	for i, q := range rs.Quarterly {
		rows[i] = []string{q.Quarter.String(), money(q.Revenue), percent(q.GrowthPercent)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Quarter", "Revenue", "Growth"},
		Rows:   rows,
	})
	md.PlainText("")

	last := rs.Quarterly[len(rs.Quarterly)-1]
	if last.GrowthPercent != nil {
		md.PlainTextf("Revenue in %s changed by %s against the previous quarter.",
			last.Quarter, percent(last.GrowthPercent))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeProducts(md *markdown.Markdown, rs *model.ReportSet) {
	if !slices.Contains(rs.Performed, config.ReportProducts) {
		return
	}
	md.H2(fmt.Sprintf("Top Products %d", rs.Year))
	md.PlainText("")
	if len(rs.Products) == 0 {
		md.PlainTextf("No product revenue in %d.", rs.Year)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(rs.Products))
	for i, p := range rs.Products {
		name := p.ProductName
		if p.Discontinued {
			name += " *(discontinued)*"
		}
		rows[i] = []string{
			strconv.Itoa(p.Rank), name, p.CategoryName, p.SupplierName,
			money(p.Revenue), percent(p.PercentOfTotal), percent(p.CumulativePercent),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Product", "Category", "Supplier", "Revenue", "Share", "Cumulative"},
		Rows:   rows,
	})
	md.PlainText("")

	last := rs.Products[len(rs.Products)-1]
	if last.CumulativePercent != nil {
		md.Note(fmt.Sprintf("These %d product(s) account for %s of the revenue in %d.",
			len(rs.Products), percent(last.CumulativePercent), rs.Year))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeCountries(md *markdown.Markdown, rs *model.ReportSet) {
	if !slices.Contains(rs.Performed, config.ReportCountries) {
		return
	}
	md.H2(fmt.Sprintf("Revenue by Country %d", rs.Year))
	md.PlainText("")
	if len(rs.Countries) == 0 {
		md.PlainTextf("No customer revenue in %d.", rs.Year)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(rs.Countries))
	for i, c := range rs.Countries {
		rows[i] = []string{c.Country, money(c.Revenue)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Country", "Revenue"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTiers(md *markdown.Markdown, rs *model.ReportSet) {
	t := rs.Tiers
	if t == nil {
		return
	}
	md.H2(fmt.Sprintf("Loyal Customers %d", t.Year))
	md.PlainText("")
	md.PlainTextf("Policy countries: %s.", strings.Join(t.Countries, ", "))
	md.PlainText("")

	rows := make([][]string, len(t.Counts))
	total := 0
	for i, c := range t.Counts {
		rows[i] = []string{c.Tier.String(), strconv.Itoa(c.Count)}
		total += c.Count
	}
	md.Table(markdown.TableSet{
		Header: []string{"Tier", "Customers"},
		Rows:   rows,
	})
	md.PlainText("")

	if total == 0 {
		md.Tip("No customer in the policy countries ordered this year.")
		md.PlainText("")
		return
	}
	w.writePieChart(md, t)

	if len(t.Customers) > 0 {
		var sb strings.Builder
		for _, c := range t.Customers {
			sb.WriteString(fmt.Sprintf("- %s (%s): %s, %s\n", c.CustomerID, c.Country, money(c.Revenue), c.Tier))
		}
		md.Details("Customer classification", sb.String())
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart of the tier distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, t *model.TierReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(fmt.Sprintf("Customer Tiers %d", t.Year)),
		piechart.WithShowData(true),
	)

	for _, c := range t.Counts {
		if c.Count > 0 {
			chart.LabelAndIntValue(c.Tier.String(), uint64(c.Count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeEmployees(md *markdown.Markdown, rs *model.ReportSet) {
	e := rs.Employees
	if e == nil {
		return
	}
	md.H2(fmt.Sprintf("Employee Performance %s", model.QuarterOf(e.Start)))
	md.PlainText("")
	md.PlainTextf("Orders required from %s to %s; customer discounts decided by %d revenue.",
		date(e.Start), date(e.End.AddDate(0, 0, -1)), e.PolicyYear)
	md.PlainText("")

	if len(e.Top) == 0 {
		md.Importantf("No orders were required in %s.", model.QuarterOf(e.Start))
		md.PlainText("")
		return
	}

	rows := make([][]string, len(e.Top))
	for i, r := range e.Top {
		rows[i] = []string{
			strconv.Itoa(r.Rank), r.FirstName + " " + r.LastName, r.Title,
			money(r.Revenue), percent(r.PercentOfQuarter),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Employee", "Title", "Revenue", "Share"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("Quarter total after discounts: %s.", money(e.Total))
	md.PlainText("")
}

func (w *MarkdownWriter) writePairs(md *markdown.Markdown, rs *model.ReportSet) {
	if !slices.Contains(rs.Performed, config.ReportPairs) {
		return
	}
	md.H2("Products Ordered Together")
	md.PlainText("")
	if len(rs.Pairs) == 0 {
		md.PlainText("No order contains two different products.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(rs.Pairs))
	for i, p := range rs.Pairs {
		rows[i] = []string{
			pairName(p.ProductID1, p.ProductName1),
			pairName(p.ProductID2, p.ProductName2),
			strconv.Itoa(p.Orders),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"First product", "Second product", "Orders"},
		Rows:   rows,
	})
	md.PlainText("")
}

func pairName(id int, name string) string {
	if name == "" {
		return "#" + strconv.Itoa(id)
	}
	return name
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [salesreport](https://github.com/nao1215/salesreport)*")
}
