package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/salesreport/internal/config"
	"github.com/nao1215/salesreport/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// Tables are aligned with text/tabwriter and numbers use thousands separators.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether requested reports with no rows are shown.
	showEmpty bool

	// verbose adds the full employee ranking and the per-customer tier list.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty tables.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteAll outputs every report set, one after the other.
func (w *SimpleWriter) WriteAll(sets []*model.ReportSet) (int, error) {
	return writeEach(sets, w.Write)
}

// Write outputs one report set in human-readable format.
func (w *SimpleWriter) Write(rs *model.ReportSet) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, rs)
	w.writeSummary(&sb, rs)
	w.writeQuarterly(&sb, rs)
	w.writeProducts(&sb, rs)
	w.writeCountries(&sb, rs)
	w.writeTiers(&sb, rs)
	w.writeEmployees(&sb, rs)
	w.writePairs(&sb, rs)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with the reporting year and status.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, rs *model.ReportSet) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("                        SALES REPORT %d\n", rs.Year))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Generated: %s\n", rs.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Reports:   %s\n", strings.Join(rs.Performed, ", ")))

	if rs.HasErrors() {
		names := make([]string, 0, len(rs.Errors))
		for name := range rs.Errors {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("Status:    ERROR - %s: %s\n", name, rs.Errors[name]))
		}
	} else {
		sb.WriteString("Status:    Complete\n")
	}
	sb.WriteString("\n")
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// table writes rows aligned under header, indented by two spaces.
func table(sb *strings.Builder, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	writeRow := func(cells []string) {
		fmt.Fprintf(tw, "  %s\t\n", strings.Join(cells, "\t"))
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
	_ = tw.Flush()
	sb.WriteString("\n")
}

// empty reports whether a section with n rows should be skipped, writing a
// placeholder when empty sections are shown.
func (w *SimpleWriter) empty(sb *strings.Builder, n int, title string) bool {
	if n > 0 {
		return false
	}
	if w.showEmpty {
		section(sb, title)
		sb.WriteString("  No rows\n\n")
	}
	return true
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, rs *model.ReportSet) {
	s := rs.Summary
	if s == nil {
		return
	}
	section(sb, "DATASET SUMMARY")
	sb.WriteString(fmt.Sprintf("  Required dates: %s .. %s\n", date(s.FirstRequired), date(s.LastRequired)))
	sb.WriteString(fmt.Sprintf("  Orders:         %s (%s lines)\n", count(s.Orders), count(s.Lines)))
	sb.WriteString(fmt.Sprintf("  Customers:      %s\n", count(s.Customers)))
	sb.WriteString(fmt.Sprintf("  Products:       %s active, %s discontinued\n", count(s.ActiveProducts), count(s.DiscontinuedProducts)))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeQuarterly(sb *strings.Builder, rs *model.ReportSet) {
	const title = "QUARTERLY REVENUE"
	if !slices.Contains(rs.Performed, config.ReportQuarterly) || w.empty(sb, len(rs.Quarterly), title) {
		return
	}
	section(sb, title)
	rows := make([][]string, len(rs.Quarterly))
	for i, q := range rs.Quarterly {
		rows[i] = []string{strconv.Itoa(q.Quarter.Year), "Q" + strconv.Itoa(q.Quarter.Q), money(q.Revenue), percent(q.GrowthPercent)}
	}
	table(sb, []string{"Year", "Quarter", "Revenue", "Growth"}, rows)
}

func (w *SimpleWriter) writeProducts(sb *strings.Builder, rs *model.ReportSet) {
	title := fmt.Sprintf("TOP PRODUCTS %d", rs.Year)
	if !slices.Contains(rs.Performed, config.ReportProducts) || w.empty(sb, len(rs.Products), title) {
		return
	}
	section(sb, title)
	rows := make([][]string, len(rs.Products))
	for i, p := range rs.Products {
		name := p.ProductName
		if p.Discontinued {
			name += " (discontinued)"
		}
		rows[i] = []string{
			strconv.Itoa(p.Rank), strconv.Itoa(p.ProductID), name, p.CategoryName, p.SupplierName,
			money(p.Revenue), percent(p.PercentOfTotal), percent(p.CumulativePercent),
		}
	}
	table(sb, []string{"#", "ID", "Product", "Category", "Supplier", "Revenue", "Share", "Cumulative"}, rows)
}

func (w *SimpleWriter) writeCountries(sb *strings.Builder, rs *model.ReportSet) {
	title := fmt.Sprintf("REVENUE BY COUNTRY %d", rs.Year)
	if !slices.Contains(rs.Performed, config.ReportCountries) || w.empty(sb, len(rs.Countries), title) {
		return
	}
	section(sb, title)
	rows := make([][]string, len(rs.Countries))
	for i, c := range rs.Countries {
		rows[i] = []string{c.Country, money(c.Revenue)}
	}
	table(sb, []string{"Country", "Revenue"}, rows)
}

func (w *SimpleWriter) writeTiers(sb *strings.Builder, rs *model.ReportSet) {
	t := rs.Tiers
	if t == nil {
		return
	}
	section(sb, fmt.Sprintf("LOYAL CUSTOMERS %d (%s)", t.Year, strings.Join(t.Countries, ", ")))
	rows := make([][]string, len(t.Counts))
	for i, c := range t.Counts {
		rows[i] = []string{c.Tier.String(), strconv.Itoa(c.Count)}
	}
	table(sb, []string{"Tier", "Customers"}, rows)

	if w.verbose && len(t.Customers) > 0 {
		rows := make([][]string, len(t.Customers))
		for i, c := range t.Customers {
			rows[i] = []string{c.CustomerID, c.Country, money(c.Revenue), c.Tier.String()}
		}
		table(sb, []string{"Customer", "Country", "Revenue", "Tier"}, rows)
	}
}

func (w *SimpleWriter) writeEmployees(sb *strings.Builder, rs *model.ReportSet) {
	e := rs.Employees
	if e == nil {
		return
	}
	title := fmt.Sprintf("EMPLOYEE PERFORMANCE %s TO %s (DISCOUNTS FROM %d)",
		date(e.Start), date(e.End.AddDate(0, 0, -1)), e.PolicyYear)
	if w.empty(sb, len(e.Top), title) {
		return
	}
	section(sb, title)

	ranked := e.Top
	if w.verbose {
		ranked = e.Ranking
	}
	rows := make([][]string, len(ranked))
	for i, r := range ranked {
		rows[i] = []string{
			strconv.Itoa(r.Rank), strconv.Itoa(r.EmployeeID), r.FirstName + " " + r.LastName, r.Title,
			money(r.Revenue), percent(r.PercentOfQuarter),
		}
	}
	table(sb, []string{"#", "ID", "Employee", "Title", "Revenue", "Share"}, rows)
	sb.WriteString(fmt.Sprintf("  Quarter total: %s\n\n", money(e.Total)))
}

func (w *SimpleWriter) writePairs(sb *strings.Builder, rs *model.ReportSet) {
	const title = "PRODUCTS ORDERED TOGETHER"
	if !slices.Contains(rs.Performed, config.ReportPairs) || w.empty(sb, len(rs.Pairs), title) {
		return
	}
	section(sb, title)
	rows := make([][]string, len(rs.Pairs))
	for i, p := range rs.Pairs {
		rows[i] = []string{
			fmt.Sprintf("%d %s", p.ProductID1, p.ProductName1),
			fmt.Sprintf("%d %s", p.ProductID2, p.ProductName2),
			strconv.Itoa(p.Orders),
		}
	}
	table(sb, []string{"First product", "Second product", "Orders"}, rows)
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
