package report

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with thousands separators ("10,150.00").
var printer = message.NewPrinter(language.English)

// dateLayout is the layout of dates in every output format.
const dateLayout = "2006-01-02"

// money formats an amount with two decimals and grouping.
func money(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// percent formats a percentage; nil is "-".
func percent(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2) + "%"
}

// count formats an integer with grouping.
func count(n int) string {
	return printer.Sprintf("%d", n)
}

// date formats a date; the zero time is "-".
func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}
