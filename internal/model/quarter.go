package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidQuarter is returned by ParseQuarter for malformed input.
var ErrInvalidQuarter = errors.New("invalid quarter: expected YYYYQn (e.g. 1998Q1)")

// Quarter is a calendar quarter. It covers the half-open range [Start, End).
type Quarter struct {
	Year int `json:"year"`
	// Q is the quarter number, 1 to 4.
	Q int `json:"quarter"`
}

// QuarterOf returns the quarter containing t.
func QuarterOf(t time.Time) Quarter {
	return Quarter{Year: t.Year(), Q: (int(t.Month())-1)/3 + 1}
}

// ParseQuarter parses "1998Q1", "1998-Q1" or "1998q1".
func ParseQuarter(s string) (Quarter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	year, q, ok := strings.Cut(s, "Q")
	if !ok {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}
	year = strings.TrimSuffix(year, "-")

	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < 1 || n > 4 {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}
	return Quarter{Year: y, Q: n}, nil
}

// Start returns midnight UTC of the first day of the quarter.
func (q Quarter) Start() time.Time {
	return time.Date(q.Year, time.Month((q.Q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the exclusive end of the quarter, the start of the next one.
func (q Quarter) End() time.Time {
	return q.Next().Start()
}

// Next returns the following quarter.
func (q Quarter) Next() Quarter {
	if q.Q == 4 {
		return Quarter{Year: q.Year + 1, Q: 1}
	}
	return Quarter{Year: q.Year, Q: q.Q + 1}
}

// Before reports whether q is earlier than other.
func (q Quarter) Before(other Quarter) bool {
	if q.Year != other.Year {
		return q.Year < other.Year
	}
	return q.Q < other.Q
}

// String returns the quarter as "1998Q1".
func (q Quarter) String() string {
	return fmt.Sprintf("%dQ%d", q.Year, q.Q)
}
