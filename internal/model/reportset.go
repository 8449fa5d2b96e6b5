package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuarterRevenue is one row of the quarterly revenue trend.
type QuarterRevenue struct {
	Quarter Quarter         `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	// GrowthPercent is (revenue / previous − 1) × 100.
	// It is nil for the first period and when the previous revenue is zero.
	GrowthPercent *decimal.Decimal `json:"growthPercent"`
}

// ProductRevenue is one row of the top products report.
type ProductRevenue struct {
	Rank         int             `json:"rank"`
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	CategoryID   int             `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	SupplierID   int             `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	Discontinued bool            `json:"discontinued"`
	Revenue      decimal.Decimal `json:"revenue"`
	// PercentOfTotal is nil when the year's total revenue is zero.
	PercentOfTotal *decimal.Decimal `json:"percentOfTotal"`
	// CumulativePercent is the running sum of PercentOfTotal in rank order.
	CumulativePercent *decimal.Decimal `json:"cumulativePercent"`
}

// CountryRevenue is one row of the revenue by country report.
type CountryRevenue struct {
	Country string          `json:"country"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CustomerTier is the classification of one customer.
type CustomerTier struct {
	CustomerID string          `json:"customerId"`
	Country    string          `json:"country"`
	Revenue    decimal.Decimal `json:"revenue"`
	Tier       Tier            `json:"tier"`
}

// TierCount is the number of customers in a tier.
type TierCount struct {
	Tier  Tier `json:"tier"`
	Count int  `json:"count"`
}

// TierReport is the result of the customer tier classification.
type TierReport struct {
	Year      int      `json:"year"`
	Countries []string `json:"countries"`
	// Counts always holds every tier, Gold first.
	Counts []TierCount `json:"counts"`
	// Customers is ordered by revenue descending, then customer ID.
	Customers []CustomerTier `json:"customers"`
}

// Count returns the number of customers classified as t.
func (r *TierReport) Count(t Tier) int {
	for _, c := range r.Counts {
		if c.Tier == t {
			return c.Count
		}
	}
	return 0
}

// EmployeeRevenue is one row of the employee performance ranking.
type EmployeeRevenue struct {
	Rank       int             `json:"rank"`
	EmployeeID int             `json:"employeeId"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Title      string          `json:"title"`
	Revenue    decimal.Decimal `json:"revenue"`
	// PercentOfQuarter is nil when the quarter's total revenue is zero.
	PercentOfQuarter *decimal.Decimal `json:"percentOfQuarter"`
}

// EmployeeReport is the result of the employee performance ranking.
type EmployeeReport struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// PolicyYear is the year whose revenue decided the customer discounts.
	PolicyYear int `json:"policyYear"`
	// Total is the discounted revenue of every order in the range.
	Total decimal.Decimal `json:"total"`
	// Ranking holds every ranked employee; Top holds the first N of them.
	Ranking []EmployeeRevenue `json:"ranking"`
	Top     []EmployeeRevenue `json:"top"`
}

// ProductPair is one row of the frequent product pairs report.
// ProductID1 is always lower than ProductID2.
type ProductPair struct {
	ProductID1   int    `json:"productId1"`
	ProductName1 string `json:"productName1"`
	CategoryID1  int    `json:"categoryId1"`
	ProductID2   int    `json:"productId2"`
	ProductName2 string `json:"productName2"`
	CategoryID2  int    `json:"categoryId2"`
	Orders       int    `json:"orders"`
}

// DatasetSummary describes the extent of the dataset.
type DatasetSummary struct {
	// FirstRequired and LastRequired are zero when no order has a required date.
	FirstRequired        time.Time `json:"firstRequired"`
	LastRequired         time.Time `json:"lastRequired"`
	Orders               int       `json:"orders"`
	Lines                int       `json:"lines"`
	Customers            int       `json:"customers"`
	ActiveProducts       int       `json:"activeProducts"`
	DiscontinuedProducts int       `json:"discontinuedProducts"`
}

// ReportSet collects the reports computed for one reporting year.
// Reports that were not requested are nil.
type ReportSet struct {
	Year        int       `json:"year"`
	GeneratedAt time.Time `json:"generatedAt"`

	Summary   *DatasetSummary  `json:"summary,omitempty"`
	Quarterly []QuarterRevenue `json:"quarterly,omitempty"`
	Products  []ProductRevenue `json:"products,omitempty"`
	Countries []CountryRevenue `json:"countries,omitempty"`
	Tiers     *TierReport      `json:"tiers,omitempty"`
	Employees *EmployeeReport  `json:"employees,omitempty"`
	Pairs     []ProductPair    `json:"pairs,omitempty"`

	// Performed lists the reports that completed, in execution order.
	Performed []string `json:"performed"`
	// Errors maps a failed report name to its error message.
	Errors map[string]string `json:"errors,omitempty"`
}

// NewReportSet creates an empty ReportSet for a reporting year.
func NewReportSet(year int) *ReportSet {
	return &ReportSet{
		Year:        year,
		GeneratedAt: time.Now(),
		Performed:   make([]string, 0),
	}
}

// AddError records a failed report.
func (rs *ReportSet) AddError(name string, err error) {
	if rs.Errors == nil {
		rs.Errors = make(map[string]string)
	}
	rs.Errors[name] = err.Error()
}

// HasErrors reports whether any report failed.
func (rs *ReportSet) HasErrors() bool {
	return len(rs.Errors) > 0
}
