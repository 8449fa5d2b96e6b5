// Package testutil provides a small, hand-computed sales dataset shared by
// the tests of the other packages.
//
// Expected figures for the fixture:
//
//	quarter  revenue  growth
//	1996Q4     500.00  -
//	1997Q1   10000.00  1900.00
//	1997Q2    5050.00  -49.50
//	1997Q3     200.00  -96.04
//	1997Q4     550.00  175.00
//	1998Q1    1800.00  227.27
//	1998Q2     300.00  -83.33
//
// 1997 revenue by country: USA 10000, UK 5050, Germany 550, France 200.
// 1997 tiers (USA, UK, France): GREAL Gold, AROUT Silver, BONAP Normal.
// 1998Q1 after discount: employee 3 950, employee 1 500, employee 2 200,
// unknown employee 9 100.
package testutil

import (
	"time"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
)

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(orderID, productID int, price string, qty int, discount string) model.OrderLine {
	return model.OrderLine{
		OrderID:   orderID,
		ProductID: productID,
		UnitPrice: Dec(price),
		Quantity:  qty,
		Discount:  Dec(discount),
	}
}

// Tables returns the rows of the fixture dataset.
func Tables() model.Tables {
	shipped := Date(1997, time.January, 10)
	return model.Tables{
		Categories: []model.Category{
			{ID: 1, Name: "Beverages"},
			{ID: 2, Name: "Condiments"},
		},
		Suppliers: []model.Supplier{
			{ID: 1, Name: "Exotic Liquids", Country: "UK"},
			{ID: 2, Name: "New Orleans Cajun Delights", Country: "USA"},
		},
		Shippers: []model.Shipper{
			{ID: 1, Name: "Speedy Express"},
			{ID: 2, Name: "United Package"},
		},
		Customers: []model.Customer{
			{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", Country: "Germany"},
			{ID: "AROUT", CompanyName: "Around the Horn", Country: "UK"},
			{ID: "BONAP", CompanyName: "Bon app'", Country: "France"},
			{ID: "GREAL", CompanyName: "Great Lakes Food Market", Country: "USA"},
			{ID: "QUICK", CompanyName: "QUICK-Stop", Country: "Germany"},
		},
		Employees: []model.Employee{
			{ID: 1, FirstName: "Nancy", LastName: "Davolio", Title: "Sales Representative"},
			{ID: 2, FirstName: "Andrew", LastName: "Fuller", Title: "Vice President, Sales"},
			{ID: 3, FirstName: "Janet", LastName: "Leverling", Title: "Sales Representative"},
		},
		Products: []model.Product{
			{ID: 1, Name: "Chai", CategoryID: 1, SupplierID: 1},
			{ID: 2, Name: "Chang", CategoryID: 1, SupplierID: 1},
			{ID: 3, Name: "Aniseed Syrup", CategoryID: 2, SupplierID: 2, Discontinued: true},
			{ID: 4, Name: "Cajun Seasoning", CategoryID: 2, SupplierID: 2},
		},
		Orders: []model.Order{
			{ID: 10000, CustomerID: "QUICK", EmployeeID: 2, OrderDate: Date(1996, time.November, 20), RequiredDate: Date(1996, time.December, 20), ShipperID: 1},
			{ID: 10001, CustomerID: "GREAL", EmployeeID: 1, OrderDate: Date(1997, time.January, 2), RequiredDate: Date(1997, time.January, 30), ShippedDate: &shipped, ShipperID: 2},
			{ID: 10002, CustomerID: "AROUT", EmployeeID: 2, OrderDate: Date(1997, time.March, 20), RequiredDate: Date(1997, time.April, 15), ShipperID: 1},
			{ID: 10003, CustomerID: "BONAP", EmployeeID: 3, OrderDate: Date(1997, time.June, 3), RequiredDate: Date(1997, time.July, 1), ShipperID: 1},
			{ID: 10004, CustomerID: "ALFKI", EmployeeID: 1, OrderDate: Date(1997, time.September, 12), RequiredDate: Date(1997, time.October, 10), ShipperID: 2},
			{ID: 10005, CustomerID: "GREAL", EmployeeID: 3, OrderDate: Date(1998, time.January, 5), RequiredDate: Date(1998, time.February, 2), ShipperID: 2},
			{ID: 10006, CustomerID: "AROUT", EmployeeID: 1, OrderDate: Date(1997, time.December, 20), RequiredDate: Date(1998, time.January, 10), ShipperID: 1},
			{ID: 10007, CustomerID: "ALFKI", EmployeeID: 2, OrderDate: Date(1998, time.February, 1), RequiredDate: Date(1998, time.March, 1), ShipperID: 1},
			{ID: 10008, CustomerID: "BONAP", EmployeeID: 3, OrderDate: Date(1998, time.March, 1), RequiredDate: Date(1998, time.April, 1), ShipperID: 2},
			{ID: 10009, CustomerID: "QUICK", EmployeeID: 9, OrderDate: Date(1998, time.January, 10), RequiredDate: Date(1998, time.January, 20), ShipperID: 1},
		},
		Lines: []model.OrderLine{
			line(10000, 1, "20", 25, "0"),
			line(10001, 1, "100", 100, "0"),
			line(10002, 2, "50", 100, "0"),
			line(10002, 3, "10", 10, "0.5"),
			line(10003, 1, "10", 10, "0"),
			line(10003, 2, "20", 5, "0.1"),
			line(10003, 4, "5", 2, "0"),
			line(10004, 4, "25", 20, "0"),
			line(10004, 1, "10", 5, "0"),
			line(10005, 2, "100", 10, "0"),
			line(10006, 1, "100", 5, "0"),
			line(10007, 3, "10", 10, "0"),
			line(10007, 4, "25", 4, "0"),
			line(10008, 1, "10", 30, "0"),
			line(10009, 2, "50", 2, "0"),
		},
	}
}

// Dataset returns the fixture dataset.
func Dataset() *model.Dataset {
	return model.NewDataset(Tables())
}
