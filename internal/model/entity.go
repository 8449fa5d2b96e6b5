package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products (e.g. "Beverages", "Meat/Poultry").
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Supplier is a vendor of products.
type Supplier struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Shipper delivers orders to customers.
type Shipper struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Customer buys products. Customer identifiers in the sample dataset are
// five-letter codes such as "ALFKI".
type Customer struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName,omitempty"`
	Country     string `json:"country"`
}

// Employee handles orders.
type Employee struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Title     string `json:"title"`
}

// FullName returns "FirstName LastName".
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

// Product is an item sold by the company.
type Product struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CategoryID   int    `json:"categoryId"`
	SupplierID   int    `json:"supplierId"`
	Discontinued bool   `json:"discontinued"`
}

// Order is a sales order.
//
// RequiredDate is the canonical time dimension of every report. A zero
// RequiredDate means the value was missing in the source; such orders are
// excluded from date-filtered reports.
type Order struct {
	ID           int       `json:"id"`
	CustomerID   string    `json:"customerId"`
	EmployeeID   int       `json:"employeeId"`
	OrderDate    time.Time `json:"orderDate"`
	RequiredDate time.Time `json:"requiredDate"`
	// ShippedDate is nil for orders that have not shipped yet.
	ShippedDate *time.Time `json:"shippedDate,omitempty"`
	ShipperID   int        `json:"shipperId,omitempty"`
}

// OrderLine is one product line of an order.
type OrderLine struct {
	OrderID   int             `json:"orderId"`
	ProductID int             `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	// Discount is a fraction between 0 and 1.
	Discount decimal.Decimal `json:"discount"`
}

// Revenue returns unitPrice × quantity × (1 − discount).
func (l OrderLine) Revenue() decimal.Decimal {
	return l.UnitPrice.
		Mul(decimal.NewFromInt(int64(l.Quantity))).
		Mul(decimal.NewFromInt(1).Sub(l.Discount))
}
