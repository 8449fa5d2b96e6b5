package loader

import (
	"github.com/nao1215/salesreport/internal/model"
)

func parseCategory(r *row) (model.Category, error) {
	var (
		c   model.Category
		err error
	)
	if c.ID, err = r.integer("categoryid", "id"); err != nil {
		return c, err
	}
	if c.Name, err = r.str("categoryname", "name"); err != nil {
		return c, err
	}
	return c, nil
}

func parseSupplier(r *row) (model.Supplier, error) {
	var (
		s   model.Supplier
		err error
	)
	if s.ID, err = r.integer("supplierid", "id"); err != nil {
		return s, err
	}
	if s.Name, err = r.str("companyname", "suppliername", "name"); err != nil {
		return s, err
	}
	s.Country = r.optStr("country")
	return s, nil
}

func parseShipper(r *row) (model.Shipper, error) {
	var (
		s   model.Shipper
		err error
	)
	if s.ID, err = r.integer("shipperid", "id"); err != nil {
		return s, err
	}
	if s.Name, err = r.str("companyname", "shippername", "name"); err != nil {
		return s, err
	}
	return s, nil
}

func parseCustomer(r *row) (model.Customer, error) {
	var (
		c   model.Customer
		err error
	)
	if c.ID, err = r.str("customerid", "id"); err != nil {
		return c, err
	}
	c.CompanyName = r.optStr("companyname", "customername", "name")
	c.Country = r.optStr("country")
	return c, nil
}

func parseEmployee(r *row) (model.Employee, error) {
	var (
		e   model.Employee
		err error
	)
	if e.ID, err = r.integer("employeeid", "id"); err != nil {
		return e, err
	}
	if e.FirstName, err = r.str("firstname"); err != nil {
		return e, err
	}
	if e.LastName, err = r.str("lastname"); err != nil {
		return e, err
	}
	e.Title = r.optStr("title")
	return e, nil
}

func parseProduct(r *row) (model.Product, error) {
	var (
		p   model.Product
		err error
	)
	if p.ID, err = r.integer("productid", "id"); err != nil {
		return p, err
	}
	if p.Name, err = r.str("productname", "name"); err != nil {
		return p, err
	}
	if p.CategoryID, err = r.optInteger("categoryid"); err != nil {
		return p, err
	}
	if p.SupplierID, err = r.optInteger("supplierid"); err != nil {
		return p, err
	}
	if p.Discontinued, err = r.flag("discontinued"); err != nil {
		return p, err
	}
	return p, nil
}

func parseOrder(r *row) (model.Order, error) {
	var (
		o   model.Order
		err error
	)
	if o.ID, err = r.integer("orderid", "id"); err != nil {
		return o, err
	}
	if o.CustomerID, err = r.str("customerid"); err != nil {
		return o, err
	}
	if o.EmployeeID, err = r.optInteger("employeeid"); err != nil {
		return o, err
	}
	if o.ShipperID, err = r.optInteger("shipvia", "shipperid"); err != nil {
		return o, err
	}
	if o.OrderDate, _, err = r.date("orderdate"); err != nil {
		return o, err
	}
	if o.RequiredDate, _, err = r.date("requireddate"); err != nil {
		return o, err
	}
	shipped, ok, err := r.date("shippeddate")
	if err != nil {
		return o, err
	}
	if ok {
		o.ShippedDate = &shipped
	}
	return o, nil
}

func parseLine(r *row) (model.OrderLine, error) {
	var (
		l   model.OrderLine
		err error
	)
	if l.OrderID, err = r.integer("orderid"); err != nil {
		return l, err
	}
	if l.ProductID, err = r.integer("productid"); err != nil {
		return l, err
	}
	if l.UnitPrice, err = r.dec(false, "unitprice"); err != nil {
		return l, err
	}
	if l.Quantity, err = r.integer("quantity"); err != nil {
		return l, err
	}
	if l.Discount, err = r.dec(true, "discount"); err != nil {
		return l, err
	}
	return l, nil
}
