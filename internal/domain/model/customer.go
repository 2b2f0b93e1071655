package model

import "strings"

// Customer is the wire record for odata/Customer, exactly the server contract.
type Customer struct {
	Oid      string `json:"Oid"`
	Name     string `json:"Name"`
	LastName string `json:"LastName"`
	Active   bool   `json:"Active"`
}

// CustomerView is a Customer plus fields derived for display. Derived fields
// are excluded from JSON; update payloads are built from Wire.
type CustomerView struct {
	Customer
	FullName string `json:"-"`
}

// NewCustomerView derives the display fields from a wire record.
func NewCustomerView(c Customer) CustomerView {
	return CustomerView{
		Customer: c,
		FullName: strings.TrimSpace(c.Name + " " + c.LastName),
	}
}

// Wire returns the server-defined fields only.
func (v CustomerView) Wire() Customer {
	return v.Customer
}

// NewCustomerViews maps a slice of wire records. The result is never nil.
func NewCustomerViews(customers []Customer) []CustomerView {
	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, NewCustomerView(c))
	}
	return views
}
