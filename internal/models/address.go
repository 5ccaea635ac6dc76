package models

import "time"

const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
)

type Address struct {
	ID            int64
	UserID        int64
	AddressType   string
	FirstName     string
	LastName      string
	Company       string
	AddressLine1  string
	AddressLine2  string
	City          string
	StateProvince string
	PostalCode    string
	Country       string
	IsDefault     bool
	CreatedAt     time.Time
}

func (a *Address) Validate() error {
	v := validator{entity: "address"}
	v.positiveID("user_id", a.UserID)
	v.oneOf("address_type", a.AddressType, AddressShipping, AddressBilling)
	v.maxLen("first_name", a.FirstName, 50)
	v.maxLen("last_name", a.LastName, 50)
	v.maxLen("company", a.Company, 100)
	v.required("address_line1", a.AddressLine1)
	v.maxLen("address_line1", a.AddressLine1, 255)
	v.maxLen("address_line2", a.AddressLine2, 255)
	v.required("city", a.City)
	v.maxLen("city", a.City, 100)
	v.maxLen("state_province", a.StateProvince, 100)
	v.maxLen("postal_code", a.PostalCode, 20)
	v.required("country", a.Country)
	v.maxLen("country", a.Country, 100)
	return v.err
}
