package types

import "strings"

// Address is the shipping/saved address shape shared by orders and user profiles.
// It is persisted as embedded columns so both Postgres and the sqlite test driver
// can store it without custom serializers.
type Address struct {
	FullName string `json:"fullName" validate:"required"`
	Address1 string `json:"address1" validate:"required"`
	Address2 string `json:"address2"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// IsZero reports whether no field of the address is populated.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Normalize trims surrounding whitespace from every field.
func (a Address) Normalize() Address {
	return Address{
		FullName: strings.TrimSpace(a.FullName),
		Address1: strings.TrimSpace(a.Address1),
		Address2: strings.TrimSpace(a.Address2),
		City:     strings.TrimSpace(a.City),
		State:    strings.TrimSpace(a.State),
		Zip:      strings.TrimSpace(a.Zip),
		Country:  strings.TrimSpace(a.Country),
	}
}
