// Package auth owns the current session and the user's saved addresses.
package auth

import "errors"

// ErrDuplicateAddress is returned when an added address reuses a saved id.
var ErrDuplicateAddress = errors.New("address id already in use")

// Namespace is the persistence key of the auth state.
const Namespace = "auth-storage"

// Name is a user's display name.
type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// User is the signed-in account as returned by the API.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     Name   `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

// Address is a saved shipping address. At most one address in the list is
// the default, and a non-empty list always has one.
type Address struct {
	ID        string `json:"id"`
	UserID    int    `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// AddressPatch carries the fields to change in UpdateAddress; nil fields
// are kept.
type AddressPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Street    *string `json:"street,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	ZipCode   *string `json:"zipCode,omitempty"`
	Country   *string `json:"country,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsDefault *bool   `json:"isDefault,omitempty"`
}

func (p AddressPatch) apply(a Address) Address {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.FirstName, p.FirstName)
	set(&a.LastName, p.LastName)
	set(&a.Street, p.Street)
	set(&a.City, p.City)
	set(&a.State, p.State)
	set(&a.ZipCode, p.ZipCode)
	set(&a.Country, p.Country)
	set(&a.Phone, p.Phone)
	return a
}

// State is the persisted auth document.
type State struct {
	User      *User     `json:"user"`
	Token     *string   `json:"token"`
	Addresses []Address `json:"addresses"`
	IsLoading bool      `json:"isLoading"`
}
