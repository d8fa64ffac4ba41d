package domain

import (
	"fmt"
	"strings"
	"time"
)

// AddressTitle is the honorific printed on shipping labels.
type AddressTitle string

const (
	AddressTitleMr  AddressTitle = "MR"
	AddressTitleMrs AddressTitle = "MRS"
)

// ParseAddressTitle validates a title.
func ParseAddressTitle(raw string) (AddressTitle, error) {
	title := AddressTitle(strings.ToUpper(strings.TrimSpace(raw)))
	switch title {
	case AddressTitleMr, AddressTitleMrs:
		return title, nil
	default:
		return "", fmt.Errorf("unknown title %q", raw)
	}
}

// Address is an entry in a user's address book.
type Address struct {
	ID           int64
	UserID       int64
	Title        AddressTitle
	FirstName    string
	LastName     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
