package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a person placing orders
type Customer struct {
	ID        int       `json:"customer_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CustomerInput is the writable part of a Customer
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerSummary is a customer with their order statistics.
// TotalSpent is invalid (NULL) for customers without orders.
type CustomerSummary struct {
	Customer
	OrderCount int                 `json:"order_count"`
	TotalSpent decimal.NullDecimal `json:"total_spent"`
}

// Validate validates the customer input
func (in *CustomerInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validateName("name", in.Name, 100); err != nil {
		return err
	}
	if in.Email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return ValidationError{Field: "email", Message: "email is not a valid address"}
	}
	if len(in.Email) > 254 {
		return ValidationError{Field: "email", Message: "email must not exceed 254 characters"}
	}
	if err := validatePhone("phone", in.Phone, 10); err != nil {
		return err
	}
	if strings.TrimSpace(in.Address) == "" {
		return ValidationError{Field: "address", Message: "address is required"}
	}
	return nil
}

func validateName(field, name string, max int) error {
	if name == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if len([]rune(name)) > max {
		return ValidationError{Field: field, Message: field + " is too long"}
	}
	return nil
}

func validatePhone(field, phone string, max int) error {
	if phone == "" {
		return ValidationError{Field: field, Message: "phone is required"}
	}
	if len(phone) > max {
		return ValidationError{Field: field, Message: "phone is too long"}
	}
	for _, r := range phone {
		if (r < '0' || r > '9') && r != '+' && r != '-' && r != ' ' {
			return ValidationError{Field: field, Message: "phone contains invalid characters"}
		}
	}
	return nil
}
