package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cuisine represents a restaurant's cuisine category
type Cuisine string

const (
	CuisineIndian      Cuisine = "Indian"
	CuisineChinese     Cuisine = "Chinese"
	CuisineItalian     Cuisine = "Italian"
	CuisineMexican     Cuisine = "Mexican"
	CuisineFastFood    Cuisine = "Fast Food"
	CuisineContinental Cuisine = "Continental"
)

// Cuisines lists every cuisine in display order
var Cuisines = []Cuisine{
	CuisineIndian, CuisineChinese, CuisineItalian, CuisineMexican, CuisineFastFood, CuisineContinental,
}

func (c Cuisine) Valid() bool {
	for _, v := range Cuisines {
		if v == c {
			return true
		}
	}
	return false
}

// Restaurant represents a restaurant offering menu items
type Restaurant struct {
	ID          int             `json:"restaurant_id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Address     string          `json:"address" db:"address"`
	Phone       string          `json:"phone" db:"phone"`
	CuisineType Cuisine         `json:"cuisine_type" db:"cuisine_type"`
	Rating      decimal.Decimal `json:"rating" db:"rating"`
}

// RestaurantInput is the writable part of a Restaurant
type RestaurantInput struct {
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Phone       string           `json:"phone"`
	CuisineType Cuisine          `json:"cuisine_type"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
}

// RestaurantSummary is a restaurant with its order statistics
type RestaurantSummary struct {
	Restaurant
	OrderCount    int                 `json:"order_count"`
	TotalRevenue  decimal.NullDecimal `json:"total_revenue"`
	AverageAmount decimal.NullDecimal `json:"average_amount"`
}

// Validate validates the restaurant input
func (in *RestaurantInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validateName("name", in.Name, 100); err != nil {
		return err
	}
	if strings.TrimSpace(in.Address) == "" {
		return ValidationError{Field: "address", Message: "address is required"}
	}
	if err := validatePhone("phone", in.Phone, 10); err != nil {
		return err
	}
	if !in.CuisineType.Valid() {
		return ValidationError{Field: "cuisine_type", Message: "invalid cuisine type"}
	}
	if in.Rating != nil {
		if err := ValidateRating(*in.Rating); err != nil {
			return err
		}
	}
	return nil
}

// RatingOrDefault returns the supplied rating or zero
func (in *RestaurantInput) RatingOrDefault() decimal.Decimal {
	if in.Rating == nil {
		return decimal.Zero
	}
	return *in.Rating
}

// ValidateRating checks that a rating lies in [0.00, 5.00]
func ValidateRating(rating decimal.Decimal) error {
	if rating.IsNegative() || rating.GreaterThan(maxRating) {
		return ValidationError{Field: "rating", Message: "rating must be between 0.00 and 5.00"}
	}
	if !rating.Equal(rating.Round(2)) {
		return ValidationError{Field: "rating", Message: "rating must have at most 2 decimal places"}
	}
	return nil
}
