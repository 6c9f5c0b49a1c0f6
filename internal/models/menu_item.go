package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	CategoryStarter    MenuCategory = "Starter"
	CategoryMainCourse MenuCategory = "Main Course"
	CategoryDessert    MenuCategory = "Dessert"
	CategoryBeverage   MenuCategory = "Beverage"
	CategorySnack      MenuCategory = "Snack"
)

var MenuCategories = []MenuCategory{
	CategoryStarter, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategorySnack,
}

func (c MenuCategory) Valid() bool {
	for _, v := range MenuCategories {
		if v == c {
			return true
		}
	}
	return false
}

// MenuItem represents a dish offered by a restaurant
type MenuItem struct {
	ID           int             `json:"item_id" db:"id"`
	RestaurantID int             `json:"restaurant_id" db:"restaurant_id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Category     MenuCategory    `json:"category" db:"category"`
	IsAvailable  bool            `json:"is_available" db:"is_available"`
}

// MenuItemInput is the writable part of a MenuItem
type MenuItemInput struct {
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     MenuCategory    `json:"category"`
	IsAvailable  *bool           `json:"is_available,omitempty"`
}

// PopularItem is a menu item with its order statistics
type PopularItem struct {
	MenuItemID     int    `json:"item_id"`
	Name           string `json:"name"`
	RestaurantName string `json:"restaurant_name"`
	TimesOrdered   int    `json:"times_ordered"`
	TotalQuantity  int    `json:"total_quantity"`
}

// Validate validates the menu item input
func (in *MenuItemInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)

	if !validID(in.RestaurantID) {
		return ValidationError{Field: "restaurant_id", Message: "restaurant is required"}
	}
	if err := validateName("name", in.Name, 50); err != nil {
		return err
	}
	if err := validateMoney("price", in.Price, maxPrice); err != nil {
		return err
	}
	if !in.Category.Valid() {
		return ValidationError{Field: "category", Message: "invalid category"}
	}
	return nil
}

// Availability returns the supplied availability, defaulting to available
func (in *MenuItemInput) Availability() bool {
	if in.IsAvailable == nil {
		return true
	}
	return *in.IsAvailable
}
