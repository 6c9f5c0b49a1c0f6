package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

// InactiveStatuses are the terminal statuses excluded from the active-order count
var InactiveStatuses = []OrderStatus{StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsActive reports whether an order in this status still needs work
func (s OrderStatus) IsActive() bool {
	for _, v := range InactiveStatuses {
		if v == s {
			return false
		}
	}
	return true
}

// ParseOrderStatus validates a raw status value
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", raw)}
	}
	return status, nil
}

// Order represents a customer order placed at one restaurant
type Order struct {
	ID               int             `json:"order_id" db:"id"`
	CustomerID       int             `json:"customer_id" db:"customer_id"`
	RestaurantID     int             `json:"restaurant_id" db:"restaurant_id"`
	DeliveryPersonID *int            `json:"delivery_person_id" db:"delivery_person_id"`
	OrderDate        time.Time       `json:"order_date" db:"order_date"`
	Status           OrderStatus     `json:"status" db:"status"`
	DeliveryAddress  string          `json:"delivery_address" db:"delivery_address"`
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
}

// OrderView is an order joined with the names of its related records
type OrderView struct {
	Order
	CustomerName       string          `json:"customer_name"`
	RestaurantName     string          `json:"restaurant_name"`
	DeliveryPersonName *string         `json:"delivery_person"`
	Items              []OrderItemView `json:"items,omitempty"`
}

// ItemsTotal is the sum of the subtotals of the loaded items
func (o OrderView) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderItem represents one line of an order
type OrderItem struct {
	ID         int             `json:"order_item_id" db:"id"`
	OrderID    int             `json:"order_id" db:"order_id"`
	MenuItemID int             `json:"menu_item_id" db:"menu_item_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	ItemPrice  decimal.Decimal `json:"item_price" db:"item_price"`
}

// Subtotal returns quantity × captured unit price
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.ItemPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItemView is an order item with its menu item name
type OrderItemView struct {
	OrderItem
	MenuItemName string `json:"menu_item_name"`
}

// StatusSummary holds order statistics for one status
type StatusSummary struct {
	Status      OrderStatus         `json:"status"`
	OrderCount  int                 `json:"order_count"`
	TotalAmount decimal.NullDecimal `json:"total_amount"`
}

// OrderItemRequest describes a line item to create.
// A nil or zero ItemPrice means the menu item's current price is used.
type OrderItemRequest struct {
	MenuItemID int              `json:"menu_item_id"`
	Quantity   int              `json:"quantity"`
	ItemPrice  *decimal.Decimal `json:"item_price,omitempty"`
}

// CreateOrderRequest represents the request to create a new order.
// TotalAmount is caller-asserted; when nil it is derived from the items.
type CreateOrderRequest struct {
	CustomerID       int                `json:"customer_id"`
	RestaurantID     int                `json:"restaurant_id"`
	DeliveryPersonID *int               `json:"delivery_person_id,omitempty"`
	DeliveryAddress  string             `json:"delivery_address"`
	TotalAmount      *decimal.Decimal   `json:"total_amount,omitempty"`
	Items            []OrderItemRequest `json:"items"`
}

// Validate validates the create order request
func (req *CreateOrderRequest) Validate() error {
	req.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)

	if !validID(req.CustomerID) {
		return ValidationError{Field: "customer_id", Message: "customer is required"}
	}
	if !validID(req.RestaurantID) {
		return ValidationError{Field: "restaurant_id", Message: "restaurant is required"}
	}
	if req.DeliveryPersonID != nil && !validID(*req.DeliveryPersonID) {
		return ValidationError{Field: "delivery_person_id", Message: "invalid delivery person"}
	}
	if req.TotalAmount != nil {
		if err := ValidateTotalAmount(*req.TotalAmount); err != nil {
			return err
		}
	}
	return validateItems(req.Items)
}

// validateItems validates the order items
func validateItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return ValidationError{Field: "items", Message: "items cannot be empty"}
	}

	for i, item := range items {
		if err := item.validate(fmt.Sprintf("items[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates a single line item request
func (item OrderItemRequest) Validate() error {
	return item.validate("item")
}

func (item OrderItemRequest) validate(prefix string) error {
	if !validID(item.MenuItemID) {
		return ValidationError{Field: prefix + ".menu_item_id", Message: "menu item is required"}
	}
	if err := validateQuantity(prefix+".quantity", item.Quantity); err != nil {
		return err
	}
	if item.ItemPrice != nil {
		if err := validateMoney(prefix+".item_price", *item.ItemPrice, maxPrice); err != nil {
			return err
		}
	}
	return nil
}

// MaxQuantity is the largest quantity the INTEGER column holds
const MaxQuantity = math.MaxInt32

// ValidateQuantity checks that a line quantity is between one and MaxQuantity
func ValidateQuantity(quantity int) error {
	return validateQuantity("quantity", quantity)
}

func validateQuantity(field string, quantity int) error {
	if quantity < 1 {
		return ValidationError{Field: field, Message: "quantity must be at least 1"}
	}
	if quantity > MaxQuantity {
		return ValidationError{Field: field, Message: fmt.Sprintf("quantity must be at most %d", MaxQuantity)}
	}
	return nil
}

// ValidateTotalAmount checks an order total against the NUMERIC(10,2) column
func ValidateTotalAmount(total decimal.Decimal) error {
	return validateMoney("total_amount", total, maxTotalAmount)
}

// ResolveItemPrice returns the price to capture for a new order item: the
// explicit price when set and non-zero, otherwise the menu item's current price
func ResolveItemPrice(explicit *decimal.Decimal, current decimal.Decimal) decimal.Decimal {
	if explicit == nil || explicit.IsZero() {
		return current
	}
	return *explicit
}

// CalculateTotal sums the subtotals of the given items
func CalculateTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// UpdateStatusRequest changes an order's status
type UpdateStatusRequest struct {
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changed_by,omitempty"`
}

func (req *UpdateStatusRequest) Validate() error {
	if !req.Status.Valid() {
		return ValidationError{Field: "status", Message: "invalid status"}
	}
	if strings.TrimSpace(req.ChangedBy) == "" {
		req.ChangedBy = "admin"
	}
	return nil
}

// AssignCourierRequest sets or clears (nil) an order's courier
type AssignCourierRequest struct {
	DeliveryPersonID *int `json:"delivery_person_id"`
}

func (req *AssignCourierRequest) Validate() error {
	if req.DeliveryPersonID != nil && !validID(*req.DeliveryPersonID) {
		return ValidationError{Field: "delivery_person_id", Message: "invalid delivery person"}
	}
	return nil
}

// UpdateQuantityRequest changes an order item's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (req *UpdateQuantityRequest) Validate() error {
	return ValidateQuantity(req.Quantity)
}
