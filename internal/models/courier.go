package models

import "strings"

// VehicleType represents how a courier travels
type VehicleType string

const (
	VehicleBike    VehicleType = "Bike"
	VehicleScooter VehicleType = "Scooter"
	VehicleCar     VehicleType = "Car"
	VehicleBicycle VehicleType = "Bicycle"
)

var VehicleTypes = []VehicleType{VehicleBike, VehicleScooter, VehicleCar, VehicleBicycle}

func (v VehicleType) Valid() bool {
	for _, t := range VehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DeliveryPerson represents a courier who delivers orders
type DeliveryPerson struct {
	ID          int         `json:"delivery_id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Phone       string      `json:"phone" db:"phone"`
	VehicleType VehicleType `json:"vehicle_type" db:"vehicle_type"`
	IsAvailable bool        `json:"is_available" db:"is_available"`
}

// DeliveryPersonInput is the writable part of a DeliveryPerson
type DeliveryPersonInput struct {
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	VehicleType VehicleType `json:"vehicle_type"`
	IsAvailable *bool       `json:"is_available,omitempty"`
}

// CourierSummary holds per-courier delivery statistics
type CourierSummary struct {
	DeliveryPerson
	TotalOrders     int `json:"total_orders"`
	DeliveredOrders int `json:"delivered_orders"`
}

// Validate validates the delivery person input
func (in *DeliveryPersonInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validateName("name", in.Name, 100); err != nil {
		return err
	}
	if err := validatePhone("phone", in.Phone, 15); err != nil {
		return err
	}
	if !in.VehicleType.Valid() {
		return ValidationError{Field: "vehicle_type", Message: "invalid vehicle type"}
	}
	return nil
}

// Availability returns the supplied availability, defaulting to available
func (in *DeliveryPersonInput) Availability() bool {
	if in.IsAvailable == nil {
		return true
	}
	return *in.IsAvailable
}

// StatusLabel is the human readable availability of the courier
func (p DeliveryPerson) StatusLabel() string {
	if p.IsAvailable {
		return "Available"
	}
	return "Busy"
}
