package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        CustomerInput
		wantField string
	}{
		{
			name: "valid customer",
			in:   CustomerInput{Name: "Rahul Sharma", Email: "rahul@example.com", Phone: "9876543210", Address: "12 MG Road"},
		},
		{
			name:      "missing name",
			in:        CustomerInput{Email: "rahul@example.com", Phone: "9876543210", Address: "12 MG Road"},
			wantField: "name",
		},
		{
			name:      "bad email",
			in:        CustomerInput{Name: "Rahul", Email: "not-an-email", Phone: "9876543210", Address: "12 MG Road"},
			wantField: "email",
		},
		{
			name:      "display name email",
			in:        CustomerInput{Name: "Rahul", Email: "Rahul <rahul@example.com>", Phone: "9876543210", Address: "12 MG Road"},
			wantField: "email",
		},
		{
			name:      "phone too long",
			in:        CustomerInput{Name: "Rahul", Email: "rahul@example.com", Phone: "98765432101", Address: "12 MG Road"},
			wantField: "phone",
		},
		{
			name:      "phone letters",
			in:        CustomerInput{Name: "Rahul", Email: "rahul@example.com", Phone: "98765abc", Address: "12 MG Road"},
			wantField: "phone",
		},
		{
			name:      "missing address",
			in:        CustomerInput{Name: "Rahul", Email: "rahul@example.com", Phone: "9876543210"},
			wantField: "address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, tt.in.Validate(), tt.wantField)
		})
	}
}

func TestRestaurantInputValidate(t *testing.T) {
	rating := func(s string) *decimal.Decimal { return decPtr(s) }

	tests := []struct {
		name      string
		in        RestaurantInput
		wantField string
	}{
		{
			name: "valid without rating",
			in:   RestaurantInput{Name: "Spice Hub", Address: "5 Park St", Phone: "0331234567", CuisineType: CuisineIndian},
		},
		{
			name: "rating upper bound",
			in:   RestaurantInput{Name: "Spice Hub", Address: "5 Park St", Phone: "0331234567", CuisineType: CuisineIndian, Rating: rating("5.00")},
		},
		{
			name:      "rating above range",
			in:        RestaurantInput{Name: "Spice Hub", Address: "5 Park St", Phone: "0331234567", CuisineType: CuisineIndian, Rating: rating("5.01")},
			wantField: "rating",
		},
		{
			name:      "negative rating",
			in:        RestaurantInput{Name: "Spice Hub", Address: "5 Park St", Phone: "0331234567", CuisineType: CuisineIndian, Rating: rating("-0.5")},
			wantField: "rating",
		},
		{
			name:      "unknown cuisine",
			in:        RestaurantInput{Name: "Spice Hub", Address: "5 Park St", Phone: "0331234567", CuisineType: "Martian"},
			wantField: "cuisine_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, tt.in.Validate(), tt.wantField)
		})
	}

	in := RestaurantInput{}
	assert.True(t, in.RatingOrDefault().IsZero())
}

func TestMenuItemInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        MenuItemInput
		wantField string
	}{
		{
			name: "valid item",
			in:   MenuItemInput{RestaurantID: 1, Name: "Paneer Tikka", Price: dec("150.00"), Category: CategoryStarter},
		},
		{
			name: "free item",
			in:   MenuItemInput{RestaurantID: 1, Name: "Water", Price: dec("0"), Category: CategoryBeverage},
		},
		{
			name:      "negative price",
			in:        MenuItemInput{RestaurantID: 1, Name: "Paneer Tikka", Price: dec("-1"), Category: CategoryStarter},
			wantField: "price",
		},
		{
			name:      "missing restaurant",
			in:        MenuItemInput{Name: "Paneer Tikka", Price: dec("150"), Category: CategoryStarter},
			wantField: "restaurant_id",
		},
		{
			name:      "name too long",
			in:        MenuItemInput{RestaurantID: 1, Name: "An extraordinarily long dish name that keeps on going", Price: dec("1"), Category: CategorySnack},
			wantField: "name",
		},
		{
			name:      "unknown category",
			in:        MenuItemInput{RestaurantID: 1, Name: "Paneer Tikka", Price: dec("150"), Category: "Soup"},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, tt.in.Validate(), tt.wantField)
		})
	}

	assert.True(t, (&MenuItemInput{}).Availability())
}

func TestDeliveryPersonInputValidate(t *testing.T) {
	unavailable := false

	valid := DeliveryPersonInput{Name: "Arjun", Phone: "+91 98765 43210", VehicleType: VehicleScooter, IsAvailable: &unavailable}
	require.NoError(t, valid.Validate())
	assert.False(t, valid.Availability())

	bad := DeliveryPersonInput{Name: "Arjun", Phone: "9876543210", VehicleType: "Rocket"}
	assertValidation(t, bad.Validate(), "vehicle_type")

	assert.Equal(t, "Busy", DeliveryPerson{IsAvailable: false}.StatusLabel())
	assert.Equal(t, "Available", DeliveryPerson{IsAvailable: true}.StatusLabel())
}

func TestFormatNullAmount(t *testing.T) {
	assert.Equal(t, "-", FormatNullAmount(decimal.NullDecimal{}))
	assert.Equal(t, "Rs.1330.00", FormatNullAmount(decimal.NewNullDecimal(dec("1330"))))
}

func assertValidation(t *testing.T, err error, wantField string) {
	t.Helper()
	if wantField == "" {
		assert.NoError(t, err)
		return
	}
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, wantField, ve.Field)
}
