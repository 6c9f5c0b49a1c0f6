package admin

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/models"
)

func TestListQuery(t *testing.T) {
	base := "SELECT id FROM menu_item"

	tests := []struct {
		name     string
		model    Model
		params   url.Values
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no params",
			model:   Customers,
			params:  url.Values{},
			wantSQL: "SELECT id FROM menu_item ORDER BY created_at DESC, id DESC",
		},
		{
			name:     "search only",
			model:    Customers,
			params:   url.Values{"q": {"rahul"}},
			wantSQL:  "SELECT id FROM menu_item WHERE (name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1) ORDER BY created_at DESC, id DESC",
			wantArgs: []any{"%rahul%"},
		},
		{
			name:     "search escapes wildcards",
			model:    Customers,
			params:   url.Values{"q": {"50%_off"}},
			wantSQL:  "SELECT id FROM menu_item WHERE (name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1) ORDER BY created_at DESC, id DESC",
			wantArgs: []any{`%50\%\_off%`},
		},
		{
			name:     "search and filters",
			model:    MenuItems,
			params:   url.Values{"q": {"tikka"}, "restaurant_id": {"4"}, "is_available": {"true"}},
			wantSQL:  "SELECT id FROM menu_item WHERE (name ILIKE $1 OR description ILIKE $1) AND restaurant_id = $2 AND is_available = $3 ORDER BY category, name, id",
			wantArgs: []any{"%tikka%", 4, true},
		},
		{
			name:     "choice filter",
			model:    Restaurants,
			params:   url.Values{"cuisine_type": {"Fast Food"}},
			wantSQL:  "SELECT id FROM menu_item WHERE cuisine_type = $1 ORDER BY rating DESC, id ASC",
			wantArgs: []any{"Fast Food"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.model.ListQuery(base, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestListQueryRejectsBadFilters(t *testing.T) {
	tests := []struct {
		name   string
		model  Model
		params url.Values
		field  string
	}{
		{name: "non-integer id", model: MenuItems, params: url.Values{"restaurant_id": {"abc"}}, field: "restaurant_id"},
		{name: "id beyond integer column", model: Orders, params: url.Values{"customer_id": {"9999999999"}}, field: "customer_id"},
		{name: "non-bool availability", model: DeliveryPersonnel, params: url.Values{"is_available": {"maybe"}}, field: "is_available"},
		{name: "unknown choice", model: DeliveryPersonnel, params: url.Values{"vehicle_type": {"Rocket"}}, field: "vehicle_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.model.ListQuery("SELECT 1", tt.params)
			var ve models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestRegistryChoicesMatchEnums(t *testing.T) {
	assert.Len(t, Registry, 5)
	assert.Equal(t, []string{"Pending", "Confirmed", "Preparing", "Out for Delivery", "Delivered", "Cancelled"}, Orders.Choices["status"])
	assert.Contains(t, Restaurants.Choices["cuisine_type"], "Fast Food")
	assert.Contains(t, MenuItems.Editable, "is_available")
}

func TestListQueryUsesSearchColumns(t *testing.T) {
	sql, args, err := Orders.ListQuery("SELECT o.id FROM order_table o", url.Values{"q": {"spice"}, "status": {"Delivered"}})
	require.NoError(t, err)

	assert.Equal(t, "SELECT o.id FROM order_table o WHERE (c.name ILIKE $1 OR r.name ILIKE $1) AND o.status = $2 ORDER BY o.order_date DESC, o.id DESC", sql)
	assert.Equal(t, []any{"%spice%", "Delivered"}, args)
}
