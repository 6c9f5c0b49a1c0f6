// Package admin holds the declarative metadata of the admin interface: which
// columns each model lists, which fields are searchable, which filters exist
// and the enumerated choices of each field.
package admin

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"food-delivery/internal/models"
)

// FilterKind determines how a filter's query value is parsed
type FilterKind string

const (
	FilterText FilterKind = "text"
	FilterInt  FilterKind = "int"
	FilterBool FilterKind = "bool"
)

// Filter is an exact-match list filter bound to a column
type Filter struct {
	Param   string     `json:"param"`
	Column  string     `json:"-"`
	Kind    FilterKind `json:"kind"`
	Choices []string   `json:"choices,omitempty"`
}

// Model describes how one record type is exposed in the admin interface
type Model struct {
	Name         string              `json:"name"`
	Path         string              `json:"path"`
	ListDisplay  []string            `json:"list_display"`
	SearchFields []string            `json:"search_fields"`
	SearchColumn []string            `json:"-"`
	Filters      []Filter            `json:"filters"`
	ReadOnly     []string            `json:"readonly_fields"`
	Editable     []string            `json:"list_editable,omitempty"`
	Choices      map[string][]string `json:"choices,omitempty"`
	OrderBy      string              `json:"-"`
}

var (
	Customers = Model{
		Name:         "Customer",
		Path:         "customers",
		ListDisplay:  []string{"customer_id", "name", "email", "phone", "created_at"},
		SearchFields: []string{"name", "email", "phone"},
		ReadOnly:     []string{"customer_id", "created_at"},
		OrderBy:      "created_at DESC, id DESC",
	}

	Restaurants = Model{
		Name:         "Restaurant",
		Path:         "restaurants",
		ListDisplay:  []string{"restaurant_id", "name", "cuisine_type", "rating", "phone"},
		SearchFields: []string{"name", "cuisine_type"},
		Filters: []Filter{
			{Param: "cuisine_type", Column: "cuisine_type", Kind: FilterText, Choices: choices(models.Cuisines)},
		},
		ReadOnly: []string{"restaurant_id"},
		Choices:  map[string][]string{"cuisine_type": choices(models.Cuisines)},
		OrderBy:  "rating DESC, id ASC",
	}

	MenuItems = Model{
		Name:         "Menu item",
		Path:         "menu-items",
		ListDisplay:  []string{"item_id", "name", "restaurant", "category", "price", "is_available"},
		SearchFields: []string{"name", "description"},
		Filters: []Filter{
			{Param: "restaurant_id", Column: "restaurant_id", Kind: FilterInt},
			{Param: "category", Column: "category", Kind: FilterText, Choices: choices(models.MenuCategories)},
			{Param: "is_available", Column: "is_available", Kind: FilterBool},
		},
		ReadOnly: []string{"item_id"},
		Editable: []string{"is_available"},
		Choices:  map[string][]string{"category": choices(models.MenuCategories)},
		OrderBy:  "category, name, id",
	}

	DeliveryPersonnel = Model{
		Name:         "Delivery personnel",
		Path:         "couriers",
		ListDisplay:  []string{"delivery_id", "name", "phone", "vehicle_type", "is_available"},
		SearchFields: []string{"name", "phone"},
		Filters: []Filter{
			{Param: "vehicle_type", Column: "vehicle_type", Kind: FilterText, Choices: choices(models.VehicleTypes)},
			{Param: "is_available", Column: "is_available", Kind: FilterBool},
		},
		ReadOnly: []string{"delivery_id"},
		Editable: []string{"is_available"},
		Choices:  map[string][]string{"vehicle_type": choices(models.VehicleTypes)},
		OrderBy:  "id",
	}

	Orders = Model{
		Name:         "Order",
		Path:         "orders",
		ListDisplay:  []string{"order_id", "customer", "restaurant", "total_amount", "status", "order_date"},
		SearchFields: []string{"customer.name", "restaurant.name"},
		SearchColumn: []string{"c.name", "r.name"},
		Filters: []Filter{
			{Param: "status", Column: "o.status", Kind: FilterText, Choices: choices(models.OrderStatuses)},
			{Param: "restaurant_id", Column: "o.restaurant_id", Kind: FilterInt},
			{Param: "customer_id", Column: "o.customer_id", Kind: FilterInt},
		},
		ReadOnly: []string{"order_id", "order_date"},
		Editable: []string{"status"},
		Choices:  map[string][]string{"status": choices(models.OrderStatuses)},
		OrderBy:  "o.order_date DESC, o.id DESC",
	}
)

// Registry lists every model in admin index order
var Registry = []Model{Customers, Restaurants, MenuItems, DeliveryPersonnel, Orders}

func choices[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// ListQuery appends search and filter clauses to base, a SELECT over the
// model's table, and returns the final SQL with its arguments. Only columns
// declared on the model are ever interpolated; values are always bound.
func (m Model) ListQuery(base string, params url.Values) (string, []any, error) {
	var (
		where []string
		args  []any
	)

	if q := strings.TrimSpace(params.Get("q")); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		columns := m.SearchColumn
		if columns == nil {
			columns = m.SearchFields
		}
		clauses := make([]string, len(columns))
		for i, field := range columns {
			clauses[i] = fmt.Sprintf("%s ILIKE %s", field, placeholder)
		}
		where = append(where, "("+strings.Join(clauses, " OR ")+")")
	}

	for _, f := range m.Filters {
		raw := strings.TrimSpace(params.Get(f.Param))
		if raw == "" {
			continue
		}
		value, err := f.parse(raw)
		if err != nil {
			return "", nil, err
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}

	sql := base
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	if m.OrderBy != "" {
		sql += " ORDER BY " + m.OrderBy
	}
	return sql, args, nil
}

func (f Filter) parse(raw string) (any, error) {
	switch f.Kind {
	case FilterInt:
		id, ok := models.ParseID(raw)
		if !ok {
			return nil, models.ValidationError{Field: f.Param, Message: "must be a positive integer"}
		}
		return id, nil
	case FilterBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, models.ValidationError{Field: f.Param, Message: "must be true or false"}
		}
		return b, nil
	default:
		if len(f.Choices) > 0 && !contains(f.Choices, raw) {
			return nil, models.ValidationError{Field: f.Param, Message: fmt.Sprintf("invalid choice %q", raw)}
		}
		return raw, nil
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
