package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// fakeStore keeps customers and menu items in memory; the other Store
// methods are left to the embedded nil interface
type fakeStore struct {
	Store
	customers  map[int]models.Customer
	menuItems  map[int]models.MenuItem
	writes     int
	listParams url.Values
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[int]models.Customer{
			1: {ID: 1, Name: "Rahul Sharma", Email: "rahul@example.com", Phone: "9876543210", Address: "12 MG Road"},
		},
		menuItems: map[int]models.MenuItem{
			7: {ID: 7, RestaurantID: 1, Name: "Paneer Tikka", Price: decimal.RequireFromString("180.00"), Category: models.CategoryStarter, IsAvailable: true},
		},
	}
}

func (f *fakeStore) CreateCustomer(_ context.Context, in models.CustomerInput) (*models.Customer, error) {
	f.writes++
	for _, c := range f.customers {
		if c.Email == in.Email {
			return nil, fmt.Errorf("%w: email already exists", models.ErrConflict)
		}
	}
	c := models.Customer{ID: len(f.customers) + 1, Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
	f.customers[c.ID] = c
	return &c, nil
}

func (f *fakeStore) GetCustomer(_ context.Context, id int) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) DeleteCustomer(_ context.Context, id int) error {
	f.writes++
	if _, ok := f.customers[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeStore) ListCustomers(_ context.Context, params url.Values) ([]models.Customer, error) {
	f.listParams = params
	out := []models.Customer{}
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) SetMenuItemAvailability(_ context.Context, id int, available bool) error {
	f.writes++
	item, ok := f.menuItems[id]
	if !ok {
		return models.ErrNotFound
	}
	item.IsAvailable = available
	f.menuItems[id] = item
	return nil
}

func newTestMux(store *fakeStore) *http.ServeMux {
	log := logger.NewWithWriter("test", "error", io.Discard)
	mux := http.NewServeMux()
	NewHandler(NewService(store, log), log).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCustomerEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantWrites int
	}{
		{
			name:       "create",
			method:     http.MethodPost,
			target:     "/admin/customers/",
			body:       `{"name":"Priya Patel","email":"priya@example.com","phone":"9123456780","address":"4 Park Lane"}`,
			wantStatus: http.StatusCreated,
			wantWrites: 1,
		},
		{
			name:       "create rejects invalid email before writing",
			method:     http.MethodPost,
			target:     "/admin/customers/",
			body:       `{"name":"Priya Patel","email":"priya","phone":"9123456780","address":"4 Park Lane"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "create duplicate email",
			method:     http.MethodPost,
			target:     "/admin/customers/",
			body:       `{"name":"Other Rahul","email":"rahul@example.com","phone":"9123456780","address":"4 Park Lane"}`,
			wantStatus: http.StatusConflict,
			wantWrites: 1,
		},
		{
			name:       "create rejects unknown fields",
			method:     http.MethodPost,
			target:     "/admin/customers/",
			body:       `{"name":"Priya Patel","nickname":"P"}`,
			wantStatus: http.StatusBadRequest,
		},
		{name: "get", method: http.MethodGet, target: "/admin/customers/1/", wantStatus: http.StatusOK},
		{name: "get missing", method: http.MethodGet, target: "/admin/customers/99/", wantStatus: http.StatusNotFound},
		{name: "get bad id", method: http.MethodGet, target: "/admin/customers/abc/", wantStatus: http.StatusBadRequest},
		{name: "delete", method: http.MethodDelete, target: "/admin/customers/1/", wantStatus: http.StatusNoContent, wantWrites: 1},
		{name: "delete missing", method: http.MethodDelete, target: "/admin/customers/42/", wantStatus: http.StatusNotFound, wantWrites: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			rec := do(t, newTestMux(store), tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantWrites, store.writes)
		})
	}
}

func TestListCustomersPassesQuery(t *testing.T) {
	store := newFakeStore()
	rec := do(t, newTestMux(store), http.MethodGet, "/admin/customers/?q=rahul", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rahul", store.listParams.Get("q"))

	var body struct {
		Model   string            `json:"model"`
		Count   int               `json:"count"`
		Results []models.Customer `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Customer", body.Model)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "rahul@example.com", body.Results[0].Email)
}

func TestMenuItemAvailabilityToggle(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		body          string
		wantStatus    int
		wantAvailable bool
	}{
		{name: "mark unavailable", target: "/admin/menu-items/7/availability/", body: `{"is_available": false}`, wantStatus: http.StatusOK},
		{name: "missing flag", target: "/admin/menu-items/7/availability/", body: `{}`, wantStatus: http.StatusBadRequest, wantAvailable: true},
		{name: "unknown item", target: "/admin/menu-items/8/availability/", body: `{"is_available": false}`, wantStatus: http.StatusNotFound, wantAvailable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			rec := do(t, newTestMux(store), http.MethodPatch, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantAvailable, store.menuItems[7].IsAvailable)
		})
	}
}

func TestAdminIndex(t *testing.T) {
	rec := do(t, newTestMux(newFakeStore()), http.MethodGet, "/admin/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Models []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Models, 5)
	assert.Equal(t, "menu-items", body.Models[2].Path)
}
