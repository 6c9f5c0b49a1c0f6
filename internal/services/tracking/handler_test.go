package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

type fakeStatusRepo struct {
	statuses map[int]OrderStatus
	err      error
}

func (f *fakeStatusRepo) GetOrderStatus(_ context.Context, orderID int) (*OrderStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.statuses[orderID]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", orderID, models.ErrNotFound)
	}
	return &s, nil
}

type fakeMenuRepo struct {
	menus map[int][]models.MenuItem
}

func (f *fakeMenuRepo) ListAvailableMenuItems(_ context.Context, restaurantID int) ([]models.MenuItem, error) {
	items, ok := f.menus[restaurantID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return items, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestMux(statuses StatusRepo, checks map[string]Pinger) *http.ServeMux {
	courier := "Amit Kumar"
	if statuses == nil {
		statuses = &fakeStatusRepo{statuses: map[int]OrderStatus{
			1: {OrderID: 1, Status: models.StatusOutForDelivery, TotalAmount: decimal.RequireFromString("450"), DeliveryPersonName: &courier},
			2: {OrderID: 2, Status: models.StatusPending, TotalAmount: decimal.RequireFromString("1330.5")},
		}}
	}
	menus := &fakeMenuRepo{menus: map[int][]models.MenuItem{
		1: {
			{ID: 7, RestaurantID: 1, Name: "Paneer Tikka", Description: "Grilled cottage cheese", Price: decimal.RequireFromString("180"), Category: models.CategoryStarter, IsAvailable: true},
			{ID: 9, RestaurantID: 1, Name: "Lassi", Price: decimal.RequireFromString("60.50"), Category: models.CategoryBeverage, IsAvailable: true},
		},
		2: {},
	}}

	log := logger.NewWithWriter("test", "error", io.Discard)
	mux := http.NewServeMux()
	NewHandler(NewService(statuses, menus, checks, log), log).RegisterRoutes(mux)
	return mux
}

func get(t *testing.T, mux http.Handler, target string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec.Code, body
}

func TestGetOrderStatus(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantSuccess bool
		wantCourier interface{}
		wantTotal   string
	}{
		{name: "with courier", target: "/api/order/1/status/", wantStatus: http.StatusOK, wantSuccess: true, wantCourier: "Amit Kumar", wantTotal: "450.00"},
		{name: "without courier", target: "/api/order/2/status/", wantStatus: http.StatusOK, wantSuccess: true, wantCourier: nil, wantTotal: "1330.50"},
		{name: "unknown order", target: "/api/order/99/status/", wantStatus: http.StatusNotFound},
		{name: "non-numeric id", target: "/api/order/abc/status/", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, newTestMux(nil, nil), tt.target)

			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantSuccess, body["success"])
			if !tt.wantSuccess {
				assert.Equal(t, "Order not found", body["error"])
				return
			}
			assert.Contains(t, body, "delivery_person")
			assert.Equal(t, tt.wantCourier, body["delivery_person"])
			assert.Equal(t, tt.wantTotal, body["total_amount"])
		})
	}
}

func TestGetOrderStatusIDBeyondIntegerColumn(t *testing.T) {
	// the store would fail to encode the id; the handler must never reach it
	mux := newTestMux(&fakeStatusRepo{err: errors.New("unable to encode 9999999999 into binary format for int4")}, nil)
	code, body := get(t, mux, "/api/order/9999999999/status/")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Order not found", body["error"])
}

func TestGetOrderStatusInternalError(t *testing.T) {
	mux := newTestMux(&fakeStatusRepo{err: errors.New("connection refused")}, nil)
	code, body := get(t, mux, "/api/order/1/status/")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["error"])
}

func TestGetRestaurantMenu(t *testing.T) {
	t.Run("available items", func(t *testing.T) {
		code, body := get(t, newTestMux(nil, nil), "/api/restaurant/1/menu/")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["success"])

		items := body["menu_items"].([]interface{})
		require.Len(t, items, 2)
		first := items[0].(map[string]interface{})
		assert.Equal(t, float64(7), first["item_id"])
		assert.Equal(t, "180.00", first["price"])
		assert.Equal(t, "Starter", first["category"])
		assert.Equal(t, "Grilled cottage cheese", first["description"])
		assert.Equal(t, "60.50", items[1].(map[string]interface{})["price"])
	})

	t.Run("empty menu", func(t *testing.T) {
		code, body := get(t, newTestMux(nil, nil), "/api/restaurant/2/menu/")
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, body["menu_items"])
		assert.NotNil(t, body["menu_items"])
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		code, body := get(t, newTestMux(nil, nil), "/api/restaurant/5/menu/")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Restaurant not found", body["error"])
	})
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
		wantChecks map[string]interface{}
	}{
		{
			name:       "all healthy",
			checks:     map[string]Pinger{"database": fakePinger{}, "rabbitmq": fakePinger{}},
			wantStatus: http.StatusOK,
			wantChecks: map[string]interface{}{"database": "ok", "rabbitmq": "ok"},
		},
		{
			name:       "database down",
			checks:     map[string]Pinger{"database": fakePinger{err: errors.New("timeout")}},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]interface{}{"database": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, newTestMux(nil, tt.checks), "/health")
			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantChecks, body["checks"])
		})
	}
}
