package order

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/models"
)

func newTestMux(store *fakeStore, notifier Notifier) *http.ServeMux {
	log := testLogger()
	mux := http.NewServeMux()
	NewHandler(NewService(store, notifier, log), log).RegisterRoutes(mux)
	return mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestOrderEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{
			name:       "create",
			method:     http.MethodPost,
			target:     "/admin/orders/",
			body:       `{"customer_id":1,"restaurant_id":1,"items":[{"menu_item_id":7,"quantity":3}]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "create with zero quantity",
			method:     http.MethodPost,
			target:     "/admin/orders/",
			body:       `{"customer_id":1,"restaurant_id":1,"items":[{"menu_item_id":7,"quantity":0}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "create with negative total",
			method:     http.MethodPost,
			target:     "/admin/orders/",
			body:       `{"customer_id":1,"restaurant_id":1,"total_amount":"-1","items":[{"menu_item_id":7,"quantity":1}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{name: "get", method: http.MethodGet, target: "/admin/orders/1/", wantStatus: http.StatusOK},
		{name: "get missing", method: http.MethodGet, target: "/admin/orders/2/", wantStatus: http.StatusNotFound},
		{name: "list", method: http.MethodGet, target: "/admin/orders/?status=Pending", wantStatus: http.StatusOK},
		{name: "status update", method: http.MethodPatch, target: "/admin/orders/1/status/", body: `{"status":"Preparing"}`, wantStatus: http.StatusOK},
		{name: "invalid status", method: http.MethodPatch, target: "/admin/orders/1/status/", body: `{"status":"Teleported"}`, wantStatus: http.StatusBadRequest},
		{name: "clear courier", method: http.MethodPatch, target: "/admin/orders/1/courier/", body: `{"delivery_person_id":null}`, wantStatus: http.StatusOK},
		{name: "add item", method: http.MethodPost, target: "/admin/orders/1/items/", body: `{"menu_item_id":8,"quantity":1}`, wantStatus: http.StatusCreated},
		{name: "add item to missing order", method: http.MethodPost, target: "/admin/orders/5/items/", body: `{"menu_item_id":8,"quantity":1}`, wantStatus: http.StatusNotFound},
		{name: "update quantity", method: http.MethodPatch, target: "/admin/order-items/1/", body: `{"quantity":2}`, wantStatus: http.StatusOK},
		{name: "delete missing item", method: http.MethodDelete, target: "/admin/order-items/9/", wantStatus: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, target: "/admin/orders/1/", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestMux(newFakeStore(), &fakeNotifier{}), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestStatusEndpointPublishesEvent(t *testing.T) {
	notifier := &fakeNotifier{}
	rec := serve(newTestMux(newFakeStore(), notifier), http.MethodPatch, "/admin/orders/1/status/",
		`{"status":"Out for Delivery","changed_by":"dispatcher"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, notifier.published, 1)
	assert.Equal(t, "Out for Delivery", notifier.published[0].NewStatus)
	assert.Equal(t, "dispatcher", notifier.published[0].ChangedBy)

	var msg models.StatusUpdateMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Pending", msg.OldStatus)
}

func TestRecalculateEndpoint(t *testing.T) {
	rec := serve(newTestMux(newFakeStore(), nil), http.MethodPost, "/admin/orders/1/recalculate/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "450.00", body["total_amount"])
}

func TestAddItemResponseCarriesSubtotal(t *testing.T) {
	rec := serve(newTestMux(newFakeStore(), nil), http.MethodPost, "/admin/orders/1/items/", `{"menu_item_id":8,"quantity":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "200.00", body["item_price"])
	assert.Equal(t, "600.00", body["subtotal"])
}
