package tracking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/server"
)

// Handler handles the public JSON API
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new tracking handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the public API on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/order/{id}/status/{$}", h.GetOrderStatus)
	mux.HandleFunc("GET /api/restaurant/{id}/menu/{$}", h.GetRestaurantMenu)
	mux.HandleFunc("GET /health", h.HealthCheck)
}

type menuItemResponse struct {
	ItemID      int    `json:"item_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// GetOrderStatus handles GET /api/order/{id}/status/
func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusNotFound, "Order not found")
		return
	}

	h.logger.Debug("request_received", "Get order status request", requestID, map[string]interface{}{
		"order_id": id,
		"endpoint": "status",
	})

	status, err := h.service.GetOrderStatus(r.Context(), id)
	if err != nil {
		h.fail(w, requestID, "Order not found", err, map[string]interface{}{"order_id": id})
		return
	}

	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"order_id":        status.OrderID,
		"status":          status.Status,
		"total_amount":    status.TotalAmount.StringFixed(2),
		"delivery_person": status.DeliveryPersonName,
	})
}

// GetRestaurantMenu handles GET /api/restaurant/{id}/menu/
func (h *Handler) GetRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	items, err := h.service.GetRestaurantMenu(r.Context(), id)
	if err != nil {
		h.fail(w, requestID, "Restaurant not found", err, map[string]interface{}{"restaurant_id": id})
		return
	}

	menu := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		menu = append(menu, menuItemResponse{
			ItemID:      item.ID,
			Name:        item.Name,
			Price:       item.Price.StringFixed(2),
			Category:    string(item.Category),
			Description: item.Description,
		})
	}

	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"menu_items": menu,
	})
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy, checks := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "web-service",
		"healthy":   healthy,
		"checks":    checks,
	}

	statusCode := http.StatusOK
	if !healthy {
		statusCode = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	server.WriteJSON(w, statusCode, response)
}

func (h *Handler) fail(w http.ResponseWriter, requestID, notFound string, err error, fields map[string]interface{}) {
	if errors.Is(err, models.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, notFound)
		return
	}
	h.logger.Error("db_query_failed", "Public API lookup failed", requestID, err, fields)
	writeFailure(w, http.StatusInternalServerError, "Internal server error")
}

func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	server.WriteJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// pathID parses the {id} segment; anything but a positive integer matches
// no record
func pathID(r *http.Request) (int, bool) {
	return models.ParseID(r.PathValue("id"))
}
