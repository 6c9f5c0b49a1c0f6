package order

import (
	"context"
	"net/http"
	"time"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/server"
)

// writeTimeout bounds every write operation of the order admin API
const writeTimeout = 30 * time.Second

// Handler handles the order endpoints of the admin API
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the order admin endpoints on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/orders/{$}", h.ListOrders)
	mux.HandleFunc("POST /admin/orders/{$}", h.CreateOrder)
	mux.HandleFunc("GET /admin/orders/{id}/{$}", h.GetOrder)
	mux.HandleFunc("DELETE /admin/orders/{id}/{$}", h.DeleteOrder)
	mux.HandleFunc("PATCH /admin/orders/{id}/status/{$}", h.UpdateStatus)
	mux.HandleFunc("PATCH /admin/orders/{id}/courier/{$}", h.AssignCourier)
	mux.HandleFunc("POST /admin/orders/{id}/items/{$}", h.AddItem)
	mux.HandleFunc("POST /admin/orders/{id}/recalculate/{$}", h.RecalculateTotal)
	mux.HandleFunc("PATCH /admin/order-items/{id}/{$}", h.UpdateItemQuantity)
	mux.HandleFunc("DELETE /admin/order-items/{id}/{$}", h.DeleteItem)
}

// CreateOrder handles POST /admin/orders/
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("order_received", "Received order creation request", logger.RequestIDFromContext(r.Context()), map[string]interface{}{
		"content_length": r.ContentLength,
		"remote_addr":    r.RemoteAddr,
	})

	var req models.CreateOrderRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.HandleError(w, r, h.logger, "validation_failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	order, err := h.service.CreateOrder(ctx, &req)
	if err != nil {
		server.HandleError(w, r, h.logger, "order_creation_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /admin/orders/?q=&status=&restaurant_id=&customer_id=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.SearchOrders(r.Context(), r.URL.Query())
	if err != nil {
		server.HandleError(w, r, h.logger, "order_list_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"model":   "Order",
		"count":   len(orders),
		"results": orders,
	})
}

// GetOrder handles GET /admin/orders/{id}/
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "order_get_failed", err)
		return
	}
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		server.HandleError(w, r, h.logger, "order_get_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /admin/orders/{id}/
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "order_delete_failed", err)
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		server.HandleError(w, r, h.logger, "order_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PATCH /admin/orders/{id}/status/
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "status_update_failed", err)
		return
	}

	var req models.UpdateStatusRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.HandleError(w, r, h.logger, "status_update_failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	msg, err := h.service.UpdateStatus(ctx, id, &req)
	if err != nil {
		server.HandleError(w, r, h.logger, "status_update_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, msg)
}

// AssignCourier handles PATCH /admin/orders/{id}/courier/
func (h *Handler) AssignCourier(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "courier_assign_failed", err)
		return
	}

	var req models.AssignCourierRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.HandleError(w, r, h.logger, "courier_assign_failed", err)
		return
	}

	if err := h.service.AssignCourier(r.Context(), id, &req); err != nil {
		server.HandleError(w, r, h.logger, "courier_assign_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"order_id":           id,
		"delivery_person_id": req.DeliveryPersonID,
	})
}

// AddItem handles POST /admin/orders/{id}/items/
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "order_item_add_failed", err)
		return
	}

	var req models.OrderItemRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.HandleError(w, r, h.logger, "order_item_add_failed", err)
		return
	}

	item, err := h.service.AddItem(r.Context(), id, req)
	if err != nil {
		server.HandleError(w, r, h.logger, "order_item_add_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, itemResponse(item))
}

// UpdateItemQuantity handles PATCH /admin/order-items/{id}/
func (h *Handler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "order_item_update_failed", err)
		return
	}

	var req models.UpdateQuantityRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.HandleError(w, r, h.logger, "order_item_update_failed", err)
		return
	}

	item, err := h.service.UpdateItemQuantity(r.Context(), id, &req)
	if err != nil {
		server.HandleError(w, r, h.logger, "order_item_update_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, itemResponse(item))
}

// DeleteItem handles DELETE /admin/order-items/{id}/
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "order_item_delete_failed", err)
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		server.HandleError(w, r, h.logger, "order_item_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateTotal handles POST /admin/orders/{id}/recalculate/
func (h *Handler) RecalculateTotal(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathID(r, "id")
	if err != nil {
		server.HandleError(w, r, h.logger, "order_recalculate_failed", err)
		return
	}

	total, err := h.service.RecalculateTotal(r.Context(), id)
	if err != nil {
		server.HandleError(w, r, h.logger, "order_recalculate_failed", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"order_id":     id,
		"total_amount": total.StringFixed(2),
	})
}

// itemResponse adds the derived subtotal to a line item
func itemResponse(item *models.OrderItem) map[string]interface{} {
	return map[string]interface{}{
		"order_item_id": item.ID,
		"order_id":      item.OrderID,
		"menu_item_id":  item.MenuItemID,
		"quantity":      item.Quantity,
		"item_price":    item.ItemPrice.StringFixed(2),
		"subtotal":      item.Subtotal().StringFixed(2),
	}
}
