package catalog

import (
	"context"
	"net/http"
	"net/url"

	"food-delivery/internal/admin"
	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/server"
)

// Handler exposes the catalog through the admin JSON API
type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// resource binds one admin model to its service operations
type resource[In any, Out any] struct {
	model  admin.Model
	create func(context.Context, In) (*Out, error)
	get    func(context.Context, int) (*Out, error)
	update func(context.Context, int, In) (*Out, error)
	remove func(context.Context, int) error
	list   func(context.Context, url.Values) ([]Out, error)
	toggle func(context.Context, int, bool) error
}

// RegisterRoutes mounts the catalog admin endpoints on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/{$}", h.Index)

	register(mux, h, resource[models.CustomerInput, models.Customer]{
		model:  admin.Customers,
		create: h.service.CreateCustomer,
		get:    h.service.GetCustomer,
		update: h.service.UpdateCustomer,
		remove: h.service.DeleteCustomer,
		list:   h.service.ListCustomers,
	})
	register(mux, h, resource[models.RestaurantInput, models.Restaurant]{
		model:  admin.Restaurants,
		create: h.service.CreateRestaurant,
		get:    h.service.GetRestaurant,
		update: h.service.UpdateRestaurant,
		remove: h.service.DeleteRestaurant,
		list:   h.service.ListRestaurants,
	})
	register(mux, h, resource[models.MenuItemInput, models.MenuItem]{
		model:  admin.MenuItems,
		create: h.service.CreateMenuItem,
		get:    h.service.GetMenuItem,
		update: h.service.UpdateMenuItem,
		remove: h.service.DeleteMenuItem,
		list:   h.service.ListMenuItems,
		toggle: h.service.SetMenuItemAvailability,
	})
	register(mux, h, resource[models.DeliveryPersonInput, models.DeliveryPerson]{
		model:  admin.DeliveryPersonnel,
		create: h.service.CreateDeliveryPerson,
		get:    h.service.GetDeliveryPerson,
		update: h.service.UpdateDeliveryPerson,
		remove: h.service.DeleteDeliveryPerson,
		list:   h.service.ListDeliveryPersonnel,
		toggle: h.service.SetDeliveryPersonAvailability,
	})
}

// Index handles GET /admin/ and describes every registered model
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"models": admin.Registry,
	})
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

func register[In any, Out any](mux *http.ServeMux, h *Handler, res resource[In, Out]) {
	collection := "/admin/" + res.model.Path + "/{$}"
	item := "/admin/" + res.model.Path + "/{id}/{$}"
	action := res.model.Path

	mux.HandleFunc("GET "+collection, func(w http.ResponseWriter, r *http.Request) {
		records, err := res.list(r.Context(), r.URL.Query())
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_list_failed", err)
			return
		}
		server.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"model":   res.model.Name,
			"count":   len(records),
			"results": records,
		})
	})

	mux.HandleFunc("POST "+collection, func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := server.DecodeJSON(r, &in); err != nil {
			server.HandleError(w, r, h.logger, action+"_create_failed", err)
			return
		}
		record, err := res.create(r.Context(), in)
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_create_failed", err)
			return
		}
		server.WriteJSON(w, http.StatusCreated, record)
	})

	mux.HandleFunc("GET "+item, func(w http.ResponseWriter, r *http.Request) {
		id, err := server.PathID(r, "id")
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_get_failed", err)
			return
		}
		record, err := res.get(r.Context(), id)
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_get_failed", err)
			return
		}
		server.WriteJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("PUT "+item, func(w http.ResponseWriter, r *http.Request) {
		id, err := server.PathID(r, "id")
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_update_failed", err)
			return
		}
		var in In
		if err := server.DecodeJSON(r, &in); err != nil {
			server.HandleError(w, r, h.logger, action+"_update_failed", err)
			return
		}
		record, err := res.update(r.Context(), id, in)
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_update_failed", err)
			return
		}
		server.WriteJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("DELETE "+item, func(w http.ResponseWriter, r *http.Request) {
		id, err := server.PathID(r, "id")
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_delete_failed", err)
			return
		}
		if err := res.remove(r.Context(), id); err != nil {
			server.HandleError(w, r, h.logger, action+"_delete_failed", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if res.toggle == nil {
		return
	}

	mux.HandleFunc("PATCH /admin/"+res.model.Path+"/{id}/availability/{$}", func(w http.ResponseWriter, r *http.Request) {
		id, err := server.PathID(r, "id")
		if err != nil {
			server.HandleError(w, r, h.logger, action+"_toggle_failed", err)
			return
		}
		var req availabilityRequest
		if err := server.DecodeJSON(r, &req); err != nil {
			server.HandleError(w, r, h.logger, action+"_toggle_failed", err)
			return
		}
		if req.IsAvailable == nil {
			server.HandleError(w, r, h.logger, action+"_toggle_failed",
				models.ValidationError{Field: "is_available", Message: "is_available is required"})
			return
		}
		if err := res.toggle(r.Context(), id, *req.IsAvailable); err != nil {
			server.HandleError(w, r, h.logger, action+"_toggle_failed", err)
			return
		}
		server.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"id":           id,
			"is_available": *req.IsAvailable,
		})
	})
}
