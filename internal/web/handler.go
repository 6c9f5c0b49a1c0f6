// Package web renders the server-side HTML pages: the dashboard, restaurant
// and order browsing, customers and the analytics reports.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/services/analytics"
)

//go:embed templates/*.html
var templateFS embed.FS

// Reports provides the aggregated views
type Reports interface {
	Dashboard(ctx context.Context) (*analytics.Dashboard, error)
	Report(ctx context.Context) (*analytics.Report, error)
	RestaurantSummaries(ctx context.Context) ([]models.RestaurantSummary, error)
	CustomerSummaries(ctx context.Context) ([]models.CustomerSummary, error)
}

// Restaurants provides a restaurant and its available menu
type Restaurants interface {
	GetRestaurant(ctx context.Context, id int) (*models.Restaurant, error)
	RestaurantMenu(ctx context.Context, restaurantID int) ([]models.MenuItem, error)
}

// Orders lists and loads orders
type Orders interface {
	ListOrders(ctx context.Context, rawStatus string, limit int) ([]models.OrderView, error)
	GetOrder(ctx context.Context, id int) (*models.OrderView, error)
}

// Handler serves the HTML pages
type Handler struct {
	reports     Reports
	restaurants Restaurants
	orders      Orders
	pages       map[string]*template.Template
	logger      *logger.Logger
}

var pageNames = []string{
	"dashboard", "restaurants", "restaurant_detail", "orders", "order_detail", "customers", "analytics", "error",
}

// NewHandler parses the embedded templates and creates the page handler
func NewHandler(reports Reports, restaurants Restaurants, orders Orders, log *logger.Logger) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Handler{
		reports:     reports,
		restaurants: restaurants,
		orders:      orders,
		pages:       pages,
		logger:      log,
	}, nil
}

// RegisterRoutes mounts the pages on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /restaurants/{$}", h.RestaurantList)
	mux.HandleFunc("GET /restaurants/{id}/{$}", h.RestaurantDetail)
	mux.HandleFunc("GET /orders/{$}", h.OrderList)
	mux.HandleFunc("GET /orders/{id}/{$}", h.OrderDetail)
	mux.HandleFunc("GET /customers/{$}", h.CustomerList)
	mux.HandleFunc("GET /analytics/{$}", h.Analytics)
}

// Dashboard handles GET /
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "dashboard", d)
}

// RestaurantList handles GET /restaurants/
func (h *Handler) RestaurantList(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.reports.RestaurantSummaries(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "restaurants", restaurants)
}

// RestaurantDetail handles GET /restaurants/{id}/
func (h *Handler) RestaurantDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderError(w, r, models.ErrNotFound)
		return
	}

	restaurant, err := h.restaurants.GetRestaurant(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	items, err := h.restaurants.RestaurantMenu(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "restaurant_detail", struct {
		Restaurant *models.Restaurant
		MenuItems  []models.MenuItem
	}{restaurant, items})
}

// OrderList handles GET /orders/?status=
func (h *Handler) OrderList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	orders, err := h.orders.ListOrders(r.Context(), status, 0)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "orders", struct {
		Orders   []models.OrderView
		Statuses []models.OrderStatus
		Selected models.OrderStatus
	}{orders, models.OrderStatuses, models.OrderStatus(status)})
}

// OrderDetail handles GET /orders/{id}/
func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderError(w, r, models.ErrNotFound)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "order_detail", order)
}

// CustomerList handles GET /customers/
func (h *Handler) CustomerList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.reports.CustomerSummaries(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "customers", customers)
}

// Analytics handles GET /analytics/
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Report(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "analytics", report)
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("template_render_failed", "Failed to render "+page, logger.RequestIDFromContext(r.Context()), err, nil)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusInternalServerError
		page   = struct{ Title, Message string }{"Something went wrong", "Please try again later."}
		ve     models.ValidationError
	)

	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		page.Title, page.Message = "Not found", "The page you requested does not exist."
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		page.Title, page.Message = "Bad request", ve.Error()
	default:
		h.logger.Error("page_failed", "Failed to build page", logger.RequestIDFromContext(r.Context()), err, map[string]interface{}{
			"path": r.URL.Path,
		})
	}

	h.render(w, r, status, "error", page)
}

func pathID(r *http.Request) (int, bool) {
	return models.ParseID(r.PathValue("id"))
}
