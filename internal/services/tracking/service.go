// Package tracking serves the public JSON API: order status lookups,
// restaurant menus and the health check.
package tracking

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"food-delivery/internal/database"
	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// OrderStatus is the public view of an order's progress
type OrderStatus struct {
	OrderID            int
	Status             models.OrderStatus
	TotalAmount        decimal.Decimal
	DeliveryPersonName *string
}

// Repository reads order status rows from PostgreSQL
type Repository struct {
	db database.Querier
}

func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetOrderStatus(ctx context.Context, orderID int) (*OrderStatus, error) {
	var s OrderStatus
	err := r.db.QueryRow(ctx, database.GetOrderStatusSQL, orderID).
		Scan(&s.OrderID, &s.Status, &s.TotalAmount, &s.DeliveryPersonName)
	if err != nil {
		return nil, fmt.Errorf("get status of order %d: %w", orderID, database.TranslateError(err))
	}
	return &s, nil
}

// Service provides tracking functionality
type Service struct {
	statuses StatusRepo
	menus    MenuRepo
	checks   map[string]Pinger
	logger   *logger.Logger
}

// NewService creates a new tracking service. checks names the dependencies
// reported by HealthCheck.
func NewService(statuses StatusRepo, menus MenuRepo, checks map[string]Pinger, log *logger.Logger) *Service {
	return &Service{
		statuses: statuses,
		menus:    menus,
		checks:   checks,
		logger:   log,
	}
}

// GetOrderStatus retrieves the current status of an order
func (s *Service) GetOrderStatus(ctx context.Context, orderID int) (*OrderStatus, error) {
	return s.statuses.GetOrderStatus(ctx, orderID)
}

// GetRestaurantMenu retrieves the available menu items of a restaurant
func (s *Service) GetRestaurantMenu(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	return s.menus.ListAvailableMenuItems(ctx, restaurantID)
}

// HealthCheck pings every dependency and reports each result
func (s *Service) HealthCheck(ctx context.Context) (bool, map[string]string) {
	healthy := true
	results := make(map[string]string, len(s.checks))
	for name, p := range s.checks {
		if err := p.Ping(ctx); err != nil {
			s.logger.Error("health_check_failed", name+" ping failed", logger.RequestIDFromContext(ctx), err, nil)
			results[name] = "unavailable"
			healthy = false
			continue
		}
		results[name] = "ok"
	}
	return healthy, results
}
