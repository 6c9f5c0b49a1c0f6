package tracking

import (
	"context"

	"food-delivery/internal/models"
)

// StatusRepo reads the public status of an order
type StatusRepo interface {
	GetOrderStatus(ctx context.Context, orderID int) (*OrderStatus, error)
}

// MenuRepo lists the orderable items of a restaurant. It returns
// models.ErrNotFound when the restaurant does not exist.
type MenuRepo interface {
	ListAvailableMenuItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error)
}

// Pinger is a dependency whose liveness is reported by the health check
type Pinger interface {
	Ping(ctx context.Context) error
}
