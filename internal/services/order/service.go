// Package order owns the order ledger: creating orders with their line
// items, moving orders through their statuses and keeping line items and
// totals in line.
package order

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// Store is the persistence the order service needs
type Store interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderView, error)
	GetOrder(ctx context.Context, id int) (*models.OrderView, error)
	ListOrders(ctx context.Context, status models.OrderStatus, limit int) ([]models.OrderView, error)
	SearchOrders(ctx context.Context, params url.Values) ([]models.OrderView, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (models.OrderStatus, error)
	AssignCourier(ctx context.Context, id int, deliveryPersonID *int) error
	AddItem(ctx context.Context, orderID int, req models.OrderItemRequest) (*models.OrderItem, error)
	UpdateItemQuantity(ctx context.Context, itemID, quantity int) (*models.OrderItem, error)
	DeleteItem(ctx context.Context, itemID int) error
	RecalculateTotal(ctx context.Context, orderID int) (decimal.Decimal, error)
	DeleteOrder(ctx context.Context, id int) error
}

// Notifier publishes order status changes
type Notifier interface {
	PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error
}

type Service struct {
	store    Store
	notifier Notifier
	logger   *logger.Logger
}

// NewService creates the order service. notifier may be nil, in which case
// status changes are not published.
func NewService(store Store, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderView, error) {
	requestID := logger.RequestIDFromContext(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.store.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"items":        len(order.Items),
		"total_amount": order.TotalAmount.StringFixed(2),
	})
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int) (*models.OrderView, error) {
	return s.store.GetOrder(ctx, id)
}

// ListOrders returns orders newest first, optionally restricted to one
// status given in its raw form. The match is exact, so a value that is not
// a known status matches no order.
func (s *Service) ListOrders(ctx context.Context, rawStatus string, limit int) ([]models.OrderView, error) {
	var status models.OrderStatus
	if rawStatus != "" {
		parsed, err := models.ParseOrderStatus(rawStatus)
		if err != nil {
			return []models.OrderView{}, nil
		}
		status = parsed
	}
	return s.store.ListOrders(ctx, status, limit)
}

func (s *Service) SearchOrders(ctx context.Context, params url.Values) ([]models.OrderView, error) {
	return s.store.SearchOrders(ctx, params)
}

// UpdateStatus moves the order to a new status. The change is published
// after it is committed; a publish failure does not undo it.
func (s *Service) UpdateStatus(ctx context.Context, id int, req *models.UpdateStatusRequest) (*models.StatusUpdateMessage, error) {
	requestID := logger.RequestIDFromContext(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	old, err := s.store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	msg := models.CreateStatusUpdateMessage(id, old, req.Status, req.ChangedBy)
	s.logger.Info("order_status_updated", fmt.Sprintf("Order %d: %s -> %s", id, old, req.Status), requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": old,
		"new_status": req.Status,
		"changed_by": req.ChangedBy,
	})

	if old == req.Status || s.notifier == nil {
		return msg, nil
	}
	if err := s.notifier.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"order_id": id,
		})
	}
	return msg, nil
}

func (s *Service) AssignCourier(ctx context.Context, id int, req *models.AssignCourierRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.store.AssignCourier(ctx, id, req.DeliveryPersonID)
}

func (s *Service) AddItem(ctx context.Context, orderID int, req models.OrderItemRequest) (*models.OrderItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.AddItem(ctx, orderID, req)
}

func (s *Service) UpdateItemQuantity(ctx context.Context, itemID int, req *models.UpdateQuantityRequest) (*models.OrderItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateItemQuantity(ctx, itemID, req.Quantity)
}

func (s *Service) DeleteItem(ctx context.Context, itemID int) error {
	return s.store.DeleteItem(ctx, itemID)
}

// RecalculateTotal reconciles the stored total with the line items. It is
// never run implicitly.
func (s *Service) RecalculateTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	total, err := s.store.RecalculateTotal(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	s.logger.Info("order_total_recalculated", "Order total recalculated", logger.RequestIDFromContext(ctx), map[string]interface{}{
		"order_id":     orderID,
		"total_amount": total.StringFixed(2),
	})
	return total, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order_deleted", "Order deleted", logger.RequestIDFromContext(ctx), map[string]interface{}{
		"order_id": id,
	})
	return nil
}
