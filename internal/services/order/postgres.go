package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"food-delivery/internal/admin"
	"food-delivery/internal/database"
	"food-delivery/internal/models"
)

// Repository persists orders and their line items
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder writes the order and all of its items in one transaction.
// Missing item prices are copied from the menu and a missing total is
// derived from the resulting items.
func (r *Repository) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderView, error) {
	var orderID int

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		address := req.DeliveryAddress
		if address == "" {
			err := tx.QueryRow(ctx, database.GetCustomerAddressSQL, req.CustomerID).Scan(&address)
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ValidationError{Field: "customer_id", Message: "customer does not exist"}
			}
			if err != nil {
				return fmt.Errorf("get customer address: %w", err)
			}
		}

		items, err := priceItems(req.Items, func(menuItemID int) (decimal.Decimal, error) {
			return menuPrice(ctx, tx, menuItemID)
		})
		if err != nil {
			return err
		}

		total := models.CalculateTotal(items)
		if req.TotalAmount != nil {
			total = *req.TotalAmount
		}
		if err := models.ValidateTotalAmount(total); err != nil {
			return err
		}

		var order models.Order
		err = tx.QueryRow(ctx, database.InsertOrderSQL,
			req.CustomerID, req.RestaurantID, req.DeliveryPersonID, address, total).
			Scan(&order.ID, &order.OrderDate, &order.Status)
		if err != nil {
			return fmt.Errorf("insert order: %w", database.TranslateError(err))
		}

		for _, item := range items {
			if _, err := tx.Exec(ctx, database.InsertOrderItemSQL,
				order.ID, item.MenuItemID, item.Quantity, item.ItemPrice); err != nil {
				return fmt.Errorf("insert order item: %w", database.TranslateError(err))
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetOrder(ctx, orderID)
}

// priceItems turns requested items into order items, resolving each price
// through lookup when the caller did not provide one
func priceItems(reqs []models.OrderItemRequest, lookup func(menuItemID int) (decimal.Decimal, error)) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	for i, req := range reqs {
		current, err := lookup(req.MenuItemID)
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ValidationError{
				Field:   fmt.Sprintf("items[%d].menu_item_id", i),
				Message: "menu item does not exist",
			}
		}
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			MenuItemID: req.MenuItemID,
			Quantity:   req.Quantity,
			ItemPrice:  models.ResolveItemPrice(req.ItemPrice, current),
		})
	}
	return items, nil
}

func menuPrice(ctx context.Context, q database.Querier, menuItemID int) (decimal.Decimal, error) {
	var price decimal.Decimal
	if err := q.QueryRow(ctx, database.GetMenuItemPriceSQL, menuItemID).Scan(&price); err != nil {
		return decimal.Zero, fmt.Errorf("get price of menu item %d: %w", menuItemID, database.TranslateError(err))
	}
	return price, nil
}

// GetOrder returns the order with its names resolved and its line items
func (r *Repository) GetOrder(ctx context.Context, id int) (*models.OrderView, error) {
	order, err := scanOrderView(r.db.QueryRow(ctx, database.GetOrderViewSQL, id))
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, database.TranslateError(err))
	}

	rows, err := r.db.Query(ctx, database.ListOrderItemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("list items of order %d: %w", id, err)
	}
	defer rows.Close()

	order.Items = []models.OrderItemView{}
	for rows.Next() {
		var item models.OrderItemView
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.ItemPrice, &item.MenuItemName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items of order %d: %w", id, err)
	}
	return &order, nil
}

// ListOrders returns orders newest first. An empty status returns every
// order; a limit of 0 means no limit.
func (r *Repository) ListOrders(ctx context.Context, status models.OrderStatus, limit int) ([]models.OrderView, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersSQL, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrderViews(rows)
}

// SearchOrders backs the admin order list: free-text search over customer
// and restaurant names plus the admin filters
func (r *Repository) SearchOrders(ctx context.Context, params url.Values) ([]models.OrderView, error) {
	sql, args, err := admin.Orders.ListQuery(database.ListOrderViewsSQL, params)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	return collectOrderViews(rows)
}

// UpdateStatus sets the order status and returns the previous one
func (r *Repository) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (models.OrderStatus, error) {
	var old models.OrderStatus
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, database.LockOrderStatusSQL, id).Scan(&old); err != nil {
			return fmt.Errorf("lock order %d: %w", id, database.TranslateError(err))
		}
		if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, status, id); err != nil {
			return fmt.Errorf("update status of order %d: %w", id, database.TranslateError(err))
		}
		return nil
	})
	return old, err
}

// AssignCourier sets or, with a nil id, clears the delivery person
func (r *Repository) AssignCourier(ctx context.Context, id int, deliveryPersonID *int) error {
	tag, err := r.db.Exec(ctx, database.UpdateOrderCourierSQL, deliveryPersonID, id)
	if err != nil {
		return fmt.Errorf("assign courier to order %d: %w", id, database.TranslateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// AddItem appends a line item to an existing order. The order total is left
// untouched.
func (r *Repository) AddItem(ctx context.Context, orderID int, req models.OrderItemRequest) (*models.OrderItem, error) {
	item := models.OrderItem{OrderID: orderID, MenuItemID: req.MenuItemID, Quantity: req.Quantity}

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, database.OrderExistsSQL, orderID).Scan(&exists); err != nil {
			return fmt.Errorf("check order %d: %w", orderID, err)
		}
		if !exists {
			return fmt.Errorf("order %d: %w", orderID, models.ErrNotFound)
		}

		priced, err := priceItems([]models.OrderItemRequest{req}, func(menuItemID int) (decimal.Decimal, error) {
			return menuPrice(ctx, tx, menuItemID)
		})
		if err != nil {
			return err
		}
		item.ItemPrice = priced[0].ItemPrice

		err = tx.QueryRow(ctx, database.InsertOrderItemSQL, orderID, item.MenuItemID, item.Quantity, item.ItemPrice).
			Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", database.TranslateError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity changes the quantity of a line item; its price is kept
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID, quantity int) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.QueryRow(ctx, database.UpdateOrderItemQuantitySQL, quantity, itemID).
		Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.ItemPrice)
	if err != nil {
		return nil, fmt.Errorf("update order item %d: %w", itemID, database.TranslateError(err))
	}
	return &item, nil
}

func (r *Repository) DeleteItem(ctx context.Context, itemID int) error {
	tag, err := r.db.Exec(ctx, database.DeleteOrderItemSQL, itemID)
	if err != nil {
		return fmt.Errorf("delete order item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order item %d: %w", itemID, models.ErrNotFound)
	}
	return nil
}

// RecalculateTotal overwrites the order total with the sum of its item
// subtotals and returns the new total
func (r *Repository) RecalculateTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, database.RecalculateOrderTotalSQL, orderID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("recalculate total of order %d: %w", orderID, database.TranslateError(err))
	}
	return total, nil
}

// DeleteOrder removes the order and, through the foreign key, its items
func (r *Repository) DeleteOrder(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, database.DeleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func scanOrderView(row pgx.Row) (models.OrderView, error) {
	var o models.OrderView
	err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.DeliveryPersonID, &o.OrderDate,
		&o.Status, &o.DeliveryAddress, &o.TotalAmount,
		&o.CustomerName, &o.RestaurantName, &o.DeliveryPersonName)
	return o, err
}

func collectOrderViews(rows pgx.Rows) ([]models.OrderView, error) {
	defer rows.Close()

	orders := []models.OrderView{}
	for rows.Next() {
		o, err := scanOrderView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
