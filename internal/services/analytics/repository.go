package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"food-delivery/internal/database"
	"food-delivery/internal/models"
)

// Repository runs the reporting queries. Every report is a single grouped
// query; nothing is cached.
type Repository struct {
	db database.Querier
}

func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountCustomers(ctx context.Context) (int, error) {
	return r.count(ctx, "customers", database.CountCustomersSQL)
}

func (r *Repository) CountRestaurants(ctx context.Context) (int, error) {
	return r.count(ctx, "restaurants", database.CountRestaurantsSQL)
}

func (r *Repository) CountOrders(ctx context.Context) (int, error) {
	return r.count(ctx, "orders", database.CountOrdersSQL)
}

func (r *Repository) CountMenuItems(ctx context.Context) (int, error) {
	return r.count(ctx, "menu items", database.CountMenuItemsSQL)
}

// ActiveOrderCount counts orders that are neither delivered nor cancelled
func (r *Repository) ActiveOrderCount(ctx context.Context) (int, error) {
	inactive := make([]string, len(models.InactiveStatuses))
	for i, s := range models.InactiveStatuses {
		inactive[i] = string(s)
	}
	return r.count(ctx, "active orders", database.ActiveOrderCountSQL, inactive)
}

func (r *Repository) count(ctx context.Context, what, sql string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

// CustomerSummaries returns every customer with their order count and total
// spend; customers without orders have an invalid (NULL) spend
func (r *Repository) CustomerSummaries(ctx context.Context) ([]models.CustomerSummary, error) {
	return collect(ctx, r.db, "customer summaries", database.CustomerSummariesSQL, nil,
		func(rows pgx.Rows) (models.CustomerSummary, error) {
			var s models.CustomerSummary
			err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.OrderCount, &s.TotalSpent)
			return s, err
		})
}

// RestaurantSummaries returns every restaurant by rating with its order
// count, revenue and average order amount
func (r *Repository) RestaurantSummaries(ctx context.Context) ([]models.RestaurantSummary, error) {
	return collect(ctx, r.db, "restaurant summaries", database.RestaurantSummariesSQL, nil,
		func(rows pgx.Rows) (models.RestaurantSummary, error) {
			var s models.RestaurantSummary
			err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.CuisineType, &s.Rating,
				&s.OrderCount, &s.TotalRevenue, &s.AverageAmount)
			return s, err
		})
}

// StatusSummaries groups orders by status, most frequent first
func (r *Repository) StatusSummaries(ctx context.Context) ([]models.StatusSummary, error) {
	return collect(ctx, r.db, "status summaries", database.StatusSummariesSQL, nil,
		func(rows pgx.Rows) (models.StatusSummary, error) {
			var s models.StatusSummary
			err := rows.Scan(&s.Status, &s.OrderCount, &s.TotalAmount)
			return s, err
		})
}

// PopularItems returns the menu items appearing on the most order lines
func (r *Repository) PopularItems(ctx context.Context, limit int) ([]models.PopularItem, error) {
	return collect(ctx, r.db, "popular items", database.PopularItemsSQL, []any{limit},
		func(rows pgx.Rows) (models.PopularItem, error) {
			var p models.PopularItem
			err := rows.Scan(&p.MenuItemID, &p.Name, &p.RestaurantName, &p.TimesOrdered, &p.TotalQuantity)
			return p, err
		})
}

// CourierSummaries returns every delivery person with assigned and delivered
// order counts, busiest first
func (r *Repository) CourierSummaries(ctx context.Context) ([]models.CourierSummary, error) {
	return collect(ctx, r.db, "courier summaries", database.CourierSummariesSQL, nil,
		func(rows pgx.Rows) (models.CourierSummary, error) {
			var s models.CourierSummary
			err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.VehicleType, &s.IsAvailable, &s.TotalOrders, &s.DeliveredOrders)
			return s, err
		})
}

func collect[T any](ctx context.Context, db database.Querier, what, sql string, args []any, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}
