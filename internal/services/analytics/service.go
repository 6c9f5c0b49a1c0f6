// Package analytics derives the dashboard counts and the reporting
// aggregates from the order ledger.
package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"food-delivery/internal/models"
)

const (
	// PopularItemsLimit caps the popular items report
	PopularItemsLimit = 10
	// RecentOrdersLimit is the number of orders shown on the dashboard
	RecentOrdersLimit = 5
)

// Store runs the aggregate queries
type Store interface {
	CountCustomers(ctx context.Context) (int, error)
	CountRestaurants(ctx context.Context) (int, error)
	CountOrders(ctx context.Context) (int, error)
	CountMenuItems(ctx context.Context) (int, error)
	ActiveOrderCount(ctx context.Context) (int, error)
	CustomerSummaries(ctx context.Context) ([]models.CustomerSummary, error)
	RestaurantSummaries(ctx context.Context) ([]models.RestaurantSummary, error)
	StatusSummaries(ctx context.Context) ([]models.StatusSummary, error)
	PopularItems(ctx context.Context, limit int) ([]models.PopularItem, error)
	CourierSummaries(ctx context.Context) ([]models.CourierSummary, error)
}

// OrderLister lists orders newest first
type OrderLister interface {
	ListOrders(ctx context.Context, status models.OrderStatus, limit int) ([]models.OrderView, error)
}

// Dashboard is the landing page summary
type Dashboard struct {
	TotalCustomers   int
	TotalRestaurants int
	TotalOrders      int
	TotalMenuItems   int
	ActiveOrders     int
	RecentOrders     []models.OrderView
}

// Report gathers every aggregate shown on the analytics page
type Report struct {
	Restaurants []models.RestaurantSummary
	Customers   []models.CustomerSummary
	Statuses    []models.StatusSummary
	Popular     []models.PopularItem
	Couriers    []models.CourierSummary
}

type Service struct {
	store  Store
	orders OrderLister
}

func NewService(store Store, orders OrderLister) *Service {
	return &Service{store: store, orders: orders}
}

// Dashboard runs the independent counts concurrently
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	counts := []struct {
		dst *int
		fn  func(context.Context) (int, error)
	}{
		{&d.TotalCustomers, s.store.CountCustomers},
		{&d.TotalRestaurants, s.store.CountRestaurants},
		{&d.TotalOrders, s.store.CountOrders},
		{&d.TotalMenuItems, s.store.CountMenuItems},
		{&d.ActiveOrders, s.store.ActiveOrderCount},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.fn(ctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	g.Go(func() error {
		recent, err := s.orders.ListOrders(ctx, "", RecentOrdersLimit)
		if err != nil {
			return err
		}
		d.RecentOrders = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Report runs every aggregate concurrently
func (s *Service) Report(ctx context.Context) (*Report, error) {
	var r Report
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		r.Restaurants, err = s.store.RestaurantSummaries(ctx)
		return err
	})
	g.Go(func() (err error) {
		r.Customers, err = s.store.CustomerSummaries(ctx)
		return err
	})
	g.Go(func() (err error) {
		r.Statuses, err = s.store.StatusSummaries(ctx)
		return err
	})
	g.Go(func() (err error) {
		r.Popular, err = s.store.PopularItems(ctx, PopularItemsLimit)
		return err
	})
	g.Go(func() (err error) {
		r.Couriers, err = s.store.CourierSummaries(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) RestaurantSummaries(ctx context.Context) ([]models.RestaurantSummary, error) {
	return s.store.RestaurantSummaries(ctx)
}

func (s *Service) CustomerSummaries(ctx context.Context) ([]models.CustomerSummary, error) {
	return s.store.CustomerSummaries(ctx)
}
