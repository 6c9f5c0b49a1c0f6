// Package catalog manages the reference records orders point at: customers,
// restaurants with their menus, and delivery personnel.
package catalog

import (
	"context"
	"net/url"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// Store is the persistence the catalog service needs
type Store interface {
	CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id int) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int, in models.CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int) error
	ListCustomers(ctx context.Context, params url.Values) ([]models.Customer, error)

	CreateRestaurant(ctx context.Context, in models.RestaurantInput) (*models.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int, in models.RestaurantInput) (*models.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int) error
	ListRestaurants(ctx context.Context, params url.Values) ([]models.Restaurant, error)

	CreateMenuItem(ctx context.Context, in models.MenuItemInput) (*models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, in models.MenuItemInput) (*models.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, id int, available bool) error
	DeleteMenuItem(ctx context.Context, id int) error
	ListMenuItems(ctx context.Context, params url.Values) ([]models.MenuItem, error)
	ListAvailableMenuItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error)

	CreateDeliveryPerson(ctx context.Context, in models.DeliveryPersonInput) (*models.DeliveryPerson, error)
	GetDeliveryPerson(ctx context.Context, id int) (*models.DeliveryPerson, error)
	UpdateDeliveryPerson(ctx context.Context, id int, in models.DeliveryPersonInput) (*models.DeliveryPerson, error)
	SetDeliveryPersonAvailability(ctx context.Context, id int, available bool) error
	DeleteDeliveryPerson(ctx context.Context, id int) error
	ListDeliveryPersonnel(ctx context.Context, params url.Values) ([]models.DeliveryPerson, error)
}

// Service validates catalog writes before they reach the store
type Service struct {
	store  Store
	logger *logger.Logger
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

func (s *Service) CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := s.store.CreateCustomer(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logCreated(ctx, "customer", c.ID)
	return c, nil
}

func (s *Service) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *Service) UpdateCustomer(ctx context.Context, id int, in models.CustomerInput) (*models.Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateCustomer(ctx, id, in)
}

// DeleteCustomer removes the customer together with every order they placed
func (s *Service) DeleteCustomer(ctx context.Context, id int) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.logDeleted(ctx, "customer", id)
	return nil
}

func (s *Service) ListCustomers(ctx context.Context, params url.Values) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx, params)
}

func (s *Service) CreateRestaurant(ctx context.Context, in models.RestaurantInput) (*models.Restaurant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r, err := s.store.CreateRestaurant(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logCreated(ctx, "restaurant", r.ID)
	return r, nil
}

func (s *Service) GetRestaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	return s.store.GetRestaurant(ctx, id)
}

func (s *Service) UpdateRestaurant(ctx context.Context, id int, in models.RestaurantInput) (*models.Restaurant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateRestaurant(ctx, id, in)
}

// DeleteRestaurant removes the restaurant, its menu and its orders
func (s *Service) DeleteRestaurant(ctx context.Context, id int) error {
	if err := s.store.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	s.logDeleted(ctx, "restaurant", id)
	return nil
}

func (s *Service) ListRestaurants(ctx context.Context, params url.Values) ([]models.Restaurant, error) {
	return s.store.ListRestaurants(ctx, params)
}

func (s *Service) CreateMenuItem(ctx context.Context, in models.MenuItemInput) (*models.MenuItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item, err := s.store.CreateMenuItem(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logCreated(ctx, "menu_item", item.ID)
	return item, nil
}

func (s *Service) GetMenuItem(ctx context.Context, id int) (*models.MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}

// UpdateMenuItem changes the current menu entry. Prices already captured on
// order items are unaffected.
func (s *Service) UpdateMenuItem(ctx context.Context, id int, in models.MenuItemInput) (*models.MenuItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateMenuItem(ctx, id, in)
}

func (s *Service) SetMenuItemAvailability(ctx context.Context, id int, available bool) error {
	return s.store.SetMenuItemAvailability(ctx, id, available)
}

func (s *Service) DeleteMenuItem(ctx context.Context, id int) error {
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.logDeleted(ctx, "menu_item", id)
	return nil
}

func (s *Service) ListMenuItems(ctx context.Context, params url.Values) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx, params)
}

// RestaurantMenu returns the available items of a restaurant
func (s *Service) RestaurantMenu(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	return s.store.ListAvailableMenuItems(ctx, restaurantID)
}

func (s *Service) CreateDeliveryPerson(ctx context.Context, in models.DeliveryPersonInput) (*models.DeliveryPerson, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.store.CreateDeliveryPerson(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logCreated(ctx, "delivery_person", p.ID)
	return p, nil
}

func (s *Service) GetDeliveryPerson(ctx context.Context, id int) (*models.DeliveryPerson, error) {
	return s.store.GetDeliveryPerson(ctx, id)
}

func (s *Service) UpdateDeliveryPerson(ctx context.Context, id int, in models.DeliveryPersonInput) (*models.DeliveryPerson, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateDeliveryPerson(ctx, id, in)
}

func (s *Service) SetDeliveryPersonAvailability(ctx context.Context, id int, available bool) error {
	return s.store.SetDeliveryPersonAvailability(ctx, id, available)
}

// DeleteDeliveryPerson removes the courier; their orders stay with no courier
func (s *Service) DeleteDeliveryPerson(ctx context.Context, id int) error {
	if err := s.store.DeleteDeliveryPerson(ctx, id); err != nil {
		return err
	}
	s.logDeleted(ctx, "delivery_person", id)
	return nil
}

func (s *Service) ListDeliveryPersonnel(ctx context.Context, params url.Values) ([]models.DeliveryPerson, error) {
	return s.store.ListDeliveryPersonnel(ctx, params)
}

func (s *Service) logCreated(ctx context.Context, kind string, id int) {
	s.logger.Info(kind+"_created", "Record created", logger.RequestIDFromContext(ctx), map[string]interface{}{
		"id": id,
	})
}

func (s *Service) logDeleted(ctx context.Context, kind string, id int) {
	s.logger.Info(kind+"_deleted", "Record deleted", logger.RequestIDFromContext(ctx), map[string]interface{}{
		"id": id,
	})
}
