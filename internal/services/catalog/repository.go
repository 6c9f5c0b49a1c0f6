package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"

	"food-delivery/internal/admin"
	"food-delivery/internal/database"
	"food-delivery/internal/models"
)

// Repository persists catalog records in PostgreSQL
type Repository struct {
	db database.Querier
}

func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Customers

func (r *Repository) CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	c := models.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
	err := r.db.QueryRow(ctx, database.InsertCustomerSQL, in.Name, in.Email, in.Phone, in.Address).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", database.TranslateError(err))
	}
	return &c, nil
}

func (r *Repository) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return getOne[models.Customer](ctx, r.db, "customer", database.GetCustomerSQL, id)
}

func (r *Repository) UpdateCustomer(ctx context.Context, id int, in models.CustomerInput) (*models.Customer, error) {
	c := models.Customer{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
	err := r.db.QueryRow(ctx, database.UpdateCustomerSQL, in.Name, in.Email, in.Phone, in.Address, id).
		Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, database.TranslateError(err))
	}
	return &c, nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id int) error {
	return r.exec(ctx, "delete customer", database.DeleteCustomerSQL, id)
}

func (r *Repository) ListCustomers(ctx context.Context, params url.Values) ([]models.Customer, error) {
	return list[models.Customer](ctx, r.db, admin.Customers, database.ListCustomersSQL, params)
}

// Restaurants

func (r *Repository) CreateRestaurant(ctx context.Context, in models.RestaurantInput) (*models.Restaurant, error) {
	rest := restaurantFromInput(0, in)
	err := r.db.QueryRow(ctx, database.InsertRestaurantSQL,
		rest.Name, rest.Address, rest.Phone, rest.CuisineType, rest.Rating).Scan(&rest.ID)
	if err != nil {
		return nil, fmt.Errorf("insert restaurant: %w", database.TranslateError(err))
	}
	return &rest, nil
}

func (r *Repository) GetRestaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	return getOne[models.Restaurant](ctx, r.db, "restaurant", database.GetRestaurantSQL, id)
}

func (r *Repository) UpdateRestaurant(ctx context.Context, id int, in models.RestaurantInput) (*models.Restaurant, error) {
	rest := restaurantFromInput(id, in)
	err := r.exec(ctx, "update restaurant", database.UpdateRestaurantSQL,
		rest.Name, rest.Address, rest.Phone, rest.CuisineType, rest.Rating, id)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) DeleteRestaurant(ctx context.Context, id int) error {
	return r.exec(ctx, "delete restaurant", database.DeleteRestaurantSQL, id)
}

func (r *Repository) ListRestaurants(ctx context.Context, params url.Values) ([]models.Restaurant, error) {
	return list[models.Restaurant](ctx, r.db, admin.Restaurants, database.ListRestaurantsSQL, params)
}

func restaurantFromInput(id int, in models.RestaurantInput) models.Restaurant {
	return models.Restaurant{
		ID:          id,
		Name:        in.Name,
		Address:     in.Address,
		Phone:       in.Phone,
		CuisineType: in.CuisineType,
		Rating:      in.RatingOrDefault(),
	}
}

// Menu items

func (r *Repository) CreateMenuItem(ctx context.Context, in models.MenuItemInput) (*models.MenuItem, error) {
	item := menuItemFromInput(0, in)
	err := r.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.RestaurantID, item.Name, item.Description, item.Price, item.Category, item.IsAvailable).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("insert menu item: %w", database.TranslateError(err))
	}
	return &item, nil
}

func (r *Repository) GetMenuItem(ctx context.Context, id int) (*models.MenuItem, error) {
	return getOne[models.MenuItem](ctx, r.db, "menu item", database.GetMenuItemSQL, id)
}

func (r *Repository) UpdateMenuItem(ctx context.Context, id int, in models.MenuItemInput) (*models.MenuItem, error) {
	item := menuItemFromInput(id, in)
	err := r.exec(ctx, "update menu item", database.UpdateMenuItemSQL,
		item.RestaurantID, item.Name, item.Description, item.Price, item.Category, item.IsAvailable, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) SetMenuItemAvailability(ctx context.Context, id int, available bool) error {
	return r.exec(ctx, "set menu item availability", database.UpdateMenuItemAvailabilitySQL, available, id)
}

func (r *Repository) DeleteMenuItem(ctx context.Context, id int) error {
	return r.exec(ctx, "delete menu item", database.DeleteMenuItemSQL, id)
}

func (r *Repository) ListMenuItems(ctx context.Context, params url.Values) ([]models.MenuItem, error) {
	return list[models.MenuItem](ctx, r.db, admin.MenuItems, database.ListMenuItemsSQL, params)
}

// ListAvailableMenuItems returns the orderable items of a restaurant, or
// ErrNotFound when the restaurant itself does not exist
func (r *Repository) ListAvailableMenuItems(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, database.RestaurantExistsSQL, restaurantID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check restaurant %d: %w", restaurantID, err)
	}
	if !exists {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, models.ErrNotFound)
	}

	rows, err := r.db.Query(ctx, database.ListAvailableMenuItemsSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu of restaurant %d: %w", restaurantID, err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.MenuItem])
}

func menuItemFromInput(id int, in models.MenuItemInput) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		IsAvailable:  in.Availability(),
	}
}

// Delivery personnel

func (r *Repository) CreateDeliveryPerson(ctx context.Context, in models.DeliveryPersonInput) (*models.DeliveryPerson, error) {
	p := deliveryPersonFromInput(0, in)
	err := r.db.QueryRow(ctx, database.InsertDeliveryPersonSQL, p.Name, p.Phone, p.VehicleType, p.IsAvailable).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("insert delivery person: %w", database.TranslateError(err))
	}
	return &p, nil
}

func (r *Repository) GetDeliveryPerson(ctx context.Context, id int) (*models.DeliveryPerson, error) {
	return getOne[models.DeliveryPerson](ctx, r.db, "delivery person", database.GetDeliveryPersonSQL, id)
}

func (r *Repository) UpdateDeliveryPerson(ctx context.Context, id int, in models.DeliveryPersonInput) (*models.DeliveryPerson, error) {
	p := deliveryPersonFromInput(id, in)
	err := r.exec(ctx, "update delivery person", database.UpdateDeliveryPersonSQL, p.Name, p.Phone, p.VehicleType, p.IsAvailable, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) SetDeliveryPersonAvailability(ctx context.Context, id int, available bool) error {
	return r.exec(ctx, "set delivery person availability", database.UpdateDeliveryPersonAvailabilitySQL, available, id)
}

func (r *Repository) DeleteDeliveryPerson(ctx context.Context, id int) error {
	return r.exec(ctx, "delete delivery person", database.DeleteDeliveryPersonSQL, id)
}

func (r *Repository) ListDeliveryPersonnel(ctx context.Context, params url.Values) ([]models.DeliveryPerson, error) {
	return list[models.DeliveryPerson](ctx, r.db, admin.DeliveryPersonnel, database.ListDeliveryPersonnelSQL, params)
}

func deliveryPersonFromInput(id int, in models.DeliveryPersonInput) models.DeliveryPerson {
	return models.DeliveryPerson{
		ID:          id,
		Name:        in.Name,
		Phone:       in.Phone,
		VehicleType: in.VehicleType,
		IsAvailable: in.Availability(),
	}
}

// exec runs a single-row write and reports ErrNotFound when no row matched
func (r *Repository) exec(ctx context.Context, op, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, database.TranslateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

func getOne[T any](ctx context.Context, db database.Querier, what, sql string, id int) (*T, error) {
	rows, err := db.Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", what, id, err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[T])
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", what, id, database.TranslateError(err))
	}
	return &v, nil
}

func list[T any](ctx context.Context, db database.Querier, model admin.Model, base string, params url.Values) ([]T, error) {
	sql, args, err := model.ListQuery(base, params)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", model.Name, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[T])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", model.Name, err)
	}
	return items, nil
}
