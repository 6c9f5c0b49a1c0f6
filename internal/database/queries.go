package database

const RecordMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`

// Customer queries
const (
	CustomerColumns = `id, name, email, phone, address, created_at`

	InsertCustomerSQL = `
		INSERT INTO customer (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	GetCustomerSQL = `SELECT ` + CustomerColumns + ` FROM customer WHERE id = $1`

	UpdateCustomerSQL = `
		UPDATE customer SET name = $1, email = $2, phone = $3, address = $4
		WHERE id = $5
		RETURNING created_at`

	DeleteCustomerSQL = `DELETE FROM customer WHERE id = $1`

	ListCustomersSQL = `SELECT ` + CustomerColumns + ` FROM customer`

	GetCustomerAddressSQL = `SELECT address FROM customer WHERE id = $1`
)

// Restaurant queries
const (
	RestaurantColumns = `id, name, address, phone, cuisine_type, rating`

	InsertRestaurantSQL = `
		INSERT INTO restaurant (name, address, phone, cuisine_type, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	GetRestaurantSQL = `SELECT ` + RestaurantColumns + ` FROM restaurant WHERE id = $1`

	UpdateRestaurantSQL = `
		UPDATE restaurant SET name = $1, address = $2, phone = $3, cuisine_type = $4, rating = $5
		WHERE id = $6`

	DeleteRestaurantSQL = `DELETE FROM restaurant WHERE id = $1`

	ListRestaurantsSQL = `SELECT ` + RestaurantColumns + ` FROM restaurant`

	RestaurantExistsSQL = `SELECT EXISTS(SELECT 1 FROM restaurant WHERE id = $1)`
)

// Menu item queries
const (
	MenuItemColumns = `id, restaurant_id, name, description, price, category, is_available`

	InsertMenuItemSQL = `
		INSERT INTO menu_item (restaurant_id, name, description, price, category, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	GetMenuItemSQL = `SELECT ` + MenuItemColumns + ` FROM menu_item WHERE id = $1`

	UpdateMenuItemSQL = `
		UPDATE menu_item SET restaurant_id = $1, name = $2, description = $3, price = $4,
			category = $5, is_available = $6
		WHERE id = $7`

	UpdateMenuItemAvailabilitySQL = `UPDATE menu_item SET is_available = $1 WHERE id = $2`

	DeleteMenuItemSQL = `DELETE FROM menu_item WHERE id = $1`

	ListMenuItemsSQL = `SELECT ` + MenuItemColumns + ` FROM menu_item`

	ListAvailableMenuItemsSQL = `
		SELECT ` + MenuItemColumns + `
		FROM menu_item
		WHERE restaurant_id = $1 AND is_available
		ORDER BY category, name, id`

	GetMenuItemPriceSQL = `SELECT price FROM menu_item WHERE id = $1`
)

// Delivery personnel queries
const (
	DeliveryPersonColumns = `id, name, phone, vehicle_type, is_available`

	InsertDeliveryPersonSQL = `
		INSERT INTO delivery_personnel (name, phone, vehicle_type, is_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	GetDeliveryPersonSQL = `SELECT ` + DeliveryPersonColumns + ` FROM delivery_personnel WHERE id = $1`

	UpdateDeliveryPersonSQL = `
		UPDATE delivery_personnel SET name = $1, phone = $2, vehicle_type = $3, is_available = $4
		WHERE id = $5`

	UpdateDeliveryPersonAvailabilitySQL = `UPDATE delivery_personnel SET is_available = $1 WHERE id = $2`

	DeleteDeliveryPersonSQL = `DELETE FROM delivery_personnel WHERE id = $1`

	ListDeliveryPersonnelSQL = `SELECT ` + DeliveryPersonColumns + ` FROM delivery_personnel`
)

// Order queries
const (
	orderViewSelect = `
		SELECT o.id, o.customer_id, o.restaurant_id, o.delivery_person_id, o.order_date,
			   o.status, o.delivery_address, o.total_amount,
			   c.name, r.name, dp.name
		FROM order_table o
		JOIN customer c ON c.id = o.customer_id
		JOIN restaurant r ON r.id = o.restaurant_id
		LEFT JOIN delivery_personnel dp ON dp.id = o.delivery_person_id`

	InsertOrderSQL = `
		INSERT INTO order_table (customer_id, restaurant_id, delivery_person_id, delivery_address, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_date, status`

	InsertOrderItemSQL = `
		INSERT INTO order_item (order_id, menu_item_id, quantity, item_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	GetOrderViewSQL = orderViewSelect + ` WHERE o.id = $1`

	// ListOrderViewsSQL is the base the admin list appends its clauses to
	ListOrderViewsSQL = orderViewSelect

	// $1 is an optional exact status match ('' for all), $2 a row limit (0 for all)
	ListOrdersSQL = orderViewSelect + `
		WHERE ($1::text = '' OR o.status = $1::text)
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT NULLIF($2::int, 0)`

	ListOrderItemsSQL = `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.item_price, m.name
		FROM order_item oi
		JOIN menu_item m ON m.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	LockOrderStatusSQL = `SELECT status FROM order_table WHERE id = $1 FOR UPDATE`

	UpdateOrderStatusSQL = `UPDATE order_table SET status = $1 WHERE id = $2`

	UpdateOrderCourierSQL = `UPDATE order_table SET delivery_person_id = $1 WHERE id = $2`

	RecalculateOrderTotalSQL = `
		UPDATE order_table o
		SET total_amount = COALESCE(
			(SELECT SUM(oi.quantity * oi.item_price) FROM order_item oi WHERE oi.order_id = o.id), 0)
		WHERE o.id = $1
		RETURNING o.total_amount`

	DeleteOrderSQL = `DELETE FROM order_table WHERE id = $1`

	OrderExistsSQL = `SELECT EXISTS(SELECT 1 FROM order_table WHERE id = $1)`

	UpdateOrderItemQuantitySQL = `
		UPDATE order_item SET quantity = $1
		WHERE id = $2
		RETURNING id, order_id, menu_item_id, quantity, item_price`

	DeleteOrderItemSQL = `DELETE FROM order_item WHERE id = $1`

	GetOrderStatusSQL = `
		SELECT o.id, o.status, o.total_amount, dp.name
		FROM order_table o
		LEFT JOIN delivery_personnel dp ON dp.id = o.delivery_person_id
		WHERE o.id = $1`
)

// Reporting queries
const (
	CountCustomersSQL   = `SELECT COUNT(*) FROM customer`
	CountRestaurantsSQL = `SELECT COUNT(*) FROM restaurant`
	CountOrdersSQL      = `SELECT COUNT(*) FROM order_table`
	CountMenuItemsSQL   = `SELECT COUNT(*) FROM menu_item`

	// $1 is the list of inactive statuses
	ActiveOrderCountSQL = `SELECT COUNT(*) FROM order_table WHERE status <> ALL($1::text[])`

	CustomerSummariesSQL = `
		SELECT c.id, c.name, c.email, c.phone, c.address, c.created_at,
			   COUNT(o.id), SUM(o.total_amount)
		FROM customer c
		LEFT JOIN order_table o ON o.customer_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC`

	RestaurantSummariesSQL = `
		SELECT r.id, r.name, r.address, r.phone, r.cuisine_type, r.rating,
			   COUNT(o.id), SUM(o.total_amount), ROUND(AVG(o.total_amount), 2)
		FROM restaurant r
		LEFT JOIN order_table o ON o.restaurant_id = r.id
		GROUP BY r.id
		ORDER BY r.rating DESC, r.id ASC`

	StatusSummariesSQL = `
		SELECT status, COUNT(*), SUM(total_amount)
		FROM order_table
		GROUP BY status
		ORDER BY COUNT(*) DESC, MIN(id) ASC`

	PopularItemsSQL = `
		SELECT m.id, m.name, r.name, COUNT(oi.id), SUM(oi.quantity)
		FROM order_item oi
		JOIN menu_item m ON m.id = oi.menu_item_id
		JOIN restaurant r ON r.id = m.restaurant_id
		GROUP BY m.id, m.name, r.name
		ORDER BY COUNT(oi.id) DESC, m.id ASC
		LIMIT $1`

	CourierSummariesSQL = `
		SELECT dp.id, dp.name, dp.phone, dp.vehicle_type, dp.is_available,
			   COUNT(o.id),
			   COUNT(o.id) FILTER (WHERE o.status = 'Delivered')
		FROM delivery_personnel dp
		LEFT JOIN order_table o ON o.delivery_person_id = dp.id
		GROUP BY dp.id
		ORDER BY COUNT(o.id) DESC, dp.id ASC`
)
