package snapshot

// Operational schema for a fresh store. Durable snapshots normally arrive
// already seeded; Create applies this for bootstrap tooling and tests.
// order_predictions is managed by the migration in pkg/migrate instead.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT,
		city TEXT,
		country TEXT,
		birthdate TEXT,
		active INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY AUTOINCREMENT,
		sku TEXT,
		name TEXT NOT NULL,
		category TEXT,
		unit_price TEXT NOT NULL,
		cost TEXT,
		active INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
		order_datetime TEXT NOT NULL,
		subtotal TEXT NOT NULL,
		shipping_fee TEXT NOT NULL,
		tax TEXT NOT NULL,
		total TEXT NOT NULL,
		payment_method TEXT,
		device_type TEXT,
		country TEXT,
		fraud_score REAL,
		high_risk INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		line_total TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shipments (
		shipment_id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		ship_datetime TEXT,
		late_delivery INTEGER NOT NULL DEFAULT 0
	)`,
}
