package journal

const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	instrument TEXT NOT NULL,
	transaction_type TEXT NOT NULL,
	variety TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	status TEXT NOT NULL,
	placed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_run ON orders(run_id);

CREATE TABLE IF NOT EXISTS exits (
	order_id TEXT NOT NULL,
	run_id TEXT NOT NULL,
	instrument TEXT NOT NULL,
	exit_price REAL NOT NULL,
	exited_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exits_run ON exits(run_id);
`
