package journal

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(order_id, run_id, instrument, transaction_type, variety, quantity, price, status, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderID, o.RunID, o.Instrument, o.Transaction,
		o.Variety, o.Quantity, o.Price, o.Status, o.PlacedAt,
	)
	return err
}

func (j *SQLiteJournal) RecordExit(e ExitRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO exits
		(order_id, run_id, instrument, exit_price, exited_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.OrderID, e.RunID, e.Instrument, e.ExitPrice, e.ExitedAt,
	)
	return err
}

// ListOrdersByRun returns the orders placed under runID in placement order.
func (j *SQLiteJournal) ListOrdersByRun(ctx context.Context, runID string) ([]OrderRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT order_id, run_id, instrument, transaction_type, variety, quantity, price, status, placed_at
		FROM orders WHERE run_id = ? ORDER BY order_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var o OrderRecord
		if err := rows.Scan(&o.OrderID, &o.RunID, &o.Instrument, &o.Transaction,
			&o.Variety, &o.Quantity, &o.Price, &o.Status, &o.PlacedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListExitsByRun returns the exits executed under runID in execution order.
func (j *SQLiteJournal) ListExitsByRun(ctx context.Context, runID string) ([]ExitRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT order_id, run_id, instrument, exit_price, exited_at
		FROM exits WHERE run_id = ? ORDER BY exited_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExitRecord
	for rows.Next() {
		var e ExitRecord
		if err := rows.Scan(&e.OrderID, &e.RunID, &e.Instrument, &e.ExitPrice, &e.ExitedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
