// Package journal records the orders a strategy run places and the exits it
// executes, keyed by run ID so several runs can share one database.
package journal

import "time"

// OrderRecord is one placed order.
type OrderRecord struct {
	OrderID     string
	RunID       string
	Instrument  string
	Transaction string
	Variety     string
	Quantity    int
	Price       float64
	Status      string
	PlacedAt    time.Time
}

// ExitRecord is one executed position exit.
type ExitRecord struct {
	OrderID    string
	RunID      string
	Instrument string
	ExitPrice  float64
	ExitedAt   time.Time
}

type Journal interface {
	RecordOrder(OrderRecord) error
	RecordExit(ExitRecord) error
	Close() error
}

// Nop discards all records.
type Nop struct{}

func (Nop) RecordOrder(OrderRecord) error { return nil }
func (Nop) RecordExit(ExitRecord) error   { return nil }
func (Nop) Close() error                  { return nil }
