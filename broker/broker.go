// Package broker defines the order-placement contract the strategy consumes.
// The trading host supplies the real implementation; PaperBroker is an
// in-process implementation for tests and local runs.
package broker

import (
	"context"

	"hacross/market"
)

// TransactionType is the direction of an order.
type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

// OrderStatus is the host-reported lifecycle state of an order.
type OrderStatus string

const (
	StatusOpenPending OrderStatus = "OPEN_PENDING"
	StatusOpen        OrderStatus = "OPEN"
	StatusComplete    OrderStatus = "COMPLETE"
	StatusCancelled   OrderStatus = "CANCELLED"
	StatusRejected    OrderStatus = "REJECTED"
)

// OrderCode selects the product type an order is booked under.
type OrderCode string

const (
	CodeIntraday OrderCode = "INTRADAY"
	CodeDelivery OrderCode = "DELIVERY"
)

// OrderVariety selects how an order is priced.
type OrderVariety string

const (
	VarietyMarket OrderVariety = "MARKET"
	VarietyLimit  OrderVariety = "LIMIT"
)

// OrderPosition marks whether an order opens a fresh position or is the
// exit counterpart of an existing one.
type OrderPosition string

const (
	PositionEnter OrderPosition = "ENTER"
	PositionExit  OrderPosition = "EXIT"
)

// Order is a host-owned handle to a placed order. Strategies only ever hold
// references returned by a Broker; they never construct Order internals.
type Order interface {
	Status() OrderStatus
	EntryPrice() float64
	TransactionType() TransactionType

	// ExitPosition squares off the position this order established,
	// cancelling any resting exit counterpart.
	ExitPosition(ctx context.Context) error
}

// OrderRequest carries everything needed to place one order.
type OrderRequest struct {
	Instrument market.Instrument
	Code       OrderCode
	Variety    OrderVariety
	Quantity   int

	// Price is the limit price; ignored for market orders.
	Price float64

	// Position and RelatedOrder link a limit order to the main order it
	// exits. Both are optional and only meaningful together.
	Position     OrderPosition
	RelatedOrder Order
}

// Broker places orders on behalf of a strategy. Calls are synchronous; the
// returned Order reports fill progress through Status.
type Broker interface {
	PlaceBuy(ctx context.Context, req OrderRequest) (Order, error)
	PlaceSell(ctx context.Context, req OrderRequest) (Order, error)
}
