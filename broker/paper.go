package broker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hacross/internal/id"
	"hacross/journal"
	"hacross/market"
)

// PaperBroker fills orders in-process against the last propagated price.
//
// Market orders fill immediately and report COMPLETE. Limit orders rest as
// OPEN_PENDING; settlement of resting profit orders belongs to the real host.
// The caller must push prices with UpdatePrice before placing orders.
//
// PaperBroker is not safe for concurrent use; the hook surface it serves is
// driven by a single candle loop.
type PaperBroker struct {
	log   *slog.Logger
	jrnl  journal.Journal
	runID string

	last map[string]price
}

type price struct {
	value float64
	at    time.Time
}

// NewPaper returns a paper broker journaling into jrnl under runID.
// A nil jrnl discards records, a nil log falls back to slog.Default.
func NewPaper(log *slog.Logger, jrnl journal.Journal, runID string) *PaperBroker {
	if log == nil {
		log = slog.Default()
	}
	if jrnl == nil {
		jrnl = journal.Nop{}
	}
	return &PaperBroker{
		log:   log,
		jrnl:  jrnl,
		runID: runID,
		last:  make(map[string]price),
	}
}

// UpdatePrice records the latest traded price for a symbol. Market orders
// placed afterwards fill at this price.
func (b *PaperBroker) UpdatePrice(symbol string, value float64, at time.Time) {
	b.last[symbol] = price{value: value, at: at}
}

func (b *PaperBroker) PlaceBuy(ctx context.Context, req OrderRequest) (Order, error) {
	return b.place(ctx, Buy, req)
}

func (b *PaperBroker) PlaceSell(ctx context.Context, req OrderRequest) (Order, error) {
	return b.place(ctx, Sell, req)
}

func (b *PaperBroker) place(_ context.Context, txn TransactionType, req OrderRequest) (Order, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("paper: quantity must be positive, got %d", req.Quantity)
	}

	o := &paperOrder{
		broker:     b,
		id:         id.New(),
		instrument: req.Instrument,
		txn:        txn,
		quantity:   req.Quantity,
	}

	switch req.Variety {
	case VarietyMarket:
		last, ok := b.last[req.Instrument.Symbol]
		if !ok {
			return nil, fmt.Errorf("paper: no price seen for %s", req.Instrument.Symbol)
		}
		o.entryPrice = last.value
		o.status = StatusComplete

	case VarietyLimit:
		o.entryPrice = req.Price
		o.status = StatusOpenPending

	default:
		return nil, fmt.Errorf("paper: unsupported order variety %q", req.Variety)
	}

	// A limit order flagged as the exit counterpart is remembered on its
	// main order so ExitPosition can cancel it.
	if req.Position == PositionExit && req.RelatedOrder != nil {
		if main, ok := req.RelatedOrder.(*paperOrder); ok {
			main.linkedExit = o
		}
	}

	b.log.Info("order placed",
		"order_id", o.id,
		"instrument", o.instrument.Symbol,
		"txn", txn,
		"variety", req.Variety,
		"qty", req.Quantity,
		"price", o.entryPrice,
		"status", o.status,
	)

	if err := b.jrnl.RecordOrder(journal.OrderRecord{
		OrderID:     o.id,
		RunID:       b.runID,
		Instrument:  o.instrument.Symbol,
		Transaction: string(txn),
		Variety:     string(req.Variety),
		Quantity:    req.Quantity,
		Price:       o.entryPrice,
		Status:      string(o.status),
		PlacedAt:    time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("journal order: %w", err)
	}

	return o, nil
}

type paperOrder struct {
	broker     *PaperBroker
	id         string
	instrument market.Instrument
	txn        TransactionType
	status     OrderStatus
	entryPrice float64
	quantity   int

	// linkedExit is the resting profit order tied to this main order.
	linkedExit *paperOrder
}

func (o *paperOrder) Status() OrderStatus              { return o.status }
func (o *paperOrder) EntryPrice() float64              { return o.entryPrice }
func (o *paperOrder) TransactionType() TransactionType { return o.txn }

func (o *paperOrder) ExitPosition(_ context.Context) error {
	if o.status != StatusComplete {
		return fmt.Errorf("paper: cannot exit order %s in status %s", o.id, o.status)
	}

	last, ok := o.broker.last[o.instrument.Symbol]
	if !ok {
		return fmt.Errorf("paper: no price seen for %s", o.instrument.Symbol)
	}

	if o.linkedExit != nil && o.linkedExit.status == StatusOpenPending {
		o.linkedExit.status = StatusCancelled
	}

	o.broker.log.Info("position exited",
		"order_id", o.id,
		"instrument", o.instrument.Symbol,
		"txn", o.txn,
		"exit_price", last.value,
	)

	if err := o.broker.jrnl.RecordExit(journal.ExitRecord{
		OrderID:    o.id,
		RunID:      o.broker.runID,
		Instrument: o.instrument.Symbol,
		ExitPrice:  last.value,
		ExitedAt:   time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("journal exit: %w", err)
	}
	return nil
}
