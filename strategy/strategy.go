// Package strategy defines the per-candle hook surface a trading host drives
// and implements the SMA Heikin-Ashi crossover strategy on top of it.
package strategy

import (
	"context"

	"hacross/broker"
	"hacross/market"
)

// Action is the output of a strategy's decision rule.
type Action int

const (
	NoAction Action = iota
	EntryBuy
	EntrySell
	ExitBuy
	ExitSell
)

func (a Action) String() string {
	switch a {
	case EntryBuy:
		return "ENTRY_BUY"
	case EntrySell:
		return "ENTRY_SELL"
	case ExitBuy:
		return "EXIT_BUY"
	case ExitSell:
		return "EXIT_SELL"
	default:
		return "NO_ACTION"
	}
}

// DecisionContext selects which half of the decision rule is evaluated.
type DecisionContext int

const (
	Entry DecisionContext = iota
	Exit
)

// Mode is the trading mode the host runs the strategy in. Short entries are
// only permitted intraday.
type Mode string

const (
	ModeIntraday Mode = "INTRADAY"
	ModeDelivery Mode = "DELIVERY"
)

// EntrySignal is the sideband info an entry selection emits for one
// instrument. Action is always EntryBuy or EntrySell.
type EntrySignal struct {
	Action Action
}

// ExitSignal is the sideband info an exit selection emits for one
// instrument. Action is always ExitBuy or ExitSell.
type ExitSignal struct {
	Action Action
}

// DataProvider supplies the historical OHLC series a decision is based on.
// The series is ordered oldest first and ends at the last closed candle.
type DataProvider interface {
	HistoricalData(ctx context.Context, instrument market.Instrument) ([]market.Candle, error)
}

// Strategy is the hook surface the host engine drives once per closed
// candle. The per-candle call order is fixed: SelectInstrumentsForExit,
// then ExitPosition for each selected instrument, then
// SelectInstrumentsForEntry, then EnterPosition for each selected
// instrument. Hooks are never called concurrently.
type Strategy interface {
	// Name is the strategy's display name.
	Name() string

	// VersionsSupported is the newest engine version tag the strategy
	// supports.
	VersionsSupported() string

	// Initialize resets day-scoped state. The host calls it at the start of
	// every trading day.
	Initialize()

	// SelectInstrumentsForExit returns the instruments whose open position
	// should be squared off this candle, with a parallel slice of signals.
	SelectInstrumentsForExit(ctx context.Context, candle market.Candle, bucket []market.Instrument) ([]market.Instrument, []ExitSignal, error)

	// ExitPosition squares off one selected instrument. It reports true when
	// the exit was executed and the instrument is flat again.
	ExitPosition(ctx context.Context, candle market.Candle, instrument market.Instrument, info ExitSignal) (bool, error)

	// SelectInstrumentsForEntry returns the instruments to open a position
	// in this candle, with a parallel slice of signals.
	SelectInstrumentsForEntry(ctx context.Context, candle market.Candle, bucket []market.Instrument) ([]market.Instrument, []EntrySignal, error)

	// EnterPosition places the orders for one selected instrument and
	// returns the main order for the host to track.
	EnterPosition(ctx context.Context, candle market.Candle, instrument market.Instrument, info EntrySignal) (broker.Order, error)
}
