// Package engine drives a strategy's hook surface over one trading day of
// closed candles.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hacross/feed"
	"hacross/market"
	"hacross/strategy"
)

// PriceSink receives the latest traded price before each candle's hooks run,
// so market orders placed inside the hooks fill at the candle close.
type PriceSink interface {
	UpdatePrice(symbol string, value float64, at time.Time)
}

// DaySeries maps instrument symbol to that instrument's candles for the day,
// oldest first and aligned by bar index across instruments.
type DaySeries map[string][]market.Candle

// Runner replays a day of candles through the fixed hook sequence:
// exit-selection, exit-execution per selected instrument, entry-selection,
// entry-execution per selected instrument. Everything is synchronous and
// single-threaded.
type Runner struct {
	Strategy    strategy.Strategy
	Instruments []market.Instrument
	History     *feed.History
	Prices      PriceSink
	Log         *slog.Logger
}

// Run initializes the strategy and ticks through the series bar by bar.
func (r *Runner) Run(ctx context.Context, series DaySeries) error {
	if r.Strategy == nil {
		return fmt.Errorf("engine: Strategy is required")
	}
	if r.History == nil {
		return fmt.Errorf("engine: History is required")
	}
	if len(r.Instruments) == 0 {
		return fmt.Errorf("engine: no instruments")
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	r.Strategy.Initialize()

	bars := 0
	for _, cs := range series {
		if len(cs) > bars {
			bars = len(cs)
		}
	}

	for i := 0; i < bars; i++ {
		var candle market.Candle
		for _, inst := range r.Instruments {
			cs := series[inst.Symbol]
			if i >= len(cs) {
				continue
			}
			c := cs[i]
			r.History.Append(inst.Symbol, c)
			if r.Prices != nil {
				r.Prices.UpdatePrice(inst.Symbol, c.Close, c.Time)
			}
			candle = c
		}

		exits, exitInfo, err := r.Strategy.SelectInstrumentsForExit(ctx, candle, r.Instruments)
		if err != nil {
			return fmt.Errorf("exit selection at bar %d: %w", i, err)
		}
		for j, inst := range exits {
			done, err := r.Strategy.ExitPosition(ctx, candle, inst, exitInfo[j])
			if err != nil {
				return fmt.Errorf("exit %s at bar %d: %w", inst.Symbol, i, err)
			}
			log.Debug("exit executed", "bar", i, "instrument", inst.Symbol, "complete", done)
		}

		entries, entryInfo, err := r.Strategy.SelectInstrumentsForEntry(ctx, candle, r.Instruments)
		if err != nil {
			return fmt.Errorf("entry selection at bar %d: %w", i, err)
		}
		for j, inst := range entries {
			order, err := r.Strategy.EnterPosition(ctx, candle, inst, entryInfo[j])
			if err != nil {
				return fmt.Errorf("enter %s at bar %d: %w", inst.Symbol, i, err)
			}
			log.Debug("entry executed",
				"bar", i,
				"instrument", inst.Symbol,
				"action", entryInfo[j].Action.String(),
				"entry_price", order.EntryPrice(),
			)
		}
	}

	return nil
}
