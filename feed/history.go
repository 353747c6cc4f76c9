package feed

import (
	"context"
	"fmt"

	"hacross/market"
)

// History holds a rolling window of closed candles per instrument and serves
// them as the strategy's historical data provider. The runner appends each
// candle as it closes; the window caps how far back decisions can look.
type History struct {
	window int
	series map[string][]market.Candle
}

// NewHistory returns a History keeping at most window candles per
// instrument. window must be large enough for the strategy's indicator
// lookback plus one prior bar for crossover detection.
func NewHistory(window int) (*History, error) {
	if window <= 0 {
		return nil, fmt.Errorf("history window must be positive, got %d", window)
	}
	return &History{
		window: window,
		series: make(map[string][]market.Candle),
	}, nil
}

// Append records a closed candle for symbol, evicting the oldest candle once
// the window is full.
func (h *History) Append(symbol string, c market.Candle) {
	s := append(h.series[symbol], c)
	if len(s) > h.window {
		s = s[len(s)-h.window:]
	}
	h.series[symbol] = s
}

// HistoricalData returns the instrument's candle window, oldest first.
func (h *History) HistoricalData(_ context.Context, instrument market.Instrument) ([]market.Candle, error) {
	s, ok := h.series[instrument.Symbol]
	if !ok {
		return nil, fmt.Errorf("no historical data for %s", instrument.Symbol)
	}
	return s, nil
}
