package indicators

import (
	"math"

	"hacross/market"
)

// HeikinAshi transforms raw OHLC candles into Heikin-Ashi candles.
//
// The transform smooths out single-bar noise, which makes trend and
// crossover detection less jittery:
//
//	haClose = (O + H + L + C) / 4
//	haOpen  = (prev haOpen + prev haClose) / 2
//	haHigh  = max(H, haOpen, haClose)
//	haLow   = min(L, haOpen, haClose)
//
// The first bar is seeded from the raw candle: haOpen = (O+C)/2.
// Time and volume are carried through unchanged.
func HeikinAshi(candles []market.Candle) []market.Candle {
	if len(candles) == 0 {
		return nil
	}

	out := make([]market.Candle, len(candles))

	first := candles[0]
	out[0] = market.Candle{
		Open:   (first.Open + first.Close) / 2,
		High:   first.High,
		Low:    first.Low,
		Close:  (first.Open + first.High + first.Low + first.Close) / 4,
		Time:   first.Time,
		Volume: first.Volume,
	}

	for i := 1; i < len(candles); i++ {
		c := candles[i]
		haOpen := (out[i-1].Open + out[i-1].Close) / 2
		haClose := (c.Open + c.High + c.Low + c.Close) / 4
		out[i] = market.Candle{
			Open:   haOpen,
			High:   math.Max(c.High, math.Max(haOpen, haClose)),
			Low:    math.Min(c.Low, math.Min(haOpen, haClose)),
			Close:  haClose,
			Time:   c.Time,
			Volume: c.Volume,
		}
	}

	return out
}
