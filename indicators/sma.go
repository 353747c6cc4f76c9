// Package indicators provides the technical indicators the crossover
// strategy consumes: the Heikin-Ashi transform, a simple moving average,
// and a latest-bar crossover detector.
package indicators

import (
	"fmt"
	"math"
)

// SMA returns the Simple Moving Average series for the given period.
//
// The output is aligned with the input: the first period-1 entries are NaN
// (not enough trailing bars yet), so output[i] averages values[i-period+1..i].
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}

	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
