package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMA_WarmupIsNaN(t *testing.T) {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	require.True(t, math.IsNaN(out[0]))
	require.True(t, math.IsNaN(out[1]))
	require.InDelta(t, 2.0, out[2], 1e-9)
	require.InDelta(t, 3.0, out[3], 1e-9)
	require.InDelta(t, 4.0, out[4], 1e-9)
}

func TestSMA_PeriodLongerThanSeries(t *testing.T) {
	out, err := SMA([]float64{1, 2}, 3)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.True(t, math.IsNaN(out[0]))
	require.True(t, math.IsNaN(out[1]))
}

func TestSMA_InvalidPeriod(t *testing.T) {
	_, err := SMA([]float64{1, 2, 3}, 0)
	require.Error(t, err)

	_, err = SMA([]float64{1, 2, 3}, -4)
	require.Error(t, err)
}
