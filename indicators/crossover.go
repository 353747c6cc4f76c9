package indicators

import "math"

// Crossover reports whether series a crossed series b on the latest bar:
//
//	+1  a moved from at-or-below b to above b
//	-1  a moved from at-or-above b to below b
//	 0  no cross
//
// Both series must be aligned bar-for-bar. At least two bars are required,
// and any NaN inside the two-bar comparison window (e.g. SMA warmup) yields 0.
func Crossover(a, b []float64) int {
	n := len(a)
	if n < 2 || len(b) < 2 {
		return 0
	}

	prevA, curA := a[n-2], a[n-1]
	prevB, curB := b[len(b)-2], b[len(b)-1]
	if math.IsNaN(prevA) || math.IsNaN(curA) || math.IsNaN(prevB) || math.IsNaN(curB) {
		return 0
	}

	if prevA <= prevB && curA > curB {
		return 1
	}
	if prevA >= prevB && curA < curB {
		return -1
	}
	return 0
}
