// Package ratings implements the pure aggregation and query logic applied to
// rating collections. Nothing here touches storage or shared state.
package ratings

import "math"

// Average returns the arithmetic mean of the values rounded to two decimals,
// or 0 for an empty input. The sum accumulates in an int64 so large
// collections don't drift the way a running float average would.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return Round2(float64(sum) / float64(len(values)))
}

// Round2 rounds half-up to two decimal places. Rating values are never
// negative, so math.Round (half away from zero) is exactly half-up here.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
