package repl

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultDigits is the number of places after the point that results show
// unless configured otherwise.
const DefaultDigits = 5

// Format renders a result rounded to digits places after the point, with
// trailing zeros and a trailing point removed.
func Format(v float64, digits int32) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return decimal.NewFromFloat(v).Round(digits).String()
}
