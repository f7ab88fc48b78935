package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundTo2Decimals rounds a money amount to cents, half away from zero.
func roundTo2Decimals(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// percentOf returns part/whole as a percentage, or 0 when whole is not positive.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
