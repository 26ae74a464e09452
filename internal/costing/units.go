package costing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension classifies a measurement unit.
type Dimension string

const (
	Weight Dimension = "weight"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

// Measurement is a quantity expressed in a dimension's base unit:
// grams for weight, milliliters for volume, and the raw quantity for count.
type Measurement struct {
	Value     decimal.Decimal `json:"value"`
	Dimension Dimension       `json:"dimension"`
}

// Conversion factors to the base unit of each dimension.
var (
	gramFactors = map[string]int64{
		"g":      1,
		"gr":     1,
		"grs":    1,
		"gramo":  1,
		"gramos": 1,
		"kg":     1000,
		"kgs":    1000,
		"kilo":   1000,
		"kilos":  1000,
	}

	milliliterFactors = map[string]int64{
		"ml":     1,
		"cc":     1,
		"l":      1000,
		"lt":     1000,
		"lts":    1000,
		"litro":  1000,
		"litros": 1000,
	}
)

// Normalize converts a quantity with a free-text unit into a Measurement.
// Unit strings are case-folded and stripped of trailing periods before
// lookup. Units found in neither table (including the empty string) are
// classified as Count and the quantity passes through unchanged; this is
// deliberate, not an error, and callers rely on it for units like
// "unidad" or "docena" that have no conversion.
func Normalize(qty decimal.Decimal, unit string) Measurement {
	key := strings.TrimRight(strings.ToLower(strings.TrimSpace(unit)), ".")

	if factor, ok := gramFactors[key]; ok {
		return Measurement{Value: qty.Mul(decimal.NewFromInt(factor)), Dimension: Weight}
	}
	if factor, ok := milliliterFactors[key]; ok {
		return Measurement{Value: qty.Mul(decimal.NewFromInt(factor)), Dimension: Volume}
	}
	return Measurement{Value: qty, Dimension: Count}
}
