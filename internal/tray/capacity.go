package tray

import (
	"fmt"
	"strconv"
	"strings"
)

// How many portions a tray is expected to hold per centimeter of
// diameter, and the absolute tolerance around that estimate. The
// tolerance is deliberately a fixed ±5 regardless of tray size.
const (
	portionsPerCentimeter = 1.5
	portionTolerance      = 5
)

// CapacityError reports a portion total outside the tolerance band
// derived from the tray's declared diameter. The bounds are inclusive:
// a total equal to either bound passes.
type CapacityError struct {
	TotalPortions int
	Capacity      float64
	LowerBound    float64
	UpperBound    float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"tray has %d portions but its size suggests about %.1f (accepted range %.1f to %.1f)",
		e.TotalPortions, e.Capacity, e.LowerBound, e.UpperBound,
	)
}

func checkCapacity(diameter float64, totalPortions int) error {
	capacity := diameter * portionsPerCentimeter
	lower := capacity - portionTolerance
	upper := capacity + portionTolerance

	if float64(totalPortions) < lower || float64(totalPortions) > upper {
		return &CapacityError{
			TotalPortions: totalPortions,
			Capacity:      capacity,
			LowerBound:    lower,
			UpperBound:    upper,
		}
	}
	return nil
}

// parseDiameter extracts the numeric diameter embedded in a free-text
// size label such as "24cm" or "torta 30 cm". Everything that is not a
// digit or a dot is discarded before parsing.
func parseDiameter(sizeLabel string) (float64, error) {
	var digits strings.Builder
	for _, r := range sizeLabel {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}

	diameter, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil || diameter <= 0 {
		return 0, ErrInvalidSizeLabel
	}
	return diameter, nil
}
