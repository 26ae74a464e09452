package costing

import "github.com/shopspring/decimal"

// Lot is a snapshot of a raw material's bulk purchase record: the
// quantity bought and what the whole lot cost.
type Lot struct {
	Quantity   decimal.Decimal
	Unit       string
	TotalPrice decimal.Decimal
}

// IngredientCost returns the proportional monetary cost of using
// usageQty of a material purchased as the given lot.
//
// Degenerate inputs resolve to zero rather than an error: a usage and
// lot measured in different dimensions (no conversion exists between,
// say, liters and kilograms), a lot with zero total price, or a lot
// whose normalized quantity is zero all mean no cost can be attributed.
func IngredientCost(usageQty decimal.Decimal, usageUnit string, lot Lot) decimal.Decimal {
	usage := Normalize(usageQty, usageUnit)
	bulk := Normalize(lot.Quantity, lot.Unit)

	if usage.Dimension != bulk.Dimension {
		return decimal.Zero
	}
	if lot.TotalPrice.IsZero() || bulk.Value.IsZero() {
		return decimal.Zero
	}

	unitCost := lot.TotalPrice.Div(bulk.Value)
	return unitCost.Mul(usage.Value)
}
