package costing

import "github.com/shopspring/decimal"

// Ingredient is one raw-material usage within a recipe, paired with the
// lot it is drawn from. A nil Lot means the material reference could not
// be resolved; such ingredients contribute zero cost instead of aborting
// the whole computation.
type Ingredient struct {
	Quantity decimal.Decimal
	Unit     string
	Lot      *Lot
}

// Recipe is the costing view of a recipe batch.
type Recipe struct {
	YieldPortions int
	Ingredients   []Ingredient
}

// PortionPricing holds the per-portion figures derived from a recipe's
// total cost and yield.
type PortionPricing struct {
	Cost          decimal.Decimal `json:"cost"`
	SuggestedLow  decimal.Decimal `json:"suggestedLow"`
	SuggestedHigh decimal.Decimal `json:"suggestedHigh"`
}

// Summary is the derived cost picture for one cake. PerPortion is nil
// when the cake has no recipe or the recipe declares no yield; callers
// must render that as "unavailable", which is a different thing from a
// recipe that genuinely costs zero.
type Summary struct {
	TotalCost  decimal.Decimal `json:"totalCost"`
	PerPortion *PortionPricing `json:"perPortion"`
}

var (
	suggestedLowFactor  = decimal.NewFromFloat(1.5)
	suggestedHighFactor = decimal.NewFromInt(2)
)

// Summarize computes the cost summary for a recipe. It never fails:
// a nil recipe yields an entirely unavailable summary, and unresolved
// ingredients are skipped.
func Summarize(rec *Recipe) Summary {
	if rec == nil {
		return Summary{TotalCost: decimal.Zero}
	}

	total := decimal.Zero
	for _, ing := range rec.Ingredients {
		if ing.Lot == nil {
			continue
		}
		total = total.Add(IngredientCost(ing.Quantity, ing.Unit, *ing.Lot))
	}

	summary := Summary{TotalCost: total}
	if rec.YieldPortions > 0 {
		perPortion := total.Div(decimal.NewFromInt(int64(rec.YieldPortions)))
		summary.PerPortion = &PortionPricing{
			Cost:          perPortion,
			SuggestedLow:  perPortion.Mul(suggestedLowFactor),
			SuggestedHigh: perPortion.Mul(suggestedHighFactor),
		}
	}
	return summary
}
