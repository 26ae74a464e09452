package models

import "github.com/shopspring/decimal"

// Cake represents a product sold by the portion. A cake without a
// recipe is a valid state: its cost is reported as unavailable.
type Cake struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Recipe *Recipe `json:"recipe,omitempty"`
}

// Recipe describes one batch of a cake: how many portions the batch
// yields and which raw materials it consumes.
type Recipe struct {
	YieldPortions int                `json:"yieldPortions"`
	Ingredients   []RecipeIngredient `json:"ingredients"`
}

// RecipeIngredient is one raw-material usage within a recipe batch.
type RecipeIngredient struct {
	MaterialID string          `json:"materialId"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
}
