package models

import "github.com/shopspring/decimal"

// RawMaterial represents a purchased lot of an ingredient.
// Per-use costs are derived from the bulk quantity and total price.
type RawMaterial struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BulkQuantity   decimal.Decimal `json:"bulkQuantity"`
	BulkUnit       string          `json:"bulkUnit"`
	BulkTotalPrice decimal.Decimal `json:"bulkTotalPrice"`
}
