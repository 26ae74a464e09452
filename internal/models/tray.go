package models

import "github.com/shopspring/decimal"

// Tray is a confirmed composition of cake portions, sized by diameter
// (SizeLabel embeds the diameter, e.g. "24cm").
type Tray struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	SizeLabel string           `json:"sizeLabel"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Lines     []TrayLine       `json:"lines"`
}

// TrayLine places a number of portions of one cake in a tray.
// At most one line per cake exists in a given tray.
type TrayLine struct {
	CakeID            string          `json:"cakeId"`
	Portions          int             `json:"portions"`
	PriceContribution decimal.Decimal `json:"priceContribution"`
}
