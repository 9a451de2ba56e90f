package model

import "github.com/shopspring/decimal"

// Product is the catalog-level definition of a good. Actual sale terms
// (price, stock) live on each seller's Listing.
type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(150);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price" validate:"dec_gt_zero"`

	Listings []Listing `gorm:"foreignKey:ProductID" json:"listings,omitempty"`
}
