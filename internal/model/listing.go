package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing is one seller's price/stock offer for a catalog product. Composite
// key (user_id, product_id): one listing per seller per product.
//
// StockQuantity never goes below zero: it is decremented only by a successful
// order placement and incremented only when that seller rejects an order.
type Listing struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id" validate:"uuid_required"`

	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price" validate:"dec_gt_zero"`
	StockQuantity int             `gorm:"not null;check:stock_quantity >= 0" json:"stock_quantity" validate:"gte=0"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
