package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
	OrderRejected OrderStatus = "rejected"
	OrderPaid     OrderStatus = "paid"
)

// validNext encodes the order state machine:
// pending -> accepted -> paid, pending -> rejected.
// rejected and paid are terminal.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:  {OrderAccepted: true, OrderRejected: true},
	OrderAccepted: {OrderPaid: true},
	OrderRejected: {},
	OrderPaid:     {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Order is created only by the order workflow engine and mutated only through
// status transitions. TotalPrice is fixed at placement time.
type Order struct {
	BaseModel
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"` // buyer
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status     OrderStatus     `gorm:"type:varchar(50);not null;default:pending" json:"status"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is one line of an order. Composite key (order_id, product_id).
// SellerID references the listing the line was filled from. PriceAtPurchase
// is a snapshot taken at placement and never changes afterwards, regardless
// of later listing price updates.
type OrderItem struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`

	PriceAtPurchase decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_at_purchase"`
	Quantity        int             `gorm:"not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
