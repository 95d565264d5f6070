package models

import "time"

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"        // Order placed, not paid yet
	OrderStatusPaid          OrderStatus = "paid"           // Payment service approved the charge
	OrderStatusPaymentFailed OrderStatus = "payment_failed" // Last payment attempt was declined
)

// PayableStatuses are the statuses a payment attempt may start from.
var PayableStatuses = []OrderStatus{OrderStatusPending, OrderStatusPaymentFailed}

// Payable reports whether a payment attempt may be made for an order in this status.
func (s OrderStatus) Payable() bool {
	for _, p := range PayableStatuses {
		if s == p {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string      `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID        string      `gorm:"index;not null;size:36" bson:"userId" json:"userId"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" bson:"products" json:"products"`
	Total         float64     `gorm:"not null" bson:"total" json:"total"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" bson:"status" json:"status"`
	TransactionID string      `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time   `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem is one line of an order. Product is only filled in on reads.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey" bson:"-" json:"-"`
	OrderID   string   `gorm:"index;size:36" bson:"-" json:"-"`
	ProductID string   `gorm:"size:36" bson:"productId" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" bson:"-" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" bson:"quantity" json:"quantity"`
	Price     float64  `gorm:"not null" bson:"price" json:"price"`
}
