package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through fulfillment.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Cancellable reports whether the order may still be cancelled by the buyer.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// Order is a checkout snapshot of a cart. Item names and prices are
// copied at checkout time so later catalog edits do not rewrite history.
type Order struct {
	ID              uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string      `gorm:"column:order_number;not null;uniqueIndex"`
	UserID          uuid.UUID   `gorm:"column:user_id;type:uuid;not null"`
	Status          OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalCents      int64       `gorm:"column:total_cents;not null"`
	ShippingName    string      `gorm:"column:shipping_name;not null"`
	ShippingAddress string      `gorm:"column:shipping_address;not null"`
	ShippingCity    string      `gorm:"column:shipping_city;not null"`
	ShippingPostal  string      `gorm:"column:shipping_postal;not null"`
	ShippingPhone   *string     `gorm:"column:shipping_phone"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one snapshotted line of an order.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	LineTotalCents int64     `gorm:"column:line_total_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
