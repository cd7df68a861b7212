package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/money"
)

// ShippingDetails is the delivery information captured at checkout.
type ShippingDetails struct {
	Name       string  `json:"name" validate:"required,min=2,max=120"`
	Address    string  `json:"address" validate:"required,min=5"`
	City       string  `json:"city" validate:"required"`
	PostalCode string  `json:"postal_code" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
}

// OrderItemDTO is one snapshotted order line.
type OrderItemDTO struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	UnitPrice        string    `json:"unit_price"`
	UnitPriceDisplay string    `json:"unit_price_display"`
	Quantity         int       `json:"quantity"`
	LineTotalCents   int64     `json:"line_total_cents"`
	LineTotal        string    `json:"line_total"`
	LineTotalDisplay string    `json:"line_total_display"`
}

// OrderDTO is the transport shape of an order.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	OrderNumber     string         `json:"order_number"`
	Status          string         `json:"status"`
	TotalCents      int64          `json:"total_cents"`
	Total           string         `json:"total"`
	TotalDisplay    string         `json:"total_display"`
	ShippingName    string         `json:"shipping_name"`
	ShippingAddress string         `json:"shipping_address"`
	ShippingCity    string         `json:"shipping_city"`
	ShippingPostal  string         `json:"shipping_postal"`
	ShippingPhone   *string        `json:"shipping_phone,omitempty"`
	Items           []OrderItemDTO `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TrackingDTO exposes fulfillment progress without the full shipping block.
type TrackingDTO struct {
	OrderNumber  string    `json:"order_number"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	Total        string    `json:"total"`
	TotalDisplay string    `json:"total_display"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newOrderItemDTO(item models.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:               item.ID,
		ProductID:        item.ProductID,
		ProductName:      item.ProductName,
		UnitPriceCents:   item.UnitPriceCents,
		UnitPrice:        money.Amount(item.UnitPriceCents),
		UnitPriceDisplay: money.Display(item.UnitPriceCents),
		Quantity:         item.Quantity,
		LineTotalCents:   item.LineTotalCents,
		LineTotal:        money.Amount(item.LineTotalCents),
		LineTotalDisplay: money.Display(item.LineTotalCents),
	}
}

func newOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, newOrderItemDTO(item))
	}
	return &OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          string(order.Status),
		TotalCents:      order.TotalCents,
		Total:           money.Amount(order.TotalCents),
		TotalDisplay:    money.Display(order.TotalCents),
		ShippingName:    order.ShippingName,
		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingPostal:  order.ShippingPostal,
		ShippingPhone:   order.ShippingPhone,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func newTrackingDTO(order *models.Order) *TrackingDTO {
	if order == nil {
		return nil
	}
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return &TrackingDTO{
		OrderNumber:  order.OrderNumber,
		Status:       string(order.Status),
		TotalCents:   order.TotalCents,
		Total:        money.Amount(order.TotalCents),
		TotalDisplay: money.Display(order.TotalCents),
		ItemCount:    count,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
