package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/internal/products"
	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/money"
)

// CartEntry is one line of the rendered cart. Unavailable entries keep
// their identity so the owner can remove them, but carry no product and
// contribute nothing to the summary.
type CartEntry struct {
	ID               uuid.UUID            `json:"id"`
	ProductID        uuid.UUID            `json:"product_id"`
	Quantity         int                  `json:"quantity"`
	Unavailable      bool                 `json:"unavailable"`
	Product          *products.ProductDTO `json:"product"`
	LineTotalCents   int64                `json:"line_total_cents"`
	LineTotal        string               `json:"line_total"`
	LineTotalDisplay string               `json:"line_total_display"`
	CreatedAt        time.Time            `json:"created_at"`
}

// CartSummary aggregates the available lines of a cart.
type CartSummary struct {
	TotalItems        int    `json:"total_items"`
	TotalPriceCents   int64  `json:"total_price_cents"`
	TotalPrice        string `json:"total_price"`
	TotalPriceDisplay string `json:"total_price_display"`
	IsEmpty           bool   `json:"is_empty"`
}

// CartView is the full rendered cart for one user.
type CartView struct {
	Items   []CartEntry `json:"items"`
	Summary CartSummary `json:"summary"`
}

// CartItemDTO is the transport shape for a single cart row, returned by
// the mutating operations.
type CartItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCartItemDTO(item *models.CartItem) *CartItemDTO {
	if item == nil {
		return nil
	}
	return &CartItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func newAvailableEntry(item models.CartItem, product models.Product, assets config.AssetsConfig) CartEntry {
	lineTotal := int64(item.Quantity) * product.PriceCents
	return CartEntry{
		ID:               item.ID,
		ProductID:        item.ProductID,
		Quantity:         item.Quantity,
		Product:          products.NewProductDTO(&product, assets),
		LineTotalCents:   lineTotal,
		LineTotal:        money.Amount(lineTotal),
		LineTotalDisplay: money.Display(lineTotal),
		CreatedAt:        item.CreatedAt,
	}
}

func newOrphanEntry(item models.CartItem) CartEntry {
	return CartEntry{
		ID:               item.ID,
		ProductID:        item.ProductID,
		Quantity:         item.Quantity,
		Unavailable:      true,
		LineTotal:        money.Amount(0),
		LineTotalDisplay: money.Display(0),
		CreatedAt:        item.CreatedAt,
	}
}

// entryCount includes unavailable entries, so a cart holding only
// orphaned lines still reports as non-empty.
func newSummary(entryCount, totalItems int, totalCents int64) CartSummary {
	return CartSummary{
		TotalItems:        totalItems,
		TotalPriceCents:   totalCents,
		TotalPrice:        money.Amount(totalCents),
		TotalPriceDisplay: money.Display(totalCents),
		IsEmpty:           entryCount == 0,
	}
}
