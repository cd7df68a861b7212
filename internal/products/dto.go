package products

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/money"
)

// ProductDTO is the catalog payload returned to clients. Monetary fields
// carry cents, the raw decimal string and the display string, all derived
// from the same stored cents value.
type ProductDTO struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description"`
	PriceCents   int64            `json:"price_cents"`
	Price        string           `json:"price"`
	PriceDisplay string           `json:"price_display"`
	Stock        int              `json:"stock"`
	StockStatus  string           `json:"stock_status"`
	Image        string           `json:"image"`
	Sizes        []string         `json:"sizes"`
	IsActive     bool             `json:"is_active"`
	IsFeatured   bool             `json:"is_featured"`
	Category     *CategorySummary `json:"category,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CategorySummary surfaces limited category data on product payloads.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// UpsertProductInput carries the admin create/update payload.
type UpsertProductInput struct {
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	Stock       int
	CategoryID  uuid.UUID
	Image       *string
	Sizes       []string
	IsActive    *bool
	IsFeatured  *bool
}

// NewProductDTO builds the transport shape from the persisted model.
func NewProductDTO(p *models.Product, assets config.AssetsConfig) *ProductDTO {
	if p == nil {
		return nil
	}

	dto := &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		Price:        money.Amount(p.PriceCents),
		PriceDisplay: money.Display(p.PriceCents),
		Stock:        p.Stock,
		StockStatus:  StockStatus(p.Stock),
		Image:        assets.ProductImageURL(p.Image),
		Sizes:        append([]string{}, p.Sizes...),
		IsActive:     p.IsActive,
		IsFeatured:   p.IsFeatured,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Category != nil {
		dto.Category = &CategorySummary{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}

	return dto
}

// StockStatus renders the storefront availability label for a stock level.
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return "Out of stock"
	case stock < 10:
		return fmt.Sprintf("Only %d left in stock", stock)
	default:
		return "In Stock"
	}
}
