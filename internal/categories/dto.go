package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	Route     string    `json:"route"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryStatsDTO summarizes the catalog under one category.
type CategoryStatsDTO struct {
	CategoryID    uuid.UUID `json:"category_id"`
	TotalProducts int64     `json:"total_products"`
	InStock       int64     `json:"in_stock"`
	OutOfStock    int64     `json:"out_of_stock"`
	MinPriceCents int64     `json:"min_price_cents"`
	MaxPriceCents int64     `json:"max_price_cents"`
}

// UpsertCategoryInput carries the admin create/update payload.
type UpsertCategoryInput struct {
	Name  string
	Slug  string
	Image *string
}

// NewCategoryDTO maps the model into its transport shape, resolving the
// image reference against the assets config.
func NewCategoryDTO(c *models.Category, assets config.AssetsConfig) *CategoryDTO {
	if c == nil {
		return nil
	}
	image := assets.StaticImageURL(assets.PlaceholderImage)
	if c.Image != nil && *c.Image != "" {
		image = assets.StaticImageURL(*c.Image)
	}

	return &CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Image:     image,
		Route:     "/category/" + c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
