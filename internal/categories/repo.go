package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
)

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID loads a single category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug loads a category by its URL slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlugs loads the categories matching the provided slugs, keyed by slug.
func (r *Repository) FindBySlugs(ctx context.Context, slugs []string) (map[string]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Category, len(list))
	for _, c := range list {
		out[c.Slug] = c
	}
	return out, nil
}

// Create inserts a new category.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves the provided category.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Fails when products still reference it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats aggregates product counts and the price range under one category.
func (r *Repository) Stats(ctx context.Context, categoryID uuid.UUID) (*CategoryStatsDTO, error) {
	var row struct {
		TotalProducts int64
		InStock       int64
		MinPriceCents int64
		MaxPriceCents int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select(
			"COUNT(*) AS total_products, "+
				"COUNT(*) FILTER (WHERE stock > 0) AS in_stock, "+
				"COALESCE(MIN(price_cents), 0) AS min_price_cents, "+
				"COALESCE(MAX(price_cents), 0) AS max_price_cents",
		).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &CategoryStatsDTO{
		CategoryID:    categoryID,
		TotalProducts: row.TotalProducts,
		InStock:       row.InStock,
		OutOfStock:    row.TotalProducts - row.InStock,
		MinPriceCents: row.MinPriceCents,
		MaxPriceCents: row.MaxPriceCents,
	}, nil
}
