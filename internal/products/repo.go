package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
)

// Recently created products count as featured on the storefront even
// without the explicit flag.
const freshnessWindow = 30 * 24 * time.Hour

const featuredLimit = 8

// ListFilter narrows the catalog listing.
type ListFilter struct {
	CategoryID      *uuid.UUID
	CategorySlug    string
	FeaturedOnly    bool
	IncludeInactive bool
}

// SearchFilter narrows the catalog search.
type SearchFilter struct {
	Query         string
	CategorySlug  string
	MinPriceCents *int64
	MaxPriceCents *int64
}

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// List returns a page of products plus the unpaginated total.
func (r *Repository) List(ctx context.Context, filter ListFilter, p pagination.Params) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if !filter.IncludeInactive {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.FeaturedOnly {
		query = query.Where("products.is_featured = ? OR products.created_at >= ?", true, time.Now().Add(-freshnessWindow))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Product
	err := query.
		Preload("Category").
		Order("products.created_at DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Search matches active products by name or description with optional
// category and price bounds.
func (r *Repository) Search(ctx context.Context, filter SearchFilter, p pagination.Params) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("products.is_active = ?", true)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("products.name ILIKE ? OR products.description ILIKE ?", pattern, pattern)
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.MinPriceCents != nil {
		query = query.Where("products.price_cents >= ?", *filter.MinPriceCents)
	}
	if filter.MaxPriceCents != nil {
		query = query.Where("products.price_cents <= ?", *filter.MaxPriceCents)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Product
	err := query.
		Preload("Category").
		Order("products.created_at DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Featured returns up to eight products that are flagged featured or were
// created inside the freshness window.
func (r *Repository) Featured(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true).
		Where("is_featured = ? OR created_at >= ?", true, time.Now().Add(-freshnessWindow)).
		Order("is_featured DESC, created_at DESC").
		Limit(featuredLimit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID loads a product with its category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a product by its URL slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the products matching ids regardless of status, keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", ids).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]models.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// FindActiveByIDs loads the active products matching ids, keyed by id.
func (r *Repository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]models.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the provided product.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock atomically reduces stock, guarded so it never goes negative.
// Returns gorm.ErrRecordNotFound when the product is missing or stock is short.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
