package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/internal/categories"
	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
	"github.com/aresapparel/apparel-backend/pkg/types"
)

// ListQuery captures the public listing parameters.
type ListQuery struct {
	CategorySlug string
	FeaturedOnly bool
	Page         pagination.Params
}

// SearchQuery captures the public search parameters.
type SearchQuery struct {
	Query         string
	CategorySlug  string
	MinPriceCents *int64
	MaxPriceCents *int64
	Page          pagination.Params
}

// Service exposes catalog read and admin operations.
type Service interface {
	List(ctx context.Context, q ListQuery) ([]ProductDTO, types.PageMeta, error)
	Search(ctx context.Context, q SearchQuery) ([]ProductDTO, types.PageMeta, error)
	Featured(ctx context.Context) ([]ProductDTO, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*ProductDTO, error)
	Create(ctx context.Context, input UpsertProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo interface {
	List(ctx context.Context, filter ListFilter, p pagination.Params) ([]models.Product, int64, error)
	Search(ctx context.Context, filter SearchFilter, p pagination.Params) ([]models.Product, int64, error)
	Featured(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       productRepo
	categories categoryChecker
	assets     config.AssetsConfig
}

// NewService builds a product service backed by the provided stack.
func NewService(repo productRepo, categoryRepo categoryChecker, assets config.AssetsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, categories: categoryRepo, assets: assets}, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]ProductDTO, types.PageMeta, error) {
	page := pagination.Normalize(q.Page)
	filter := ListFilter{
		CategorySlug: strings.ToLower(strings.TrimSpace(q.CategorySlug)),
		FeaturedOnly: q.FeaturedOnly,
	}

	list, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, types.PageMeta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return s.toDTOs(list), pagination.Meta(page, total), nil
}

func (s *service) Search(ctx context.Context, q SearchQuery) ([]ProductDTO, types.PageMeta, error) {
	if q.MinPriceCents != nil && q.MaxPriceCents != nil && *q.MinPriceCents > *q.MaxPriceCents {
		return nil, types.PageMeta{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot exceed max_price")
	}

	page := pagination.Normalize(q.Page)
	filter := SearchFilter{
		Query:         strings.TrimSpace(q.Query),
		CategorySlug:  strings.ToLower(strings.TrimSpace(q.CategorySlug)),
		MinPriceCents: q.MinPriceCents,
		MaxPriceCents: q.MaxPriceCents,
	}

	list, total, err := s.repo.Search(ctx, filter, page)
	if err != nil {
		return nil, types.PageMeta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return s.toDTOs(list), pagination.Meta(page, total), nil
}

func (s *service) Featured(ctx context.Context) ([]ProductDTO, error) {
	list, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "featured products")
	}
	return s.toDTOs(list), nil
}

// GetByIDOrSlug resolves the path segment as a UUID first and falls back
// to a slug lookup, so /products/{id} and /products/{slug} share a route.
func (s *service) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*ProductDTO, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product identifier is required")
	}

	var (
		product *models.Product
		err     error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		product, err = s.repo.FindByID(ctx, id)
	} else {
		product, err = s.repo.FindBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return NewProductDTO(product, s.assets), nil
}

func (s *service) Create(ctx context.Context, input UpsertProductInput) (*ProductDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = categories.Slugify(input.Name)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Image:       input.Image,
		Sizes:       pq.StringArray(input.Sizes),
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return NewProductDTO(created, s.assets), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		product.Slug = categories.Slugify(slug)
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.PriceCents > 0 {
		product.PriceCents = input.PriceCents
	}
	if input.Stock >= 0 {
		product.Stock = input.Stock
	}
	if input.CategoryID != uuid.Nil {
		if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
		product.Category = nil
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Sizes != nil {
		product.Sizes = pq.StringArray(input.Sizes)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return NewProductDTO(updated, s.assets), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) validateInput(ctx context.Context, input UpsertProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return s.ensureCategory(ctx, input.CategoryID)
}

func (s *service) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func (s *service) toDTOs(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *NewProductDTO(&list[i], s.assets))
	}
	return out
}
