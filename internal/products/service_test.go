package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
)

type stubProductRepo struct {
	byID     map[uuid.UUID]*models.Product
	bySlug   map[string]*models.Product
	featured []models.Product
	listed   []models.Product
	total    int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		byID:   map[uuid.UUID]*models.Product{},
		bySlug: map[string]*models.Product{},
	}
}

func (s *stubProductRepo) add(p *models.Product) *models.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.byID[p.ID] = p
	s.bySlug[p.Slug] = p
	return p
}

func (s *stubProductRepo) List(ctx context.Context, filter ListFilter, p pagination.Params) ([]models.Product, int64, error) {
	return s.listed, s.total, nil
}

func (s *stubProductRepo) Search(ctx context.Context, filter SearchFilter, p pagination.Params) ([]models.Product, int64, error) {
	return s.listed, s.total, nil
}

func (s *stubProductRepo) Featured(ctx context.Context) ([]models.Product, error) {
	return s.featured, nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if p, ok := s.bySlug[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.add(product), nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.byID[product.ID] = product
	s.bySlug[product.Slug] = product
	return product, nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubCategoryChecker struct {
	known map[uuid.UUID]bool
}

func (s *stubCategoryChecker) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if s.known[id] {
		return &models.Category{ID: id, Name: "Men", Slug: "men"}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testAssets() config.AssetsConfig {
	return config.AssetsConfig{
		BaseURL:          "https://cdn.example.com",
		ProductPath:      "/storage/products",
		PlaceholderImage: "/images/placeholder.jpg",
	}
}

func newTestService(t *testing.T, repo *stubProductRepo, checker *stubCategoryChecker) Service {
	t.Helper()
	if checker == nil {
		checker = &stubCategoryChecker{known: map[uuid.UUID]bool{}}
	}
	svc, err := NewService(repo, checker, testAssets())
	require.NoError(t, err)
	return svc
}

func TestGetByIDOrSlugFallsBackToSlug(t *testing.T) {
	repo := newStubProductRepo()
	repo.add(&models.Product{Name: "Classic Tee", Slug: "classic-tee", PriceCents: 149950, Stock: 25, IsActive: true})

	svc := newTestService(t, repo, nil)

	dto, err := svc.GetByIDOrSlug(context.Background(), "Classic-Tee")
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", dto.Name)
	assert.Equal(t, int64(149950), dto.PriceCents)
	assert.Equal(t, "1499.50", dto.Price)
	assert.Equal(t, "Rs. 1,499.50", dto.PriceDisplay)
	assert.Equal(t, "In Stock", dto.StockStatus)
}

func TestGetByIDOrSlugPrefersID(t *testing.T) {
	repo := newStubProductRepo()
	p := repo.add(&models.Product{Name: "Hoodie", Slug: "hoodie", PriceCents: 500000, Stock: 3, IsActive: true})

	svc := newTestService(t, repo, nil)

	dto, err := svc.GetByIDOrSlug(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, p.ID, dto.ID)
	assert.Equal(t, "Only 3 left in stock", dto.StockStatus)
}

func TestGetByIDOrSlugHidesInactive(t *testing.T) {
	repo := newStubProductRepo()
	repo.add(&models.Product{Name: "Retired", Slug: "retired", IsActive: false})

	svc := newTestService(t, repo, nil)

	_, err := svc.GetByIDOrSlug(context.Background(), "retired")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateRequiresExistingCategory(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestService(t, repo, &stubCategoryChecker{known: map[uuid.UUID]bool{}})

	_, err := svc.Create(context.Background(), UpsertProductInput{
		Name:       "Cap",
		PriceCents: 1000,
		CategoryID: uuid.New(),
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateSlugifiesAndDefaultsActive(t *testing.T) {
	repo := newStubProductRepo()
	categoryID := uuid.New()
	svc := newTestService(t, repo, &stubCategoryChecker{known: map[uuid.UUID]bool{categoryID: true}})

	dto, err := svc.Create(context.Background(), UpsertProductInput{
		Name:       "Summer Linen Shirt",
		PriceCents: 350000,
		Stock:      40,
		CategoryID: categoryID,
		Sizes:      []string{"S", "M", "L"},
	})
	require.NoError(t, err)
	assert.Equal(t, "summer-linen-shirt", dto.Slug)
	assert.True(t, dto.IsActive)
	assert.Equal(t, []string{"S", "M", "L"}, dto.Sizes)
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	svc := newTestService(t, newStubProductRepo(), nil)

	min := int64(5000)
	max := int64(1000)
	_, _, err := svc.Search(context.Background(), SearchQuery{MinPriceCents: &min, MaxPriceCents: &max})
	require.Error(t, err)
}

func TestStockStatus(t *testing.T) {
	cases := map[int]string{
		-1: "Out of stock",
		0:  "Out of stock",
		1:  "Only 1 left in stock",
		9:  "Only 9 left in stock",
		10: "In Stock",
		50: "In Stock",
	}
	for stock, want := range cases {
		assert.Equal(t, want, StockStatus(stock))
	}
}
