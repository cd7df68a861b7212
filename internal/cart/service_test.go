package cart

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
)

// memCartRepo mirrors the persistence semantics the service relies on:
// one row per (user, product), additive upsert, ownership in the WHERE.
type memCartRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.CartItem
	seq   int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: map[uuid.UUID]*models.CartItem{}}
}

func (m *memCartRepo) WithTx(tx *gorm.DB) CartRepository { return m }

func (m *memCartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CartItem
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memCartRepo) FindForUser(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[itemID]; ok && item.UserID == userID {
		copied := *item
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCartRepo) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCartRepo) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += qty
			item.UpdatedAt = time.Now()
			return nil
		}
	}
	m.seq++
	id := uuid.New()
	m.items[id] = &models.CartItem{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: time.Now().Add(time.Duration(m.seq) * time.Millisecond),
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *memCartRepo) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[itemID]; ok && item.UserID == userID {
		item.Quantity = qty
		return 1, nil
	}
	return 0, nil
}

func (m *memCartRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[itemID]; ok && item.UserID == userID {
		delete(m.items, itemID)
		return 1, nil
	}
	return 0, nil
}

func (m *memCartRepo) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
			count++
		}
	}
	return count, nil
}

func (m *memCartRepo) SumQuantity(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, item := range m.items {
		if item.UserID == userID {
			total += int64(item.Quantity)
		}
	}
	return total, nil
}

type memProductLoader struct {
	products map[uuid.UUID]models.Product
}

func (m *memProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memProductLoader) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := map[uuid.UUID]models.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func seedProduct(loader *memProductLoader, priceCents int64) uuid.UUID {
	id := uuid.New()
	loader.products[id] = models.Product{
		ID:         id,
		Name:       "Seed Product",
		Slug:       "seed-" + id.String(),
		PriceCents: priceCents,
		Stock:      50,
		IsActive:   true,
	}
	return id
}

func newTestStack(t *testing.T) (Service, *memCartRepo, *memProductLoader) {
	t.Helper()
	repo := newMemCartRepo()
	loader := &memProductLoader{products: map[uuid.UUID]models.Product{}}
	svc, err := NewService(repo, passthroughTx{}, loader, config.AssetsConfig{BaseURL: "http://localhost"}, nil)
	require.NoError(t, err)
	return svc, repo, loader
}

func TestAddItemFoldsIntoSingleRow(t *testing.T) {
	svc, repo, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := seedProduct(loader, 50000)

	first, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := svc.AddItem(ctx, userID, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, first.ID, second.ID)

	items, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := seedProduct(loader, 50000)

	_, err := svc.AddItem(ctx, userID, productID, 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.AddItem(ctx, userID, uuid.New(), 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()

	id := uuid.New()
	loader.products[id] = models.Product{ID: id, Name: "Retired", PriceCents: 1000, IsActive: false}

	_, err := svc.AddItem(ctx, uuid.New(), id, 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestViewTotalsMatchLineSums(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()

	productA := seedProduct(loader, 50000)  // Rs. 500.00
	productB := seedProduct(loader, 120000) // Rs. 1,200.00

	_, err := svc.AddItem(ctx, userID, productA, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, productB, 1)
	require.NoError(t, err)

	view, err := svc.View(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Summary.TotalItems)
	assert.Equal(t, int64(220000), view.Summary.TotalPriceCents)
	assert.Equal(t, "2200.00", view.Summary.TotalPrice)
	assert.Equal(t, "Rs. 2,200.00", view.Summary.TotalPriceDisplay)
	assert.False(t, view.Summary.IsEmpty)

	var lineSum int64
	for _, entry := range view.Items {
		lineSum += entry.LineTotalCents
	}
	assert.Equal(t, view.Summary.TotalPriceCents, lineSum)
}

func TestViewSurfacesOrphanedItems(t *testing.T) {
	svc, repo, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()

	productID := seedProduct(loader, 75000)
	_, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)

	ghostID := seedProduct(loader, 99900)
	_, err = svc.AddItem(ctx, userID, ghostID, 4)
	require.NoError(t, err)
	delete(loader.products, ghostID)

	view, err := svc.View(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	var orphan *CartEntry
	for i := range view.Items {
		if view.Items[i].Unavailable {
			orphan = &view.Items[i]
		}
	}
	require.NotNil(t, orphan, "expected an unavailable entry")
	assert.Nil(t, orphan.Product)
	assert.Equal(t, ghostID, orphan.ProductID)
	assert.Zero(t, orphan.LineTotalCents)

	assert.Equal(t, 2, view.Summary.TotalItems)
	assert.Equal(t, int64(150000), view.Summary.TotalPriceCents)
	assert.False(t, view.Summary.IsEmpty)

	// orphaned rows still count toward the badge until removed
	count, err := svc.ItemCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	_ = repo
}

func TestViewOrphanOnlyCartIsNotEmpty(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()

	ghostID := seedProduct(loader, 45000)
	_, err := svc.AddItem(ctx, userID, ghostID, 3)
	require.NoError(t, err)
	delete(loader.products, ghostID)

	view, err := svc.View(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].Unavailable)

	// the row is still in the cart even though it prices at zero
	assert.False(t, view.Summary.IsEmpty)
	assert.Zero(t, view.Summary.TotalItems)
	assert.Zero(t, view.Summary.TotalPriceCents)
}

func TestUpdateQuantityEnforcesOwnership(t *testing.T) {
	svc, repo, loader := newTestStack(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	productID := seedProduct(loader, 50000)

	item, err := svc.AddItem(ctx, owner, productID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, stranger, item.ID, 9)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	unchanged, err := repo.FindForUser(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Quantity)

	updated, err := svc.UpdateQuantity(ctx, owner, item.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := seedProduct(loader, 50000)

	item, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, userID, item.ID, 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRemoveItemTwice(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := seedProduct(loader, 50000)

	item, err := svc.AddItem(ctx, userID, productID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, userID, item.ID))

	err = svc.RemoveItem(ctx, userID, item.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	view, err := svc.View(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestClearCartThenView(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, seedProduct(loader, 50000), 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, seedProduct(loader, 30000), 1)
	require.NoError(t, err)

	count, err := svc.ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	view, err := svc.View(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Summary.IsEmpty)
	assert.Zero(t, view.Summary.TotalItems)
	assert.Zero(t, view.Summary.TotalPriceCents)

	// clearing an empty cart succeeds with zero
	count, err = svc.ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestItemCountSkipsProductJoin(t *testing.T) {
	svc, _, loader := newTestStack(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, seedProduct(loader, 50000), 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, seedProduct(loader, 30000), 5)
	require.NoError(t, err)

	count, err := svc.ItemCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
