package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// Service is the cart aggregation engine. All operations take the owning
// user explicitly; nothing is read from ambient request state.
type Service interface {
	View(ctx context.Context, userID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartItemDTO, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*CartItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) (int64, error)
	ItemCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
	assets   config.AssetsConfig
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products productLoader, assets config.AssetsConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		products: products,
		assets:   assets,
		logg:     logg,
	}, nil
}

// View renders the user's cart with live product data. Rows whose product
// no longer exists are surfaced as unavailable and excluded from totals.
func (s *service) View(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	loaded := map[uuid.UUID]models.Product{}
	if len(productIDs) > 0 {
		loaded, err = s.products.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
		}
	}

	entries := make([]CartEntry, 0, len(items))
	var totalItems int
	var totalCents int64

	for _, item := range items {
		product, ok := loaded[item.ProductID]
		if !ok {
			if s.logg != nil {
				warnCtx := s.logg.WithFields(ctx, map[string]any{
					"user_id":      userID.String(),
					"cart_item_id": item.ID.String(),
					"product_id":   item.ProductID.String(),
				})
				s.logg.Warn(warnCtx, "cart.orphaned_item")
			}
			entries = append(entries, newOrphanEntry(item))
			continue
		}

		entries = append(entries, newAvailableEntry(item, product, s.assets))
		totalItems += item.Quantity
		totalCents += int64(item.Quantity) * product.PriceCents
	}

	return &CartView{
		Items:   entries,
		Summary: newSummary(len(entries), totalItems, totalCents),
	}, nil
}

// AddItem folds qty into the user's line for the product, creating the
// line when absent. The upsert runs inside a transaction so concurrent
// adds on the same (user, product) never lose quantity.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartItemDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var item *models.CartItem
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.AddOrIncrement(ctx, userID, productID, qty); err != nil {
			return err
		}
		row, err := repo.FindByUserAndProduct(ctx, userID, productID)
		if err != nil {
			return err
		}
		item = row
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	return newCartItemDTO(item), nil
}

// UpdateQuantity replaces the quantity on an owned row. Rows belonging to
// another user are indistinguishable from missing rows.
func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*CartItemDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	affected, err := s.repo.UpdateQuantity(ctx, userID, itemID, qty)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	item, err := s.repo.FindForUser(ctx, userID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart item")
	}
	return newCartItemDTO(item), nil
}

// RemoveItem deletes an owned row. A second removal reports NotFound.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	affected, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// ClearCart deletes every row for the user and returns the removed count.
// Clearing an already empty cart is a success with count zero.
func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	count, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return count, nil
}

// ItemCount sums the user's quantities without touching the catalog.
func (s *service) ItemCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	count, err := s.repo.SumQuantity(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
	}
	return count, nil
}
