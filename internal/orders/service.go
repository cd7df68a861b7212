package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/internal/cart"
	"github.com/aresapparel/apparel-backend/internal/products"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/logger"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
	"github.com/aresapparel/apparel-backend/pkg/types"
)

const orderNumberPrefix = "ARES"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockRepo interface {
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

// Service executes checkout and exposes the buyer's order history.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, shipping ShippingDetails) (*OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]OrderDTO, types.PageMeta, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	Track(ctx context.Context, userID uuid.UUID, orderNumber string) (*TrackingDTO, error)
}

type service struct {
	tx     txRunner
	orders OrderRepository
	cart   cart.CartRepository
	stock  func(tx *gorm.DB) stockRepo
	logg   *logger.Logger
}

// NewService builds the orders service. The stock factory defaults to the
// product repository when nil.
func NewService(tx txRunner, ordersRepo OrderRepository, cartRepo cart.CartRepository, stockFactory func(tx *gorm.DB) stockRepo, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if stockFactory == nil {
		stockFactory = func(tx *gorm.DB) stockRepo {
			return products.NewRepository(tx)
		}
	}
	return &service{
		tx:     tx,
		orders: ordersRepo,
		cart:   cartRepo,
		stock:  stockFactory,
		logg:   logg,
	}, nil
}

// Checkout converts the user's cart into an order inside one transaction.
// Cart rows whose product no longer exists are dropped; everything else is
// snapshotted at the prices current when the transaction runs.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, shipping ShippingDetails) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := normalizeShipping(&shipping); err != nil {
		return nil, err
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cart.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)
		stock := s.stock(tx)

		items, err := cartRepo.ListForUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		ids := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		catalog, err := stock.FindActiveByIDs(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
		}

		var (
			orderItems []models.OrderItem
			totalCents int64
		)
		for _, item := range items {
			product, ok := catalog[item.ProductID]
			if !ok {
				continue
			}
			if err := stock.DecrementStock(ctx, product.ID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("insufficient stock for %s", product.Name))
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}
			lineTotal := int64(item.Quantity) * product.PriceCents
			orderItems = append(orderItems, models.OrderItem{
				ProductID:      product.ID,
				ProductName:    product.Name,
				UnitPriceCents: product.PriceCents,
				Quantity:       item.Quantity,
				LineTotalCents: lineTotal,
			})
			totalCents += lineTotal
		}
		if len(orderItems) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart has no available items")
		}

		order := &models.Order{
			OrderNumber:     newOrderNumber(time.Now().UTC()),
			UserID:          userID,
			Status:          models.OrderStatusPending,
			TotalCents:      totalCents,
			ShippingName:    shipping.Name,
			ShippingAddress: shipping.Address,
			ShippingCity:    shipping.City,
			ShippingPostal:  shipping.PostalCode,
			ShippingPhone:   shipping.Phone,
			Items:           orderItems,
		}
		if err := ordersRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		if _, err := cartRepo.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		infoCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":      userID.String(),
			"order_number": created.OrderNumber,
			"total_cents":  created.TotalCents,
		})
		s.logg.Info(infoCtx, "order.created")
	}

	return newOrderDTO(created), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]OrderDTO, types.PageMeta, error) {
	if userID == uuid.Nil {
		return nil, types.PageMeta{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	p = pagination.Normalize(p)

	list, total, err := s.orders.ListForUser(ctx, userID, p)
	if err != nil {
		return nil, types.PageMeta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *newOrderDTO(&list[i]))
	}
	return out, pagination.Meta(p, total), nil
}

func (s *service) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return newOrderDTO(order), nil
}

// Cancel transitions a pending or processing order to cancelled.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order can no longer be cancelled")
	}

	affected, err := s.orders.UpdateStatus(ctx, userID, orderID, models.OrderStatusCancelled)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel order")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order.Status = models.OrderStatusCancelled
	return newOrderDTO(order), nil
}

func (s *service) Track(ctx context.Context, userID uuid.UUID, orderNumber string) (*TrackingDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	number := strings.ToUpper(strings.TrimSpace(orderNumber))
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}

	order, err := s.orders.FindByNumberForUser(ctx, userID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup order")
	}
	return newTrackingDTO(order), nil
}

func (s *service) findForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.orders.FindForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup order")
	}
	return order, nil
}

func normalizeShipping(shipping *ShippingDetails) error {
	shipping.Name = strings.TrimSpace(shipping.Name)
	shipping.Address = strings.TrimSpace(shipping.Address)
	shipping.City = strings.TrimSpace(shipping.City)
	shipping.PostalCode = strings.TrimSpace(shipping.PostalCode)
	if shipping.Name == "" || shipping.Address == "" || shipping.City == "" || shipping.PostalCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping details are incomplete")
	}
	return nil
}

const orderNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newOrderNumber produces a public identifier like ARES-20260829-X7K2QD.
func newOrderNumber(now time.Time) string {
	suffix := make([]byte, 6)
	random := make([]byte, 6)
	if _, err := rand.Read(random); err != nil {
		// fall back to a time-derived suffix, uniqueness is enforced by the index
		nanos := now.UnixNano()
		for i := range suffix {
			suffix[i] = orderNumberCharset[nanos%int64(len(orderNumberCharset))]
			nanos /= int64(len(orderNumberCharset))
		}
	} else {
		for i, b := range random {
			suffix[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
		}
	}
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, now.Format("20060102"), suffix)
}
