package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
)

// OrderRepository is the persistence surface used by the orders service.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *models.Order) error
	ListForUser(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.Order, int64, error)
	FindForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	FindByNumberForUser(ctx context.Context, userID uuid.UUID, orderNumber string) (*models.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) (int64, error)
}

// Repository persists orders and their snapshotted lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an order repository over the provided gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create persists the order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// ListForUser returns the user's orders newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.Order, int64, error) {
	p = pagination.Normalize(p)

	base := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Order
	err := base.
		Preload("Items").
		Order("created_at DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindForUser loads one of the user's orders with its items.
func (r *Repository) FindForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByNumberForUser resolves an order by its public order number.
func (r *Repository) FindByNumberForUser(ctx context.Context, userID uuid.UUID, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus transitions an order owned by the user. Ownership is part of
// the predicate so a zero count covers both missing and foreign rows.
func (r *Repository) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND user_id = ?", orderID, userID).
		Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
