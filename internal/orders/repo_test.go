package orders

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("ARES_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("ARES_TEST_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustCreateOrderUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Order Tester",
		Email:        fmt.Sprintf("orders-%s@example.com", uuid.NewString()),
		PasswordHash: "unused",
		Role:         models.UserRoleCustomer,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateOrder(t *testing.T, repo *Repository, userID uuid.UUID) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:     fmt.Sprintf("ARES-20260829-%s", uuid.NewString()[:6]),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		TotalCents:      170000,
		ShippingName:    "Order Tester",
		ShippingAddress: "42 Galle Road",
		ShippingCity:    "Colombo",
		ShippingPostal:  "00300",
		Items: []models.OrderItem{
			{
				ProductID:      uuid.New(),
				ProductName:    "Alpine Jacket",
				UnitPriceCents: 120000,
				Quantity:       1,
				LineTotalCents: 120000,
			},
			{
				ProductID:      uuid.New(),
				ProductName:    "Logo Tee",
				UnitPriceCents: 25000,
				Quantity:       2,
				LineTotalCents: 50000,
			},
		},
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestRepositoryOrderFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	user := mustCreateOrderUser(t, tx)
	stranger := mustCreateOrderUser(t, tx)
	order := mustCreateOrder(t, repo, user.ID)

	fetched, err := repo.FindForUser(ctx, user.ID, order.ID)
	if err != nil {
		t.Fatalf("find for user: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Fatalf("expected 2 preloaded items, got %d", len(fetched.Items))
	}

	if _, err := repo.FindForUser(ctx, stranger.ID, order.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found for stranger, got %v", err)
	}

	byNumber, err := repo.FindByNumberForUser(ctx, user.ID, order.OrderNumber)
	if err != nil {
		t.Fatalf("find by number: %v", err)
	}
	if byNumber.ID != order.ID {
		t.Fatalf("expected %s, got %s", order.ID, byNumber.ID)
	}

	list, total, err := repo.ListForUser(ctx, user.ID, pagination.Params{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected one order, got total=%d len=%d", total, len(list))
	}

	affected, err := repo.UpdateStatus(ctx, stranger.ID, order.ID, models.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cross-user update: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected no rows for stranger, got %d", affected)
	}

	affected, err = repo.UpdateStatus(ctx, user.ID, order.ID, models.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row updated, got %d", affected)
	}
}
