package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
)

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Cart Tester",
		Email:        fmt.Sprintf("cart-%s@example.com", uuid.NewString()),
		PasswordHash: "unused",
		Role:         models.UserRoleCustomer,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateCartProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	category := &models.Category{
		Name: "Cart Category",
		Slug: fmt.Sprintf("cart-category-%s", uuid.NewString()),
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := &models.Product{
		Name:       "Cart Product",
		Slug:       fmt.Sprintf("cart-product-%s", uuid.NewString()),
		PriceCents: 50000,
		Stock:      20,
		CategoryID: category.ID,
		IsActive:   true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryAddOrIncrementFoldsRows(t *testing.T) {
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

	user := mustCreateTestUser(t, tx)
	product := mustCreateCartProduct(t, tx)

	if err := repo.AddOrIncrement(ctx, user.ID, product.ID, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := repo.AddOrIncrement(ctx, user.ID, product.ID, 3); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items, err := repo.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single folded row, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}

	found, err := repo.FindByUserAndProduct(ctx, user.ID, product.ID)
	if err != nil {
		t.Fatalf("find by user and product: %v", err)
	}
	if found.ID != items[0].ID {
		t.Fatalf("expected %s, got %s", items[0].ID, found.ID)
	}
}

func TestRepositoryOwnershipPredicates(t *testing.T) {
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

	owner := mustCreateTestUser(t, tx)
	stranger := mustCreateTestUser(t, tx)
	product := mustCreateCartProduct(t, tx)

	if err := repo.AddOrIncrement(ctx, owner.ID, product.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	item, err := repo.FindByUserAndProduct(ctx, owner.ID, product.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	affected, err := repo.UpdateQuantity(ctx, stranger.ID, item.ID, 9)
	if err != nil {
		t.Fatalf("cross-user update: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected no rows affected for stranger, got %d", affected)
	}

	affected, err = repo.Delete(ctx, stranger.ID, item.ID)
	if err != nil {
		t.Fatalf("cross-user delete: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected no rows deleted for stranger, got %d", affected)
	}

	if _, err := repo.FindForUser(ctx, stranger.ID, item.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found for stranger, got %v", err)
	}

	affected, err = repo.UpdateQuantity(ctx, owner.ID, item.ID, 9)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row affected, got %d", affected)
	}
	reloaded, err := repo.FindForUser(ctx, owner.ID, item.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Quantity != 9 {
		t.Fatalf("expected quantity 9, got %d", reloaded.Quantity)
	}
}

func TestRepositoryClearAndSum(t *testing.T) {
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

	user := mustCreateTestUser(t, tx)
	first := mustCreateCartProduct(t, tx)
	second := mustCreateCartProduct(t, tx)

	if err := repo.AddOrIncrement(ctx, user.ID, first.ID, 2); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if err := repo.AddOrIncrement(ctx, user.ID, second.ID, 5); err != nil {
		t.Fatalf("add second: %v", err)
	}

	sum, err := repo.SumQuantity(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 7 {
		t.Fatalf("expected sum 7, got %d", sum)
	}

	cleared, err := repo.Clear(ctx, user.ID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared rows, got %d", cleared)
	}

	sum, err = repo.SumQuantity(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum after clear: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected empty cart sum, got %d", sum)
	}
}
