package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
)

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (s *stubUserRepo) add(name, email string) *models.User {
	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Role:     models.UserRoleCustomer,
		IsActive: true,
	}
	s.users[user.ID] = user
	return user
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(ctx context.Context, p pagination.Params) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if dto.Name != nil {
		user.Name = *dto.Name
	}
	if dto.Phone != nil {
		user.Phone = dto.Phone
	}
	return user, nil
}

func newTestService(t *testing.T) (Service, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestGetPublicOmitsPrivateFields(t *testing.T) {
	svc, repo := newTestService(t)
	user := repo.add("Kasun Perera", "kasun@example.com")

	dto, err := svc.GetPublic(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get public: %v", err)
	}
	if dto.Name != user.Name {
		t.Fatalf("expected name %q, got %q", user.Name, dto.Name)
	}

	_, err = svc.GetPublic(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	svc, repo := newTestService(t)
	user := repo.add("Nimali Fernando", "nimali@example.com")

	profile, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, profile.Email)
	}

	newName := "Nimali F."
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileDTO{Name: &newName})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected updated name %q, got %q", newName, updated.Name)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Ghost"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileDTO{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPublic(t *testing.T) {
	svc, repo := newTestService(t)
	repo.add("First User", "first@example.com")
	repo.add("Second User", "second@example.com")

	list, meta, err := svc.ListPublic(context.Background(), pagination.Params{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	if meta.Total != 2 {
		t.Fatalf("expected total 2, got %d", meta.Total)
	}
}
