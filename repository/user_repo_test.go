package repository

import (
	"context"
	"errors"
	"testing"

	"reservation-api/config"
	"reservation-api/models"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(context.Background(), config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	first := &models.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h", Role: models.RoleUser}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second := &models.User{Name: "Ann 2", Email: "ann@x.com", PasswordHash: "h", Role: models.RoleUser}
	if err := repo.Create(ctx, second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create() duplicate error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestUserRepoByEmailMissing(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	if _, err := repo.ByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("ByEmail() error = %v, want gorm.ErrRecordNotFound", err)
	}
}
