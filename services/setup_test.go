package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"reservation-api/auth"
	"reservation-api/config"
	"reservation-api/events"
	"reservation-api/models"
	"reservation-api/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	auth         *AuthService
	catalog      *CatalogService
	ledger       *LedgerService
	tokens       *auth.TokenService
	recorder     *events.Recorder
	reservations *repository.ReservationRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := config.OpenDB(context.Background(), config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })

	users := repository.NewUserRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	reservations := repository.NewReservationRepo(db)
	tokens := auth.NewTokenService(testSecret, auth.WithDenylist(auth.NewDenylist()))
	rec := &events.Recorder{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		auth:         NewAuthService(users, tokens, true),
		catalog:      NewCatalogService(restaurants, reservations),
		ledger:       NewLedgerService(reservations, restaurants, users, rec, log),
		tokens:       tokens,
		recorder:     rec,
		reservations: reservations,
	}
}

func (f *fixture) signup(t *testing.T, name string, role models.UserRole) *models.User {
	t.Helper()
	u, err := f.auth.Signup(context.Background(), SignupInput{
		Name: name, Email: name + "@x.com", Password: "secret1", Role: role,
	})
	if err != nil {
		t.Fatalf("Signup(%s) error = %v", name, err)
	}
	return u
}

func (f *fixture) restaurant(t *testing.T, name string) *models.Restaurant {
	t.Helper()
	r, err := f.catalog.Create(context.Background(), RestaurantInput{
		Name: name, Location: "Main St", Description: "Cozy",
	})
	if err != nil {
		t.Fatalf("Create restaurant error = %v", err)
	}
	return r
}

func identity(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}
