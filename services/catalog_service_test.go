package services

import (
	"context"
	"errors"
	"testing"

	"reservation-api/models"
)

func TestCatalogCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.restaurant(t, "Bistro")
	if r.ID == 0 {
		t.Fatal("restaurant ID not assigned")
	}

	err := f.catalog.Update(ctx, r.ID, RestaurantInput{Name: "Bistro 2", Location: "Side St", Description: "Bigger"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := f.catalog.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Bistro 2" || got.Location != "Side St" {
		t.Errorf("Get() = %+v", got)
	}

	list, err := f.catalog.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List() = %v, %v; want 1 restaurant", list, err)
	}

	if err := f.catalog.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := f.catalog.Get(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete = %v, want ErrNotFound", err)
	}
}

func TestCatalogMissingFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.catalog.Create(ctx, RestaurantInput{Name: "Only name", Location: "  "})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "location" || !errors.Is(err, ErrMissingField) {
		t.Fatalf("Create() error = %v, want missing location", err)
	}
}

func TestCatalogNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.catalog.Update(ctx, 42, RestaurantInput{Name: "a", Location: "b", Description: "c"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(42) = %v, want ErrNotFound", err)
	}
	if err := f.catalog.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(42) = %v, want ErrNotFound", err)
	}
}

func TestCatalogDeleteReferencedRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "eve", models.RoleUser)
	r := f.restaurant(t, "Busy")
	if _, err := f.ledger.Create(ctx, nil, NewReservation{
		UserID: u.ID, RestaurantID: r.ID, Date: "2024-05-01", Time: "19:00", PeopleCount: 2,
	}); err != nil {
		t.Fatalf("Create reservation error = %v", err)
	}
	if err := f.catalog.Delete(ctx, r.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("Delete() = %v, want ErrConflict", err)
	}
}
