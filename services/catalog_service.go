package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reservation-api/models"
	"reservation-api/obs"
	"reservation-api/repository"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type RestaurantInput struct {
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (in *RestaurantInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
}

// CatalogService manages restaurants. Mutations are admin-only; the router
// enforces that before calling in.
type CatalogService struct {
	restaurants  *repository.RestaurantRepo
	reservations *repository.ReservationRepo
	validate     *validator.Validate
	tracer       trace.Tracer
}

func NewCatalogService(restaurants *repository.RestaurantRepo, reservations *repository.ReservationRepo) *CatalogService {
	return &CatalogService{
		restaurants:  restaurants,
		reservations: reservations,
		validate:     newValidator(),
		tracer:       obs.Tracer("catalog"),
	}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Restaurant, error) {
	out, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, dbErr("list restaurants", err)
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	rest, err := s.restaurants.ByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("restaurant", id)
	}
	if err != nil {
		return nil, dbErr("find restaurant", err)
	}
	return rest, nil
}

func (s *CatalogService) Create(ctx context.Context, in RestaurantInput) (rest *models.Restaurant, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Create")
	defer func() { finish(span, err) }()

	in.trim()
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}
	rest = &models.Restaurant{Name: in.Name, Location: in.Location, Description: in.Description}
	if err := s.restaurants.Create(ctx, rest); err != nil {
		return nil, dbErr("create restaurant", err)
	}
	return rest, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, in RestaurantInput) (err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Update")
	defer func() { finish(span, err) }()

	in.trim()
	if err := s.validate.Struct(in); err != nil {
		return toValidationError(err)
	}
	n, err := s.restaurants.Update(ctx, id, in.Name, in.Location, in.Description)
	if err != nil {
		return dbErr("update restaurant", err)
	}
	if n == 0 {
		return notFound("restaurant", id)
	}
	return nil
}

// Delete removes a restaurant that no reservation references.
func (s *CatalogService) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Delete")
	defer func() { finish(span, err) }()

	refs, err := s.reservations.CountForRestaurant(ctx, id)
	if err != nil {
		return dbErr("count reservations", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: restaurant %d still has %d reservation(s)", ErrConflict, id, refs)
	}
	n, err := s.restaurants.Delete(ctx, id)
	if err != nil {
		return dbErr("delete restaurant", err)
	}
	if n == 0 {
		return notFound("restaurant", id)
	}
	return nil
}
