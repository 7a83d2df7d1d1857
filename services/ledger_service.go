package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reservation-api/auth"
	"reservation-api/events"
	"reservation-api/models"
	"reservation-api/obs"
	"reservation-api/repository"
	"reservation-api/statemachine"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// NewReservation is a booking request. Zero values count as absent.
type NewReservation struct {
	UserID       uint   `json:"user_id" validate:"required"`
	RestaurantID uint   `json:"restaurant_id" validate:"required"`
	Date         string `json:"date" validate:"required,resdate"`
	Time         string `json:"time" validate:"required,restime"`
	PeopleCount  int    `json:"people_count" validate:"required,gt=0"`
}

// ReservationChanges are the fields an admin may edit.
type ReservationChanges struct {
	Date        string `json:"date" validate:"required,resdate"`
	Time        string `json:"time" validate:"required,restime"`
	PeopleCount int    `json:"people_count" validate:"required,gt=0"`
}

// LedgerService owns the reservation lifecycle. Every state change goes
// through the statemachine table, is written with a history row and is
// announced on the event publisher.
type LedgerService struct {
	reservations *repository.ReservationRepo
	restaurants  *repository.RestaurantRepo
	users        *repository.UserRepo
	pub          events.Publisher
	log          *slog.Logger
	validate     *validator.Validate
	tracer       trace.Tracer
}

func NewLedgerService(
	reservations *repository.ReservationRepo,
	restaurants *repository.RestaurantRepo,
	users *repository.UserRepo,
	pub events.Publisher,
	log *slog.Logger,
) *LedgerService {
	return &LedgerService{
		reservations: reservations,
		restaurants:  restaurants,
		users:        users,
		pub:          pub,
		log:          log,
		validate:     newValidator(),
		tracer:       obs.Tracer("ledger"),
	}
}

func actorFor(caller *auth.Identity) statemachine.Actor {
	if caller != nil && caller.IsAdmin() {
		return statemachine.ActorAdmin
	}
	return statemachine.ActorOwner
}

func callerID(caller *auth.Identity) uint {
	if caller == nil {
		return 0
	}
	return caller.UserID
}

// Create books a table. caller is nil for anonymous self-service requests;
// a non-admin caller may only book for itself.
func (s *LedgerService) Create(ctx context.Context, caller *auth.Identity, in NewReservation) (res *models.Reservation, err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Create")
	defer func() { finish(span, err) }()

	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}
	if caller != nil && !caller.IsAdmin() && caller.UserID != in.UserID {
		return nil, fmt.Errorf("%w: reservations can only be made for your own account", ErrForbidden)
	}
	actor := actorFor(caller)
	if err := statemachine.CanTransition(models.StatusRequested, models.StatusActive, actor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return nil, dbErr("check user", err)
	}
	if !ok {
		return nil, invalidReference("user_id", "User not found.")
	}
	ok, err = s.restaurants.Exists(ctx, in.RestaurantID)
	if err != nil {
		return nil, dbErr("check restaurant", err)
	}
	if !ok {
		return nil, invalidReference("restaurant_id", "Restaurant not found.")
	}

	res = &models.Reservation{
		UserID:       in.UserID,
		RestaurantID: in.RestaurantID,
		Date:         in.Date,
		Time:         in.Time,
		PeopleCount:  in.PeopleCount,
		Status:       models.StatusActive,
	}
	history := models.ReservationStatusHistory{
		FromStatus: models.StatusRequested,
		ToStatus:   models.StatusActive,
		ChangedBy:  callerID(caller),
		Note:       "Reservation created by " + string(actor),
	}
	if err := s.reservations.Create(ctx, res, history); err != nil {
		return nil, dbErr("create reservation", err)
	}
	span.SetAttributes(attribute.Int("reservation.id", int(res.ID)))

	s.publish(ctx, events.ReservationCreated, map[string]any{
		"reservation_id": res.ID, "user_id": res.UserID, "restaurant_id": res.RestaurantID,
		"date": res.Date, "time": res.Time, "people_count": res.PeopleCount,
	})
	return res, nil
}

// ListForUser returns userID's reservations. A non-admin caller may only
// list its own.
func (s *LedgerService) ListForUser(ctx context.Context, caller *auth.Identity, userID uint) ([]models.ReservationView, error) {
	if userID == 0 {
		return nil, malformed("userId", "userId must be a positive integer")
	}
	if caller != nil && !caller.IsAdmin() && caller.UserID != userID {
		return nil, fmt.Errorf("%w: you can only view your own reservations", ErrForbidden)
	}
	out, err := s.reservations.ListForUser(ctx, userID)
	if err != nil {
		return nil, dbErr("list reservations", err)
	}
	return out, nil
}

// ListAll returns every reservation; admin only.
func (s *LedgerService) ListAll(ctx context.Context, caller auth.Identity) ([]models.ReservationView, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admins only", ErrForbidden)
	}
	out, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, dbErr("list reservations", err)
	}
	return out, nil
}

// Get returns one reservation to its owner or an admin.
func (s *LedgerService) Get(ctx context.Context, caller auth.Identity, id uint) (*models.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && res.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: this reservation does not belong to you", ErrForbidden)
	}
	return res, nil
}

// Update changes date, time and party size; admin only.
func (s *LedgerService) Update(ctx context.Context, caller auth.Identity, id uint, in ReservationChanges) (res *models.Reservation, err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Update", trace.WithAttributes(attribute.Int("reservation.id", int(id))))
	defer func() { finish(span, err) }()

	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admins only", ErrForbidden)
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	res, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(res.Status, models.StatusModified, statemachine.ActorAdmin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	history := models.ReservationStatusHistory{
		FromStatus: res.Status,
		ToStatus:   models.StatusModified,
		ChangedBy:  caller.UserID,
		Note: fmt.Sprintf("Changed %s %s x%d to %s %s x%d",
			res.Date, res.Time, res.PeopleCount, in.Date, in.Time, in.PeopleCount),
	}
	n, err := s.reservations.Update(ctx, id, in.Date, in.Time, in.PeopleCount, models.StatusModified, history)
	if err != nil {
		return nil, dbErr("update reservation", err)
	}
	if n == 0 {
		return nil, notFound("reservation", id)
	}

	res.Date, res.Time, res.PeopleCount = in.Date, in.Time, in.PeopleCount
	res.Status = models.StatusModified
	s.publish(ctx, events.ReservationUpdated, map[string]any{
		"reservation_id": id, "date": in.Date, "time": in.Time, "people_count": in.PeopleCount,
	})
	return res, nil
}

// Delete removes a reservation. Admins may delete any reservation; other
// callers only their own.
func (s *LedgerService) Delete(ctx context.Context, caller auth.Identity, id uint) (err error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Delete", trace.WithAttributes(attribute.Int("reservation.id", int(id))))
	defer func() { finish(span, err) }()

	res, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	actor := actorFor(&caller)
	if actor == statemachine.ActorOwner && res.UserID != caller.UserID {
		return fmt.Errorf("%w: this reservation does not belong to you", ErrForbidden)
	}
	if err := statemachine.CanTransition(res.Status, models.StatusDeleted, actor); err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	history := models.ReservationStatusHistory{
		FromStatus: res.Status,
		ToStatus:   models.StatusDeleted,
		ChangedBy:  caller.UserID,
		Note:       "Reservation deleted by " + string(actor),
	}
	n, err := s.reservations.Delete(ctx, id, history)
	if err != nil {
		return dbErr("delete reservation", err)
	}
	if n == 0 {
		return notFound("reservation", id)
	}

	s.publish(ctx, events.ReservationDeleted, map[string]any{
		"reservation_id": id, "user_id": res.UserID, "deleted_by": caller.UserID,
	})
	return nil
}

// History returns the status trail of a reservation, including deleted
// ones; admin only.
func (s *LedgerService) History(ctx context.Context, caller auth.Identity, id uint) ([]models.ReservationStatusHistory, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admins only", ErrForbidden)
	}
	out, err := s.reservations.History(ctx, id)
	if err != nil {
		return nil, dbErr("load history", err)
	}
	if len(out) == 0 {
		return nil, notFound("reservation", id)
	}
	return out, nil
}

func (s *LedgerService) load(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := s.reservations.ByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("reservation", id)
	}
	if err != nil {
		return nil, dbErr("find reservation", err)
	}
	return res, nil
}

// publish is best-effort: the write has already been committed.
func (s *LedgerService) publish(ctx context.Context, key string, payload map[string]any) {
	if err := s.pub.PublishJSON(ctx, key, payload); err != nil {
		s.log.WarnContext(ctx, "publish event failed", "key", key, "error", err)
	}
}
