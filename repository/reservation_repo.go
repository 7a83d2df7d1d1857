package repository

import (
	"context"

	"reservation-api/models"

	"gorm.io/gorm"
)

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// Create inserts the reservation and its first history row together.
func (r *ReservationRepo) Create(ctx context.Context, res *models.Reservation, history models.ReservationStatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(res).Error; err != nil {
			return err
		}
		history.ReservationID = res.ID
		return tx.Create(&history).Error
	})
}

func (r *ReservationRepo) ByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "reservation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ListForUser returns the user's reservations with the restaurant name, in
// insertion order.
func (r *ReservationRepo) ListForUser(ctx context.Context, userID uint) ([]models.ReservationView, error) {
	out := []models.ReservationView{}
	err := r.db.WithContext(ctx).
		Table("reservations r").
		Select("r.*, rest.name AS restaurant_name").
		Joins("JOIN restaurants rest ON rest.restaurant_id = r.restaurant_id").
		Where("r.user_id = ?", userID).
		Order("r.reservation_id ASC").
		Scan(&out).Error
	return out, err
}

// ListAll returns every reservation with user and restaurant names.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]models.ReservationView, error) {
	out := []models.ReservationView{}
	err := r.db.WithContext(ctx).
		Table("reservations r").
		Select("r.*, u.name AS user_name, rest.name AS restaurant_name").
		Joins("JOIN users u ON u.user_id = r.user_id").
		Joins("JOIN restaurants rest ON rest.restaurant_id = r.restaurant_id").
		Order("r.reservation_id ASC").
		Scan(&out).Error
	return out, err
}

// Update changes date, time and party size and records the transition. It
// reports how many reservation rows matched; zero means nothing was written.
func (r *ReservationRepo) Update(ctx context.Context, id uint, date, timeOfDay string, people int, status models.ReservationStatus, history models.ReservationStatusHistory) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Reservation{}).
			Where("reservation_id = ?", id).
			Updates(map[string]interface{}{
				"date":         date,
				"time":         timeOfDay,
				"people_count": people,
				"status":       status,
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		history.ReservationID = id
		return tx.Create(&history).Error
	})
	return affected, err
}

// Delete removes the reservation and records the transition.
func (r *ReservationRepo) Delete(ctx context.Context, id uint, history models.ReservationStatusHistory) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("reservation_id = ?", id).Delete(&models.Reservation{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		history.ReservationID = id
		return tx.Create(&history).Error
	})
	return affected, err
}

func (r *ReservationRepo) History(ctx context.Context, id uint) ([]models.ReservationStatusHistory, error) {
	out := []models.ReservationStatusHistory{}
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", id).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *ReservationRepo) CountForRestaurant(ctx context.Context, restaurantID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&n).Error
	return n, err
}
