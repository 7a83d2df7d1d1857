package repository

import (
	"context"

	"reservation-api/models"

	"gorm.io/gorm"
)

type RestaurantRepo struct{ db *gorm.DB }

func NewRestaurantRepo(db *gorm.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

func (r *RestaurantRepo) List(ctx context.Context) ([]models.Restaurant, error) {
	out := []models.Restaurant{}
	err := r.db.WithContext(ctx).Order("restaurant_id ASC").Find(&out).Error
	return out, err
}

func (r *RestaurantRepo) ByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.db.WithContext(ctx).First(&rest, "restaurant_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("restaurant_id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *RestaurantRepo) Create(ctx context.Context, rest *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(rest).Error
}

// Update overwrites the editable fields and reports how many rows matched.
func (r *RestaurantRepo) Update(ctx context.Context, id uint, name, location, description string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("restaurant_id = ?", id).
		Updates(map[string]interface{}{
			"name":        name,
			"location":    location,
			"description": description,
		})
	return res.RowsAffected, res.Error
}

func (r *RestaurantRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("restaurant_id = ?", id).Delete(&models.Restaurant{})
	return res.RowsAffected, res.Error
}
