package models

import "time"

type Restaurant struct {
	ID          uint      `json:"restaurant_id" gorm:"column:restaurant_id;primaryKey"`
	Name        string    `json:"name" gorm:"size:150;not null"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
