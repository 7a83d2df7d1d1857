package models

import "time"

// ReservationStatus represents the lifecycle states of a table reservation.
// Only ACTIVE and MODIFIED are ever stored on a reservation row; REQUESTED
// and DELETED appear in the status history.
type ReservationStatus string

const (
	StatusRequested ReservationStatus = "REQUESTED"
	StatusActive    ReservationStatus = "ACTIVE"
	StatusModified  ReservationStatus = "MODIFIED"
	StatusDeleted   ReservationStatus = "DELETED"
)

type Reservation struct {
	ID           uint              `json:"reservation_id" gorm:"column:reservation_id;primaryKey"`
	UserID       uint              `json:"user_id" gorm:"not null;index"`
	RestaurantID uint              `json:"restaurant_id" gorm:"not null;index"`
	Date         string            `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD
	Time         string            `json:"time" gorm:"size:5;not null"`  // HH:MM
	PeopleCount  int               `json:"people_count" gorm:"not null"`
	Status       ReservationStatus `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ReservationView is a reservation joined with the display names the
// clients render next to it.
type ReservationView struct {
	Reservation
	UserName       string `json:"user_name,omitempty"`
	RestaurantName string `json:"restaurant_name"`
}

// ReservationStatusHistory tracks every lifecycle transition. Rows are kept
// after the reservation itself is deleted.
type ReservationStatusHistory struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	ReservationID uint              `json:"reservation_id" gorm:"not null;index"`
	FromStatus    ReservationStatus `json:"from_status"`
	ToStatus      ReservationStatus `json:"to_status" gorm:"not null"`
	ChangedBy     uint              `json:"changed_by"` // 0 for anonymous self-service requests
	Note          string            `json:"note"`
	CreatedAt     time.Time         `json:"created_at"`
}
