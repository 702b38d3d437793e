package entity

import (
	"time"
)

type RoomBookingStatus string

const (
	RoomBookingStatusConfirmed RoomBookingStatus = "confirmed"
	RoomBookingStatusCancelled RoomBookingStatus = "cancelled"
	RoomBookingStatusCompleted RoomBookingStatus = "completed"
)

type Room struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Capacity    int       `json:"capacity" db:"capacity"`
	HourlyRate  string    `json:"hourly_rate,omitempty" db:"hourly_rate"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type RoomBooking struct {
	ID        int64             `json:"id" db:"id"`
	RoomID    int64             `json:"room_id" db:"room_id"`
	UserID    int64             `json:"user_id" db:"user_id"`
	StartTime time.Time         `json:"start_time" db:"start_time"`
	EndTime   time.Time         `json:"end_time" db:"end_time"`
	Status    RoomBookingStatus `json:"status" db:"status"`
	Notes     string            `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

type RoomBookingDetails struct {
	RoomBooking
	RoomName string `json:"room_name"`
	UserName string `json:"user_name"`
}
