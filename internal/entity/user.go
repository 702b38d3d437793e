package entity

import (
	"time"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	AvatarURL      string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Role           string    `json:"role" db:"role"`
	WhatsAppNumber string    `json:"whatsapp_number,omitempty" db:"whatsapp_number"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Instructor is the public roster entry. WhatsAppLink is derived from the
// number; empty when the instructor has none on file.
type Instructor struct {
	ID             int64  `json:"id"`
	DisplayName    string `json:"display_name"`
	Email          string `json:"email"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`
	WhatsAppLink   string `json:"whatsapp_link,omitempty"`
}

type UserProfile struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	FullName    string    `json:"full_name" db:"full_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	DateOfBirth string    `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender      string    `json:"gender,omitempty" db:"gender"`
	Address     string    `json:"address,omitempty" db:"address"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)
