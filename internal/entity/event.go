package entity

import (
	"time"
)

// Event is a public school event: workshops, showcases, open decks nights.
type Event struct {
	ID       int64      `json:"id" db:"id"`
	Title    string     `json:"title" db:"title"`
	Caption  string     `json:"caption,omitempty" db:"caption"`
	FlyerURL string     `json:"flyer_url,omitempty" db:"flyer_url"`
	StartAt  time.Time  `json:"start_at" db:"start_at"`
	EndAt    *time.Time `json:"end_at,omitempty" db:"end_at"`
	IsActive bool       `json:"is_active" db:"is_active"`
}
