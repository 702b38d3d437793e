package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ListUpcoming(ctx context.Context, after time.Time) ([]*entity.Event, error) {
	query := `
		SELECT id, title, COALESCE(caption, ''), COALESCE(flyer_url, ''),
			start_at, end_at, is_active
		FROM events
		WHERE is_active = TRUE AND start_at >= $1
		ORDER BY start_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var e entity.Event
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Caption,
			&e.FlyerURL,
			&e.StartAt,
			&e.EndAt,
			&e.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &e)
	}

	return events, rows.Err()
}
