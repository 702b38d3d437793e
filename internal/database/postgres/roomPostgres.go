package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eboniejc/muse-app/internal/entity"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetAllActive(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), capacity,
			COALESCE(hourly_rate::text, ''), is_active, created_at
		FROM rooms
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Description,
			&room.Capacity,
			&room.HourlyRate,
			&room.IsActive,
			&room.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), capacity,
			COALESCE(hourly_rate::text, ''), is_active, created_at
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.Capacity,
		&room.HourlyRate,
		&room.IsActive,
		&room.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}
