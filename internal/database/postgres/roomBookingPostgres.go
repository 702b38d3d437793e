package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
)

type roomBookingRepository struct {
	db *sql.DB
}

func NewRoomBookingRepository(db *sql.DB) RoomBookingRepository {
	return &roomBookingRepository{db: db}
}

func (r *roomBookingRepository) Create(ctx context.Context, booking *entity.RoomBooking) error {
	query := `
		INSERT INTO room_bookings (
			room_id, user_id, start_time, end_time, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		booking.RoomID,
		booking.UserID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Notes,
		now,
		now,
	).Scan(&booking.ID)

	if err != nil {
		return fmt.Errorf("failed to create room booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (r *roomBookingRepository) GetByID(ctx context.Context, id int64) (*entity.RoomBooking, error) {
	query := `
		SELECT id, room_id, user_id, start_time, end_time, status,
			COALESCE(notes, ''), created_at, updated_at
		FROM room_bookings
		WHERE id = $1
	`

	var b entity.RoomBooking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.RoomID,
		&b.UserID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room booking: %w", err)
	}

	return &b, nil
}

// HasOverlap reports whether a confirmed booking for the room intersects
// the [start, end) range: (StartA < EndB) AND (EndA > StartB).
func (r *roomBookingRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM room_bookings
			WHERE room_id = $1
				AND status = 'confirmed'
				AND start_time < $3
				AND end_time > $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, roomID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	return exists, nil
}

func (r *roomBookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.RoomBookingStatus) error {
	query := `UPDATE room_bookings SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *roomBookingRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.RoomBookingDetails, error) {
	query := `
		SELECT b.id, b.room_id, b.user_id, b.start_time, b.end_time, b.status,
			COALESCE(b.notes, ''), b.created_at, b.updated_at,
			r.name, COALESCE(u.display_name, '')
		FROM room_bookings b
		INNER JOIN rooms r ON r.id = b.room_id
		INNER JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.RoomBookingDetails
	for rows.Next() {
		var b entity.RoomBookingDetails
		err := rows.Scan(
			&b.ID,
			&b.RoomID,
			&b.UserID,
			&b.StartTime,
			&b.EndTime,
			&b.Status,
			&b.Notes,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.RoomName,
			&b.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

// CompletePast marks confirmed bookings whose end time has passed as
// completed and returns how many rows changed.
func (r *roomBookingRepository) CompletePast(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE room_bookings
		SET status = 'completed', updated_at = $2
		WHERE status = 'confirmed' AND end_time < $1
	`

	result, err := r.db.ExecContext(ctx, query, before, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to complete past bookings: %w", err)
	}

	return result.RowsAffected()
}
