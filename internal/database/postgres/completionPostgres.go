package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/lib/pq"
)

type lessonCompletionRepository struct {
	db *sql.DB
}

func NewLessonCompletionRepository(db *sql.DB) LessonCompletionRepository {
	return &lessonCompletionRepository{db: db}
}

// Create records a lesson completion. Re-marking an already completed
// lesson is a no-op.
func (r *lessonCompletionRepository) Create(ctx context.Context, enrollmentID int64, lessonNumber int) error {
	query := `
		INSERT INTO lesson_completions (enrollment_id, lesson_number, completed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (enrollment_id, lesson_number) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, enrollmentID, lessonNumber, time.Now()); err != nil {
		return fmt.Errorf("failed to create lesson completion: %w", err)
	}
	return nil
}

func (r *lessonCompletionRepository) Delete(ctx context.Context, enrollmentID int64, lessonNumber int) error {
	query := `DELETE FROM lesson_completions WHERE enrollment_id = $1 AND lesson_number = $2`

	if _, err := r.db.ExecContext(ctx, query, enrollmentID, lessonNumber); err != nil {
		return fmt.Errorf("failed to delete lesson completion: %w", err)
	}
	return nil
}

func (r *lessonCompletionRepository) CountByEnrollment(ctx context.Context, enrollmentID int64) (int, error) {
	query := `SELECT COUNT(*) FROM lesson_completions WHERE enrollment_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, enrollmentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lesson completions: %w", err)
	}
	return count, nil
}

func (r *lessonCompletionRepository) ListByEnrollments(ctx context.Context, enrollmentIDs []int64) ([]*entity.LessonCompletion, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, enrollment_id, lesson_number, completed_at
		FROM lesson_completions
		WHERE enrollment_id = ANY($1)
		ORDER BY enrollment_id, lesson_number
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(enrollmentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson completions: %w", err)
	}
	defer rows.Close()

	var completions []*entity.LessonCompletion
	for rows.Next() {
		var c entity.LessonCompletion
		if err := rows.Scan(&c.ID, &c.EnrollmentID, &c.LessonNumber, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lesson completion: %w", err)
		}
		completions = append(completions, &c)
	}

	return completions, rows.Err()
}
