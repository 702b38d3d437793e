package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/lib/pq"
)

type lessonScheduleRepository struct {
	db *sql.DB
}

func NewLessonScheduleRepository(db *sql.DB) LessonScheduleRepository {
	return &lessonScheduleRepository{db: db}
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func (r *lessonScheduleRepository) GetByID(ctx context.Context, id int64) (*entity.LessonSchedule, error) {
	query := `
		SELECT id, enrollment_id, lesson_number, scheduled_at,
			notification_24h_id, notification_1h_id, created_at, updated_at
		FROM lesson_schedules
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEnrollmentAndLesson looks a schedule up by its natural key. The
// uq_schedule_enrollment_lesson constraint guarantees at most one match.
func (r *lessonScheduleRepository) GetByEnrollmentAndLesson(ctx context.Context, enrollmentID int64, lessonNumber int) (*entity.LessonSchedule, error) {
	query := `
		SELECT id, enrollment_id, lesson_number, scheduled_at,
			notification_24h_id, notification_1h_id, created_at, updated_at
		FROM lesson_schedules
		WHERE enrollment_id = $1 AND lesson_number = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, enrollmentID, lessonNumber))
}

func (r *lessonScheduleRepository) scanOne(row *sql.Row) (*entity.LessonSchedule, error) {
	var s entity.LessonSchedule
	var n24, n1 sql.NullString

	err := row.Scan(
		&s.ID,
		&s.EnrollmentID,
		&s.LessonNumber,
		&s.ScheduledAt,
		&n24,
		&n1,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson schedule: %w", err)
	}

	s.Notification24hID = n24.String
	s.Notification1hID = n1.String
	return &s, nil
}

func (r *lessonScheduleRepository) Create(ctx context.Context, schedule *entity.LessonSchedule) error {
	query := `
		INSERT INTO lesson_schedules (
			enrollment_id, lesson_number, scheduled_at,
			notification_24h_id, notification_1h_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		schedule.EnrollmentID,
		schedule.LessonNumber,
		schedule.ScheduledAt,
		nullable(schedule.Notification24hID),
		nullable(schedule.Notification1hID),
		now,
		now,
	).Scan(&schedule.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateSchedule
		}
		return fmt.Errorf("failed to create lesson schedule: %w", err)
	}

	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	return nil
}

func (r *lessonScheduleRepository) Update(ctx context.Context, schedule *entity.LessonSchedule) error {
	query := `
		UPDATE lesson_schedules
		SET enrollment_id = $2, lesson_number = $3, scheduled_at = $4,
			notification_24h_id = $5, notification_1h_id = $6, updated_at = $7
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.EnrollmentID,
		schedule.LessonNumber,
		schedule.ScheduledAt,
		nullable(schedule.Notification24hID),
		nullable(schedule.Notification1hID),
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to update lesson schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return entity.ErrScheduleNotFound
	}

	schedule.UpdatedAt = now
	return nil
}

// ListUpcomingByUser returns future scheduled lessons across the user's
// active and completed enrollments, soonest first.
func (r *lessonScheduleRepository) ListUpcomingByUser(ctx context.Context, userID int64, after time.Time) ([]*entity.UpcomingLesson, error) {
	query := `
		SELECT s.id, s.enrollment_id, e.course_id, c.name, s.lesson_number, s.scheduled_at
		FROM lesson_schedules s
		INNER JOIN course_enrollments e ON e.id = s.enrollment_id
		INNER JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
			AND e.status IN ('active', 'completed')
			AND s.scheduled_at >= $2
		ORDER BY s.scheduled_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*entity.UpcomingLesson
	for rows.Next() {
		var l entity.UpcomingLesson
		err := rows.Scan(
			&l.ID,
			&l.EnrollmentID,
			&l.CourseID,
			&l.CourseName,
			&l.LessonNumber,
			&l.ScheduledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upcoming lesson: %w", err)
		}
		lessons = append(lessons, &l)
	}

	return lessons, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
