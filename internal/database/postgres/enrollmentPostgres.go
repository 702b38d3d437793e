package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
)

type enrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	query := `
		INSERT INTO course_enrollments (
			user_id, course_id, status, enrolled_at, progress_percentage, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.Status,
		now,
		enrollment.ProgressPercentage,
		now,
	).Scan(&enrollment.ID)

	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	enrollment.EnrolledAt = now
	enrollment.UpdatedAt = now
	return nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*entity.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, status, enrolled_at, completed_at,
			progress_percentage, updated_at
		FROM course_enrollments
		WHERE id = $1
	`

	var e entity.Enrollment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.UserID,
		&e.CourseID,
		&e.Status,
		&e.EnrolledAt,
		&e.CompletedAt,
		&e.ProgressPercentage,
		&e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &e, nil
}

// GetActiveByUserAndCourse finds an active or paused enrollment for the
// user/course pair, used for the duplicate-enrollment check.
func (r *enrollmentRepository) GetActiveByUserAndCourse(ctx context.Context, userID, courseID int64) (*entity.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, status, enrolled_at, completed_at,
			progress_percentage, updated_at
		FROM course_enrollments
		WHERE user_id = $1 AND course_id = $2 AND status IN ('active', 'paused')
		LIMIT 1
	`

	var e entity.Enrollment
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&e.ID,
		&e.UserID,
		&e.CourseID,
		&e.Status,
		&e.EnrolledAt,
		&e.CompletedAt,
		&e.ProgressPercentage,
		&e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &e, nil
}

func (r *enrollmentRepository) CountActiveByCourse(ctx context.Context, courseID int64) (int, error) {
	query := `SELECT COUNT(*) FROM course_enrollments WHERE course_id = $1 AND status = 'active'`

	var count int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID int64, statuses []entity.EnrollmentStatus) ([]*entity.Enrollment, error) {
	if len(statuses) == 0 {
		statuses = []entity.EnrollmentStatus{entity.EnrollmentStatusActive}
	}

	placeholders := make([]string, 0, len(statuses))
	args := []any{userID}
	for i, s := range statuses {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, s)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, course_id, status, enrolled_at, completed_at,
			progress_percentage, updated_at
		FROM course_enrollments
		WHERE user_id = $1 AND status IN (%s)
		ORDER BY enrolled_at DESC
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*entity.Enrollment
	for rows.Next() {
		var e entity.Enrollment
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.CourseID,
			&e.Status,
			&e.EnrolledAt,
			&e.CompletedAt,
			&e.ProgressPercentage,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}

	return enrollments, rows.Err()
}

// ListDetails returns the admin-console enrollment listing, joined with
// course and student info. Completions are attached by the service layer.
func (r *enrollmentRepository) ListDetails(ctx context.Context, filter *EnrollmentFilter) ([]*entity.EnrollmentDetails, error) {
	query := `
		SELECT
			e.id, e.user_id, e.course_id, e.status, e.enrolled_at,
			e.completed_at, e.progress_percentage, e.updated_at,
			c.name, c.total_lessons, c.skill_level,
			u.display_name, u.email
		FROM course_enrollments e
		INNER JOIN courses c ON c.id = e.course_id
		INNER JOIN users u ON u.id = e.user_id
	`

	var conditions []string
	var args []any
	if filter != nil && filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		conditions = append(conditions, fmt.Sprintf("e.course_id = $%d", len(args)))
	}
	if filter != nil && filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.enrolled_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollment details: %w", err)
	}
	defer rows.Close()

	var details []*entity.EnrollmentDetails
	for rows.Next() {
		var d entity.EnrollmentDetails
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.CourseID,
			&d.Status,
			&d.EnrolledAt,
			&d.CompletedAt,
			&d.ProgressPercentage,
			&d.UpdatedAt,
			&d.CourseName,
			&d.TotalLessons,
			&d.SkillLevel,
			&d.StudentName,
			&d.StudentEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment details: %w", err)
		}
		details = append(details, &d)
	}

	return details, rows.Err()
}

// ListSummariesByUser returns the student's own enrollments with course and
// instructor info, newest first. Completed-lesson counts come from a
// correlated subquery so one round trip serves the dashboard.
func (r *enrollmentRepository) ListSummariesByUser(ctx context.Context, userID int64) ([]*entity.EnrollmentSummary, error) {
	query := `
		SELECT
			e.id, e.status, e.progress_percentage, e.enrolled_at, e.completed_at,
			e.course_id, c.name, COALESCE(c.description, ''), c.total_lessons,
			COALESCE(i.display_name, ''),
			(SELECT COUNT(*) FROM lesson_completions lc WHERE lc.enrollment_id = e.id)
		FROM course_enrollments e
		INNER JOIN courses c ON c.id = e.course_id
		LEFT JOIN users i ON i.id = c.instructor_id
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollment summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*entity.EnrollmentSummary
	for rows.Next() {
		var s entity.EnrollmentSummary
		err := rows.Scan(
			&s.ID,
			&s.Status,
			&s.ProgressPercentage,
			&s.EnrolledAt,
			&s.CompletedAt,
			&s.CourseID,
			&s.CourseName,
			&s.CourseDescription,
			&s.TotalLessons,
			&s.InstructorName,
			&s.CompletedLessons,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment summary: %w", err)
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

func (r *enrollmentRepository) UpdateProgress(ctx context.Context, id int64, progress int, status entity.EnrollmentStatus, completedAt *time.Time) error {
	query := `
		UPDATE course_enrollments
		SET progress_percentage = $2, status = $3, completed_at = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, progress, status, completedAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update enrollment progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return entity.ErrEnrollmentNotFound
	}

	return nil
}
