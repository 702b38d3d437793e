package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eboniejc/muse-app/internal/entity"
)

type courseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) CourseRepository {
	return &courseRepository{db: db}
}

// GetAllActive returns the active course catalog with instructor info and
// per-course active enrollment counts.
func (r *courseRepository) GetAllActive(ctx context.Context) ([]*entity.CourseListing, error) {
	query := `
		SELECT
			c.id, c.name, COALESCE(c.description, ''), c.total_lessons,
			c.max_students, c.skill_level, COALESCE(c.price::text, ''),
			c.is_active, COALESCE(c.instructor_id, 0),
			c.created_at, c.updated_at,
			COALESCE(u.display_name, ''), COALESCE(u.avatar_url, ''),
			COALESCE(e.active_count, 0)
		FROM courses c
		LEFT JOIN users u ON u.id = c.instructor_id
		LEFT JOIN (
			SELECT course_id, COUNT(*) AS active_count
			FROM course_enrollments
			WHERE status = 'active'
			GROUP BY course_id
		) e ON e.course_id = c.id
		WHERE c.is_active = TRUE
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*entity.CourseListing
	for rows.Next() {
		var c entity.CourseListing
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.TotalLessons,
			&c.MaxStudents,
			&c.SkillLevel,
			&c.Price,
			&c.IsActive,
			&c.InstructorID,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.InstructorName,
			&c.InstructorAvatar,
			&c.EnrolledCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &c)
	}

	return courses, rows.Err()
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*entity.Course, error) {
	query := `
		SELECT
			id, name, COALESCE(description, ''), total_lessons, max_students,
			skill_level, COALESCE(price::text, ''), is_active,
			COALESCE(instructor_id, 0), created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var c entity.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.TotalLessons,
		&c.MaxStudents,
		&c.SkillLevel,
		&c.Price,
		&c.IsActive,
		&c.InstructorID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return &c, nil
}
