package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eboniejc/muse-app/internal/entity"
)

type ebookRepository struct {
	db *sql.DB
}

func NewEbookRepository(db *sql.DB) EbookRepository {
	return &ebookRepository{db: db}
}

// GetAllActive returns active e-books joined with their course name,
// ordered by course and sort order. IsUnlocked is left false; the service
// layer resolves access per user.
func (r *ebookRepository) GetAllActive(ctx context.Context) ([]*entity.EbookAccess, error) {
	query := `
		SELECT e.id, e.title, e.title_vi, COALESCE(e.description, ''),
			COALESCE(e.description_vi, ''), COALESCE(e.cover_image_url, ''),
			e.file_url, COALESCE(e.course_id, 0), e.sort_order, e.is_active,
			COALESCE(c.name, '')
		FROM ebooks e
		LEFT JOIN courses c ON c.id = e.course_id
		WHERE e.is_active = TRUE
		ORDER BY e.course_id, e.sort_order
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ebooks: %w", err)
	}
	defer rows.Close()

	var ebooks []*entity.EbookAccess
	for rows.Next() {
		var e entity.EbookAccess
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.TitleVi,
			&e.Description,
			&e.DescriptionVi,
			&e.CoverImageURL,
			&e.FileURL,
			&e.CourseID,
			&e.SortOrder,
			&e.IsActive,
			&e.CourseName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ebook: %w", err)
		}
		ebooks = append(ebooks, &e)
	}

	return ebooks, rows.Err()
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, email, display_name, COALESCE(avatar_url, ''), role,
			COALESCE(whatsapp_number, ''), created_at
		FROM users
		WHERE id = $1
	`

	var u entity.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.AvatarURL,
		&u.Role,
		&u.WhatsAppNumber,
		&u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	query := `
		SELECT id, email, display_name, COALESCE(avatar_url, ''), role,
			COALESCE(whatsapp_number, ''), created_at
		FROM users
		WHERE role = $1
		ORDER BY display_name
	`

	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.DisplayName,
			&u.AvatarURL,
			&u.Role,
			&u.WhatsAppNumber,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}
