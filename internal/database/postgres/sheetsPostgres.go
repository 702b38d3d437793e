package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/eboniejc/muse-app/internal/entity"
)

// tableSpec describes one spreadsheet-synced table: its SQL name and the
// mapping between database columns and sheet keys. Sheet payloads may use
// camelCase or snake_case; both spellings resolve to the same column here,
// once, at the boundary.
type tableSpec struct {
	sqlName string
	// column -> canonical sheet key (camelCase), in export order
	columns []columnSpec
}

type columnSpec struct {
	column   string
	sheetKey string
}

var syncedTables = map[string]tableSpec{
	entity.TableCourses: {
		sqlName: "courses",
		columns: []columnSpec{
			{"id", "id"},
			{"name", "name"},
			{"description", "description"},
			{"total_lessons", "totalLessons"},
			{"max_students", "maxStudents"},
			{"skill_level", "skillLevel"},
			{"price", "price"},
			{"is_active", "isActive"},
			{"instructor_id", "instructorId"},
		},
	},
	entity.TableEbooks: {
		sqlName: "ebooks",
		columns: []columnSpec{
			{"id", "id"},
			{"title", "title"},
			{"title_vi", "titleVi"},
			{"description", "description"},
			{"description_vi", "descriptionVi"},
			{"cover_image_url", "coverImageUrl"},
			{"file_url", "fileUrl"},
			{"course_id", "courseId"},
			{"sort_order", "sortOrder"},
			{"is_active", "isActive"},
		},
	},
	entity.TableRooms: {
		sqlName: "rooms",
		columns: []columnSpec{
			{"id", "id"},
			{"name", "name"},
			{"description", "description"},
			{"capacity", "capacity"},
			{"hourly_rate", "hourlyRate"},
			{"is_active", "isActive"},
		},
	},
	entity.TableRoomBookings: {
		sqlName: "room_bookings",
		columns: []columnSpec{
			{"id", "id"},
			{"room_id", "roomId"},
			{"user_id", "userId"},
			{"start_time", "startTime"},
			{"end_time", "endTime"},
			{"status", "status"},
			{"notes", "notes"},
		},
	},
	entity.TableCourseEnrollments: {
		sqlName: "course_enrollments",
		columns: []columnSpec{
			{"id", "id"},
			{"user_id", "userId"},
			{"course_id", "courseId"},
			{"status", "status"},
			{"enrolled_at", "enrolledAt"},
			{"completed_at", "completedAt"},
			{"progress_percentage", "progressPercentage"},
		},
	},
	entity.TableLessonCompletions: {
		sqlName: "lesson_completions",
		columns: []columnSpec{
			{"id", "id"},
			{"enrollment_id", "enrollmentId"},
			{"lesson_number", "lessonNumber"},
			{"completed_at", "completedAt"},
		},
	},
	entity.TableLessonSchedules: {
		sqlName: "lesson_schedules",
		columns: []columnSpec{
			{"id", "id"},
			{"enrollment_id", "enrollmentId"},
			{"lesson_number", "lessonNumber"},
			{"scheduled_at", "scheduledAt"},
			{"notification_24h_id", "notification24hId"},
			{"notification_1h_id", "notification1hId"},
		},
	},
	entity.TableUsers: {
		sqlName: "users",
		columns: []columnSpec{
			{"id", "id"},
			{"email", "email"},
			{"display_name", "displayName"},
			{"avatar_url", "avatarUrl"},
			{"role", "role"},
			{"whatsapp_number", "whatsappNumber"},
		},
	},
	entity.TableUserProfiles: {
		sqlName: "user_profiles",
		columns: []columnSpec{
			{"id", "id"},
			{"user_id", "userId"},
			{"full_name", "fullName"},
			{"phone_number", "phoneNumber"},
			{"date_of_birth", "dateOfBirth"},
			{"gender", "gender"},
			{"address", "address"},
		},
	},
}

// columnFor resolves a sheet key (camelCase or snake_case, any case) to a
// database column, or "" when the key is not part of the table.
func (t tableSpec) columnFor(key string) string {
	lower := strings.ToLower(key)
	for _, c := range t.columns {
		if lower == strings.ToLower(c.sheetKey) || lower == c.column {
			return c.column
		}
	}
	return ""
}

type sheetsRepository struct {
	db *sql.DB
}

func NewSheetsRepository(db *sql.DB) SheetsRepository {
	return &sheetsRepository{db: db}
}

// UpsertRow inserts or updates one sheet row by id. Keys outside the
// table's whitelist are dropped.
func (r *sheetsRepository) UpsertRow(ctx context.Context, table string, row map[string]any) error {
	spec, ok := syncedTables[table]
	if !ok {
		return entity.ErrUnknownTable
	}

	values := make(map[string]any)
	for key, val := range row {
		column := spec.columnFor(key)
		if column == "" || val == nil {
			continue
		}
		values[column] = val
	}

	// A zero/absent id means insert; the database assigns one.
	if id, ok := values["id"]; ok && isZeroID(id) {
		delete(values, "id")
	}

	if len(values) == 0 {
		return fmt.Errorf("%w: row has no recognized columns", entity.ErrInvalidInput)
	}

	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	placeholders := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	updates := make([]string, 0, len(columns))
	for i, column := range columns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, values[column])
		if column != "id" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
	}

	var query string
	if _, hasID := values["id"]; hasID && len(updates) > 0 {
		query = fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
			spec.sqlName,
			strings.Join(columns, ", "),
			strings.Join(placeholders, ", "),
			strings.Join(updates, ", "),
		)
	} else {
		query = fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			spec.sqlName,
			strings.Join(columns, ", "),
			strings.Join(placeholders, ", "),
		)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert %s row: %w", table, err)
	}
	return nil
}

// SelectAll reads every row of a synced table, keyed by the canonical
// sheet keys.
func (r *sheetsRepository) SelectAll(ctx context.Context, table string) ([]map[string]any, error) {
	spec, ok := syncedTables[table]
	if !ok {
		return nil, entity.ErrUnknownTable
	}

	columns := make([]string, 0, len(spec.columns))
	for _, c := range spec.columns {
		columns = append(columns, c.column)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(columns, ", "), spec.sqlName)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", table, err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		dest := make([]any, len(spec.columns))
		for i := range dest {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		row := make(map[string]any, len(spec.columns))
		for i, c := range spec.columns {
			val := *(dest[i].(*any))
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[c.sheetKey] = val
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func isZeroID(id any) bool {
	switch v := id.(type) {
	case nil:
		return true
	case float64:
		return v == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case string:
		return v == "" || v == "0"
	}
	return false
}
