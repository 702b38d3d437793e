package postgres

import (
	"database/sql"
	"fmt"

	"github.com/eboniejc/muse-app/config"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// Instant columns are TIMESTAMPTZ throughout: sheet imports carry zone
// offsets and reconciliation compares stored against incoming instants
// exactly, so the offset must survive the round trip.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		display_name VARCHAR(255) NOT NULL DEFAULT '',
		avatar_url TEXT,
		role VARCHAR(20) NOT NULL DEFAULT 'student',
		whatsapp_number VARCHAR(50),
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) UNIQUE,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		phone_number VARCHAR(50) NOT NULL DEFAULT '',
		date_of_birth VARCHAR(20),
		gender VARCHAR(20),
		address TEXT,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		total_lessons INTEGER NOT NULL DEFAULT 0,
		max_students INTEGER NOT NULL DEFAULT 0,
		skill_level VARCHAR(50) NOT NULL DEFAULT '',
		price NUMERIC(12,2),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		instructor_id INTEGER REFERENCES users(id),
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS course_enrollments (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		course_id INTEGER NOT NULL REFERENCES courses(id),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		enrolled_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMPTZ,
		progress_percentage INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS lesson_completions (
		id SERIAL PRIMARY KEY,
		enrollment_id INTEGER NOT NULL REFERENCES course_enrollments(id),
		lesson_number INTEGER NOT NULL,
		completed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uq_completion_enrollment_lesson UNIQUE (enrollment_id, lesson_number)
	)`,

	`CREATE TABLE IF NOT EXISTS lesson_schedules (
		id SERIAL PRIMARY KEY,
		enrollment_id INTEGER NOT NULL REFERENCES course_enrollments(id),
		lesson_number INTEGER NOT NULL,
		scheduled_at TIMESTAMPTZ NOT NULL,
		notification_24h_id VARCHAR(64),
		notification_1h_id VARCHAR(64),
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uq_schedule_enrollment_lesson UNIQUE (enrollment_id, lesson_number)
	)`,

	`CREATE TABLE IF NOT EXISTS ebooks (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		title_vi VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT,
		description_vi TEXT,
		cover_image_url TEXT,
		file_url TEXT NOT NULL,
		course_id INTEGER REFERENCES courses(id),
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		capacity INTEGER NOT NULL DEFAULT 1,
		hourly_rate NUMERIC(12,2),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS room_bookings (
		id SERIAL PRIMARY KEY,
		room_id INTEGER NOT NULL REFERENCES rooms(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
		notes TEXT,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		caption TEXT,
		flyer_url TEXT,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	// Indexes
	`CREATE INDEX IF NOT EXISTS idx_enrollments_user_id ON course_enrollments(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_course_status ON course_enrollments(course_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_scheduled_at ON lesson_schedules(scheduled_at)`,
	`CREATE INDEX IF NOT EXISTS idx_room_bookings_room_time ON room_bookings(room_id, start_time, end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_room_bookings_user_id ON room_bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_ebooks_course_sort ON ebooks(course_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start_at ON events(is_active, start_at)`,
}

func RunMigrations(db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
