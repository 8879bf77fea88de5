package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Statements are idempotent so the service can
// run it unconditionally at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS student_profiles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id),
			full_name TEXT NOT NULL DEFAULT '',
			course TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			cgpa DOUBLE PRECISION NOT NULL DEFAULT 0,
			skills TEXT[] NOT NULL DEFAULT '{}',
			resume_url TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS faculty_profiles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id),
			full_name TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS hiring_profiles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id),
			company_name TEXT NOT NULL DEFAULT '',
			company_website TEXT NOT NULL DEFAULT '',
			company_description TEXT NOT NULL DEFAULT '',
			contact_number TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS internships (
			id UUID PRIMARY KEY,
			posted_by UUID NOT NULL REFERENCES hiring_profiles(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			company TEXT NOT NULL,
			location TEXT NOT NULL,
			requirements TEXT[] NOT NULL DEFAULT '{}',
			stipend TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			deadline TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		// The unique pair constraint is the submit race arbiter: two
		// concurrent applies for the same pair must resolve in the store.
		`CREATE TABLE IF NOT EXISTS applications (
			id UUID PRIMARY KEY,
			internship_id UUID NOT NULL REFERENCES internships(id),
			student_id UUID NOT NULL REFERENCES student_profiles(id),
			status TEXT NOT NULL DEFAULT 'pending',
			faculty_approval BOOLEAN NOT NULL DEFAULT FALSE,
			hiring_approval BOOLEAN NOT NULL DEFAULT FALSE,
			cover_letter TEXT NOT NULL DEFAULT '',
			feedback TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (student_id, internship_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_internships_active ON internships (is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_internship ON applications (internship_id)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_student ON applications (student_id)`,
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
