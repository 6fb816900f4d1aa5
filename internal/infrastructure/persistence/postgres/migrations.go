package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create students table
-- Version: 001

CREATE TABLE IF NOT EXISTS students (
    id VARCHAR(64) PRIMARY KEY,
    first_name VARCHAR(100) NOT NULL DEFAULT '',
    last_name VARCHAR(100) NOT NULL DEFAULT '',
    email VARCHAR(255) NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    cohort VARCHAR(30) NOT NULL DEFAULT '',
    enrolled_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_status CHECK (status IN ('active', 'inactive', 'graduated', 'withdrawn'))
);

CREATE INDEX IF NOT EXISTS idx_students_status ON students(status);
CREATE INDEX IF NOT EXISTS idx_students_cohort ON students(cohort);
CREATE INDEX IF NOT EXISTS idx_students_enrolled_at ON students(enrolled_at);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE COURSES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create courses table
-- Version: 002

CREATE TABLE IF NOT EXISTS courses (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(255) NOT NULL DEFAULT '',
    credits DECIMAL(5,2) NOT NULL DEFAULT 0,
    absence_penalty DECIMAL(5,2) NOT NULL DEFAULT 0,

    -- Evaluation rules as entered by teaching staff. Category labels
    -- are stored raw; normalization happens at scoring time.
    evaluation_rules JSONB NOT NULL DEFAULT '[]'::jsonb,

    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_credits CHECK (credits >= 0),
    CONSTRAINT valid_absence_penalty CHECK (absence_penalty >= 0)
);

CREATE INDEX IF NOT EXISTS idx_courses_name ON courses(name);
`

// GetMigrations returns all embedded migrations in order.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_students",
			UpSQL:   migration001Up,
		},
		{
			Version: 2,
			Name:    "create_courses",
			UpSQL:   migration002Up,
		},
	}
}
