package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CourseRepository implements course.Repository for PostgreSQL.
// Evaluation rules are stored as a JSONB array alongside the course row.
type CourseRepository struct {
	conn *Connection
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(conn *Connection) *CourseRepository {
	return &CourseRepository{conn: conn}
}

const courseColumns = `id, name, credits, absence_penalty, evaluation_rules`

// GetByID returns a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*course.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanCourse(row)
}

// GetAll returns the full course catalog in a stable order.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*course.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		ORDER BY id ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []*course.Course
	for rows.Next() {
		c, err := r.scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return courses, nil
}

// Count returns the total number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM courses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}

// Upsert inserts or updates a catalog entry, replacing the stored rules.
func (r *CourseRepository) Upsert(ctx context.Context, c *course.Course) error {
	rulesJSON, err := json.Marshal(c.Rules)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation rules: %w", err)
	}

	query := `
		INSERT INTO courses (id, name, credits, absence_penalty, evaluation_rules, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT(id) DO UPDATE SET
			name = EXCLUDED.name,
			credits = EXCLUDED.credits,
			absence_penalty = EXCLUDED.absence_penalty,
			evaluation_rules = EXCLUDED.evaluation_rules,
			updated_at = NOW()
	`

	_, err = r.conn.Exec(ctx, query, c.ID, c.Name, c.Credits, c.AbsencePenalty, rulesJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *CourseRepository) scanCourse(row pgx.Row) (*course.Course, error) {
	var c course.Course
	var rulesJSON []byte

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Credits,
		&c.AbsencePenalty,
		&rulesJSON,
	)

	if IsNoRows(err) {
		return nil, shared.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &c.Rules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evaluation rules for course %s: %w", c.ID, err)
		}
	}

	return &c, nil
}
