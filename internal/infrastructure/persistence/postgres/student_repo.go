package postgres

import (
	"context"
	"fmt"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

const studentColumns = `id, first_name, last_name, email, status, cohort,
	   enrolled_at, created_at, updated_at`

// GetByID returns a student by platform ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*student.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanStudent(row)
}

// GetAll returns the full student catalog. The order is stable so that
// repeated collection runs visit students in the same sequence.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*student.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		ORDER BY enrolled_at ASC, id ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	return r.scanStudents(rows)
}

// GetByStatus returns students with the given enrollment status.
func (r *StudentRepository) GetByStatus(ctx context.Context, status student.Status) ([]*student.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE status = $1
		ORDER BY enrolled_at ASC, id ASC
	`

	rows, err := r.conn.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query students by status: %w", err)
	}
	defer rows.Close()

	return r.scanStudents(rows)
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// Upsert inserts or updates a catalog entry. Used when refreshing the
// local catalog from an external roster import.
func (r *StudentRepository) Upsert(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (
			id, first_name, last_name, email, status, cohort,
			enrolled_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT(id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			status = EXCLUDED.status,
			cohort = EXCLUDED.cohort,
			enrolled_at = EXCLUDED.enrolled_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.conn.Exec(ctx, query,
		s.ID,
		s.FirstName,
		s.LastName,
		s.Email,
		string(s.Status),
		s.Cohort,
		s.EnrolledAt,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert student: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *StudentRepository) scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student
	var status string

	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&status,
		&s.Cohort,
		&s.EnrolledAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if IsNoRows(err) {
		return nil, shared.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	s.Status = student.Status(status)
	return &s, nil
}

func (r *StudentRepository) scanStudents(rows pgx.Rows) ([]*student.Student, error) {
	var students []*student.Student

	for rows.Next() {
		var s student.Student
		var status string

		err := rows.Scan(
			&s.ID,
			&s.FirstName,
			&s.LastName,
			&s.Email,
			&status,
			&s.Cohort,
			&s.EnrolledAt,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}

		s.Status = student.Status(status)
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return students, nil
}
