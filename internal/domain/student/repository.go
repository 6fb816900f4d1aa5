package student

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines storage operations for the student catalog.
type Repository interface {
	// GetByID returns a student by platform ID.
	// Returns ErrStudentNotFound when no such student exists.
	GetByID(ctx context.Context, id string) (*Student, error)

	// GetAll returns the full student catalog in a stable order.
	GetAll(ctx context.Context) ([]*Student, error)

	// GetByStatus returns students with the given enrollment status.
	GetByStatus(ctx context.Context, status Status) ([]*Student, error)

	// Count returns the total number of students.
	Count(ctx context.Context) (int, error)
}
