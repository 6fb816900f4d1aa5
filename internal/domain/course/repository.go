package course

import (
	"context"
)

// Repository defines storage operations for the course catalog.
type Repository interface {
	// GetByID returns a course by platform ID.
	// Returns ErrCourseNotFound when no such course exists.
	GetByID(ctx context.Context, id string) (*Course, error)

	// GetAll returns the full course catalog in a stable order.
	GetAll(ctx context.Context) ([]*Course, error)

	// Count returns the total number of courses.
	Count(ctx context.Context) (int, error)
}
