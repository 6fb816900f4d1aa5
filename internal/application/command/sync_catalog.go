// Package command contains write operations (CQRS - Commands).
// Commands are responsible for changing the state of the system.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYNC CATALOG COMMAND
// Imports the student roster and course catalog from the SMS platform
// into local storage. The local copy is what collection runs iterate
// over, so the platform stays the source of truth.
// ══════════════════════════════════════════════════════════════════════════════

// SyncCatalogCommand contains the parameters for a catalog sync.
type SyncCatalogCommand struct {
	// SkipStudents limits the sync to the course catalog.
	SkipStudents bool

	// SkipCourses limits the sync to the student roster.
	SkipCourses bool
}

// SyncCatalogResult summarizes one sync run.
type SyncCatalogResult struct {
	// StudentsSynced is how many roster rows were written.
	StudentsSynced int

	// CoursesSynced is how many catalog rows were written.
	CoursesSynced int

	// Failures counts rows that could not be written.
	Failures int

	// SyncedAt is when the sync completed.
	SyncedAt time.Time

	// Duration is how long the sync took.
	Duration time.Duration
}

// ─────────────────────────────────────────────────────────────────────────────
// Dependencies
// ─────────────────────────────────────────────────────────────────────────────

// RosterSource lists the platform's roster and catalog.
// The SMS API client implements it.
type RosterSource interface {
	ListStudents(ctx context.Context) ([]*student.Student, error)
	ListCourses(ctx context.Context) ([]*course.Course, error)
}

// StudentWriter persists roster rows. The PostgreSQL student
// repository implements it.
type StudentWriter interface {
	Upsert(ctx context.Context, s *student.Student) error
}

// CourseWriter persists catalog rows. The PostgreSQL course
// repository implements it.
type CourseWriter interface {
	Upsert(ctx context.Context, c *course.Course) error
}

// ─────────────────────────────────────────────────────────────────────────────
// Handler
// ─────────────────────────────────────────────────────────────────────────────

// SyncCatalogHandler executes catalog sync commands.
type SyncCatalogHandler struct {
	source   RosterSource
	students StudentWriter
	courses  CourseWriter
	logger   *slog.Logger
}

// NewSyncCatalogHandler creates a catalog sync handler.
func NewSyncCatalogHandler(source RosterSource, students StudentWriter, courses CourseWriter, logger *slog.Logger) *SyncCatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncCatalogHandler{
		source:   source,
		students: students,
		courses:  courses,
		logger:   logger,
	}
}

// Handle runs one catalog sync. A row that fails to persist is counted
// and skipped; the sync fails only when the platform itself cannot be
// listed.
func (h *SyncCatalogHandler) Handle(ctx context.Context, cmd SyncCatalogCommand) (*SyncCatalogResult, error) {
	start := time.Now()
	result := &SyncCatalogResult{}

	if !cmd.SkipStudents {
		students, err := h.source.ListStudents(ctx)
		if err != nil {
			return nil, fmt.Errorf("sync_catalog: failed to list students: %w", err)
		}
		for _, st := range students {
			if err := h.students.Upsert(ctx, st); err != nil {
				h.logger.Warn("failed to upsert student", "student_id", st.ID, "error", err)
				result.Failures++
				continue
			}
			result.StudentsSynced++
		}
	}

	if !cmd.SkipCourses {
		courses, err := h.source.ListCourses(ctx)
		if err != nil {
			return nil, fmt.Errorf("sync_catalog: failed to list courses: %w", err)
		}
		for _, crs := range courses {
			if err := h.courses.Upsert(ctx, crs); err != nil {
				h.logger.Warn("failed to upsert course", "course_id", crs.ID, "error", err)
				result.Failures++
				continue
			}
			result.CoursesSynced++
		}
	}

	result.SyncedAt = time.Now()
	result.Duration = time.Since(start)

	h.logger.Info("catalog sync completed",
		"students_synced", result.StudentsSynced,
		"courses_synced", result.CoursesSynced,
		"failures", result.Failures,
		"duration", result.Duration.String(),
	)

	return result, nil
}
