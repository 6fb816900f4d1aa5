package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/application/command"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYNC CATALOG JOB
// ══════════════════════════════════════════════════════════════════════════════

// SyncCatalogJob periodically refreshes the local roster and course
// catalog from the SMS platform, so collection runs see new and
// departed students without a manual import.
type SyncCatalogJob struct {
	handler *command.SyncCatalogHandler
	timeout time.Duration
	logger  *slog.Logger
}

// NewSyncCatalogJob creates a catalog sync job.
func NewSyncCatalogJob(handler *command.SyncCatalogHandler, timeout time.Duration, logger *slog.Logger) *SyncCatalogJob {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncCatalogJob{
		handler: handler,
		timeout: timeout,
		logger:  logger,
	}
}

// Name returns the job name.
func (j *SyncCatalogJob) Name() string {
	return "sync_catalog"
}

// Description returns the job description.
func (j *SyncCatalogJob) Description() string {
	return "Imports the student roster and course catalog from the SMS platform"
}

// Run executes one sync pass.
func (j *SyncCatalogJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.handler.Handle(ctx, command.SyncCatalogCommand{})
	if err != nil {
		return fmt.Errorf("sync_catalog job: %w", err)
	}

	j.logger.Info("catalog sync job finished",
		"students_synced", result.StudentsSynced,
		"courses_synced", result.CoursesSynced,
		"failures", result.Failures,
	)
	return nil
}
