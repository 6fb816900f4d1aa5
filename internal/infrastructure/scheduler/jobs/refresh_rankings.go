// Package jobs contains implementations of scheduled jobs.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/ranking"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// REFRESH RANKINGS JOB
// ══════════════════════════════════════════════════════════════════════════════

// SnapshotCollector runs a collection pass over the student population.
type SnapshotCollector interface {
	Collect(ctx context.Context, students []*student.Student, catalog []*course.Course) []evaluation.StudentSummary
}

// RankingStore persists ranked summaries per dimension.
type RankingStore interface {
	SetRankings(ctx context.Context, dim ranking.Dimension, summaries []evaluation.StudentSummary, runID string) error
}

// RefreshRankingsJob runs a collection pass over the student population
// and stores the ranked results for every dimension. API reads then
// serve from the store instead of hitting the SMS platform.
type RefreshRankingsJob struct {
	studentRepo student.Repository
	courseRepo  course.Repository
	collector   SnapshotCollector
	store       RankingStore
	logger      *slog.Logger

	config RefreshRankingsConfig

	lastRunStats atomic.Value // *RefreshStats
}

// RefreshRankingsConfig contains configuration for the refresh job.
type RefreshRankingsConfig struct {
	// Timeout is the maximum duration for one refresh run.
	Timeout time.Duration

	// Dimensions lists the dimensions to refresh. Empty means all.
	Dimensions []ranking.Dimension

	// TopCount is how many entries each stored ranking keeps. Zero
	// keeps the full summary list.
	TopCount int
}

// DefaultRefreshRankingsConfig returns sensible defaults.
func DefaultRefreshRankingsConfig() RefreshRankingsConfig {
	return RefreshRankingsConfig{
		Timeout:    5 * time.Minute,
		Dimensions: nil,
		TopCount:   0,
	}
}

// RefreshStats summarizes one refresh run.
type RefreshStats struct {
	RunID         string
	StartedAt     time.Time
	Duration      time.Duration
	StudentsTotal int
	Collected     int
	DataRich      int
	Dimensions    int
	StoreFailures int
}

// NewRefreshRankingsJob creates a refresh job.
func NewRefreshRankingsJob(
	studentRepo student.Repository,
	courseRepo course.Repository,
	collector SnapshotCollector,
	store RankingStore,
	config RefreshRankingsConfig,
	logger *slog.Logger,
) *RefreshRankingsJob {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshRankingsConfig().Timeout
	}
	return &RefreshRankingsJob{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		collector:   collector,
		store:       store,
		config:      config,
		logger:      logger,
	}
}

// Name returns the job name.
func (j *RefreshRankingsJob) Name() string {
	return "refresh_rankings"
}

// Description returns the job description.
func (j *RefreshRankingsJob) Description() string {
	return "Collects performance snapshots and refreshes cached rankings for all dimensions"
}

// Run executes one refresh pass.
func (j *RefreshRankingsJob) Run(ctx context.Context) error {
	runID := uuid.New().String()
	startedAt := time.Now()

	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	logger := j.logger.With("run_id", runID)
	logger.Info("ranking refresh started")

	students, err := j.studentRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("refresh_rankings: failed to load students: %w", err)
	}
	catalog, err := j.courseRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("refresh_rankings: failed to load courses: %w", err)
	}

	summaries := j.collector.Collect(ctx, students, catalog)

	rich := 0
	for _, s := range summaries {
		if s.DataRich() {
			rich++
		}
	}

	dims := j.config.Dimensions
	if len(dims) == 0 {
		dims = ranking.Dimensions()
	}

	storeFailures := 0
	for _, dim := range dims {
		ranked := ranking.Top(summaries, dim, j.rankLimit(len(summaries)))
		if err := j.store.SetRankings(ctx, dim, ranked, runID); err != nil {
			storeFailures++
			logger.Error("failed to store ranking",
				"dimension", string(dim),
				"error", err,
			)
		}
	}

	stats := &RefreshStats{
		RunID:         runID,
		StartedAt:     startedAt,
		Duration:      time.Since(startedAt),
		StudentsTotal: len(students),
		Collected:     len(summaries),
		DataRich:      rich,
		Dimensions:    len(dims),
		StoreFailures: storeFailures,
	}
	j.lastRunStats.Store(stats)

	logger.Info("ranking refresh completed",
		"duration", stats.Duration.String(),
		"students_total", stats.StudentsTotal,
		"collected", stats.Collected,
		"data_rich", stats.DataRich,
		"dimensions", stats.Dimensions,
		"store_failures", storeFailures,
	)

	if storeFailures == len(dims) {
		return fmt.Errorf("refresh_rankings: all %d dimension stores failed", len(dims))
	}

	return nil
}

// LastRunStats returns statistics from the most recent run, or nil.
func (j *RefreshRankingsJob) LastRunStats() *RefreshStats {
	stats, _ := j.lastRunStats.Load().(*RefreshStats)
	return stats
}

// rankLimit returns how many summaries each stored ranking keeps.
func (j *RefreshRankingsJob) rankLimit(collected int) int {
	if j.config.TopCount > 0 {
		return j.config.TopCount
	}
	if collected > 0 {
		return collected
	}
	return ranking.DefaultTopCount
}
