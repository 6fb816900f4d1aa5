package snapshot

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// BATCH ORCHESTRATOR
// Fetching every student on every ranking refresh is wasteful: rankings
// only need a handful of data-rich snapshots. The orchestrator fetches
// students in fixed-size concurrent windows, active students first, and
// stops as soon as enough data-rich snapshots have accumulated.
// ══════════════════════════════════════════════════════════════════════════════

// SnapshotFetcher is what the orchestrator drives per student.
// *Fetcher implements it.
type SnapshotFetcher interface {
	Snapshot(ctx context.Context, st *student.Student, catalog []*course.Course) evaluation.StudentSummary
}

// Config controls a collection run.
type Config struct {
	// WindowSize caps concurrent per-student fetches.
	WindowSize int

	// MaxStudents is the hard cap on students considered per run.
	MaxStudents int

	// TopCount is the ranking size the run feeds.
	TopCount int

	// MinSufficiency is the floor for the early-exit target, so that
	// small top counts still collect a usable buffer.
	MinSufficiency int
}

// DefaultConfig returns the standard collection settings.
func DefaultConfig() Config {
	return Config{
		WindowSize:     6,
		MaxStudents:    60,
		TopCount:       5,
		MinSufficiency: 12,
	}
}

// SufficiencyTarget is the number of data-rich snapshots after which a
// run stops early. The ratio of data-rich to data-sparse students
// varies per deployment, so the inputs stay configurable.
func (c Config) SufficiencyTarget() int {
	target := 2 * c.TopCount
	if target < c.MinSufficiency {
		target = c.MinSufficiency
	}
	return target
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	if c.MaxStudents <= 0 {
		c.MaxStudents = def.MaxStudents
	}
	if c.TopCount <= 0 {
		c.TopCount = def.TopCount
	}
	if c.MinSufficiency <= 0 {
		c.MinSufficiency = def.MinSufficiency
	}
	return c
}

// Orchestrator runs batched snapshot collection over the student
// population.
type Orchestrator struct {
	fetcher SnapshotFetcher
	config  Config
	logger  *slog.Logger
}

// NewOrchestrator creates a batch orchestrator.
func NewOrchestrator(fetcher SnapshotFetcher, config Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		fetcher: fetcher,
		config:  config.withDefaults(),
		logger:  logger,
	}
}

// Collect fetches snapshots window by window and returns everything
// gathered, data-rich or not. Active students come first under a stable
// sort, so ties keep catalog order and reruns on identical input return
// identical output. Cancelling ctx stops the run before the next
// window; snapshots already collected are still returned.
func (o *Orchestrator) Collect(ctx context.Context, students []*student.Student, catalog []*course.Course) []evaluation.StudentSummary {
	ordered := make([]*student.Student, len(students))
	copy(ordered, students)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].IsActive() && !ordered[j].IsActive()
	})
	if len(ordered) > o.config.MaxStudents {
		ordered = ordered[:o.config.MaxStudents]
	}

	target := o.config.SufficiencyTarget()
	results := make([]evaluation.StudentSummary, 0, len(ordered))

	for start := 0; start < len(ordered); start += o.config.WindowSize {
		if ctx.Err() != nil {
			o.logger.Warn("collection cancelled",
				"fetched", len(results),
				"remaining", len(ordered)-start)
			break
		}

		end := start + o.config.WindowSize
		if end > len(ordered) {
			end = len(ordered)
		}
		window := ordered[start:end]

		// Each goroutine writes only its own slot, so window results
		// keep their input positions without locking.
		got := make([]evaluation.StudentSummary, len(window))
		var wg sync.WaitGroup
		for i, st := range window {
			wg.Add(1)
			go func(i int, st *student.Student) {
				defer wg.Done()
				got[i] = o.fetcher.Snapshot(ctx, st, catalog)
			}(i, st)
		}
		wg.Wait()
		results = append(results, got...)

		rich := 0
		for _, s := range results {
			if s.DataRich() {
				rich++
			}
		}
		o.logger.Debug("collection window done",
			"fetched", len(results),
			"data_rich", rich,
			"target", target)
		if rich >= target {
			o.logger.Info("collection stopped early",
				"fetched", len(results),
				"data_rich", rich,
				"skipped", len(ordered)-len(results))
			break
		}
	}

	return results
}
