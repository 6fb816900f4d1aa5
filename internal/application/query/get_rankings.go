// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/ranking"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET RANKINGS QUERY
// Computes the top students for one ranking dimension. Serves from the
// ranking cache when possible; otherwise runs a full collection pass
// over the student population.
// ══════════════════════════════════════════════════════════════════════════════

// GetRankingsQuery contains the ranking request parameters.
type GetRankingsQuery struct {
	// Dimension selects the score to rank by: "gpa", "attendance",
	// "exams", or "overall". Empty defaults to "overall".
	Dimension string

	// Limit is the number of entries to return (default 5, maximum 50).
	Limit int

	// SkipCache forces a fresh collection run.
	SkipCache bool
}

// Validate checks the request parameters and applies defaults.
func (q *GetRankingsQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if q.Limit == 0 {
		q.Limit = ranking.DefaultTopCount
	}
	if q.Limit > 50 {
		q.Limit = 50
	}
	if _, err := ranking.ParseDimension(q.Dimension); err != nil {
		return err
	}
	return nil
}

// StudentRankDTO is one row of the ranking result.
type StudentRankDTO struct {
	// Rank is the position in the ranking (starting at 1).
	Rank int `json:"rank"`

	// StudentID is the platform student ID.
	StudentID string `json:"student_id"`

	// DisplayName is the name shown in the ranking.
	DisplayName string `json:"display_name"`

	// Score is the value of the requested ranking dimension.
	Score float64 `json:"score"`

	// The four derived scores, regardless of dimension.
	Continuous    float64 `json:"continuous"`
	Participation float64 `json:"participation"`
	Academic      float64 `json:"academic"`
	Overall       float64 `json:"overall"`

	// Auxiliary counters.
	ExamAverage    float64 `json:"exam_average"`
	AttendanceRate float64 `json:"attendance_rate"`
	TotalCourses   int     `json:"total_courses"`
	TotalCredits   float64 `json:"total_credits"`
	FailedCourses  int     `json:"failed_courses"`
}

// GetRankingsResult contains the ranking response.
type GetRankingsResult struct {
	// Dimension the ranking was computed for.
	Dimension string `json:"dimension"`

	// Entries are the ranked rows, best first.
	Entries []StudentRankDTO `json:"entries"`

	// TotalConsidered is how many snapshots the run produced.
	TotalConsidered int `json:"total_considered"`

	// DataRichCount is how many of those carried real signal.
	DataRichCount int `json:"data_rich_count"`

	// FromCache reports whether the result was served from cache.
	FromCache bool `json:"from_cache"`

	// GeneratedAt is when the result was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// SnapshotCollector runs a collection pass over the student population.
// The batch orchestrator implements it.
type SnapshotCollector interface {
	Collect(ctx context.Context, students []*student.Student, catalog []*course.Course) []evaluation.StudentSummary
}

// RankingCache serves precomputed rankings. The Redis cache implements it.
type RankingCache interface {
	GetRankings(ctx context.Context, dim ranking.Dimension, limit int) ([]evaluation.StudentSummary, error)
}

// GetRankingsHandler handles ranking queries.
type GetRankingsHandler struct {
	studentRepo student.Repository
	courseRepo  course.Repository
	collector   SnapshotCollector
	cache       RankingCache
	logger      *slog.Logger
}

// NewGetRankingsHandler creates a ranking query handler. The cache is
// optional; pass nil to always collect fresh data.
func NewGetRankingsHandler(
	studentRepo student.Repository,
	courseRepo course.Repository,
	collector SnapshotCollector,
	cache RankingCache,
	logger *slog.Logger,
) *GetRankingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetRankingsHandler{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		collector:   collector,
		cache:       cache,
		logger:      logger,
	}
}

// Handle executes the ranking query.
func (h *GetRankingsHandler) Handle(ctx context.Context, query GetRankingsQuery) (*GetRankingsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetRankings", shared.ErrValidation, err.Error(), err)
	}
	dim, _ := ranking.ParseDimension(query.Dimension)

	if !query.SkipCache {
		if result, ok := h.tryGetFromCache(ctx, dim, query.Limit); ok {
			return result, nil
		}
	}

	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetRankings", shared.ErrNotFound, "failed to load students", err)
	}
	catalog, err := h.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetRankings", shared.ErrNotFound, "failed to load courses", err)
	}

	snapshots := h.collector.Collect(ctx, students, catalog)
	top := ranking.Top(snapshots, dim, query.Limit)

	rich := 0
	for _, s := range snapshots {
		if s.DataRich() {
			rich++
		}
	}

	return &GetRankingsResult{
		Dimension:       string(dim),
		Entries:         toRankDTOs(top, dim),
		TotalConsidered: len(snapshots),
		DataRichCount:   rich,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// tryGetFromCache serves the ranking from cache when available.
func (h *GetRankingsHandler) tryGetFromCache(ctx context.Context, dim ranking.Dimension, limit int) (*GetRankingsResult, bool) {
	if h.cache == nil {
		return nil, false
	}

	cached, err := h.cache.GetRankings(ctx, dim, limit)
	if err != nil || len(cached) == 0 {
		return nil, false
	}

	rich := 0
	for _, s := range cached {
		if s.DataRich() {
			rich++
		}
	}

	return &GetRankingsResult{
		Dimension:       string(dim),
		Entries:         toRankDTOs(cached, dim),
		TotalConsidered: len(cached),
		DataRichCount:   rich,
		FromCache:       true,
		GeneratedAt:     time.Now().UTC(),
	}, true
}

// toRankDTOs converts ranked summaries into response rows.
func toRankDTOs(summaries []evaluation.StudentSummary, dim ranking.Dimension) []StudentRankDTO {
	dtos := make([]StudentRankDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = StudentRankDTO{
			Rank:           i + 1,
			StudentID:      s.StudentID,
			DisplayName:    s.DisplayName,
			Score:          dim.ScoreOf(s),
			Continuous:     s.Continuous,
			Participation:  s.Participation,
			Academic:       s.Academic,
			Overall:        s.Overall,
			ExamAverage:    s.ExamAverage,
			AttendanceRate: s.AttendanceRate,
			TotalCourses:   s.TotalCourses,
			TotalCredits:   s.TotalCredits,
			FailedCourses:  s.FailedCourses,
		}
	}
	return dtos
}
