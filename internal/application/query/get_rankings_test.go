package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/ranking"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

type stubStudentRepo struct {
	students []*student.Student
	err      error
}

func (r *stubStudentRepo) GetByID(ctx context.Context, id string) (*student.Student, error) {
	return nil, shared.ErrStudentNotFound
}

func (r *stubStudentRepo) GetAll(ctx context.Context) ([]*student.Student, error) {
	return r.students, r.err
}

func (r *stubStudentRepo) GetByStatus(ctx context.Context, status student.Status) ([]*student.Student, error) {
	return nil, nil
}

func (r *stubStudentRepo) Count(ctx context.Context) (int, error) {
	return len(r.students), nil
}

type stubCourseRepo struct {
	courses []*course.Course
}

func (r *stubCourseRepo) GetByID(ctx context.Context, id string) (*course.Course, error) {
	return nil, shared.ErrCourseNotFound
}

func (r *stubCourseRepo) GetAll(ctx context.Context) ([]*course.Course, error) {
	return r.courses, nil
}

func (r *stubCourseRepo) Count(ctx context.Context) (int, error) {
	return len(r.courses), nil
}

type stubCollector struct {
	snapshots []evaluation.StudentSummary
	calls     int
}

func (c *stubCollector) Collect(ctx context.Context, students []*student.Student, catalog []*course.Course) []evaluation.StudentSummary {
	c.calls++
	return c.snapshots
}

type stubCache struct {
	rankings []evaluation.StudentSummary
	err      error
}

func (c *stubCache) GetRankings(ctx context.Context, dim ranking.Dimension, limit int) ([]evaluation.StudentSummary, error) {
	return c.rankings, c.err
}

func testSnapshots() []evaluation.StudentSummary {
	return []evaluation.StudentSummary{
		{StudentID: "1", DisplayName: "A", Overall: 70, Academic: 95},
		{StudentID: "2", DisplayName: "B", Overall: 90, Academic: 60},
		{StudentID: "3", DisplayName: "C", Overall: 90, Academic: 80},
	}
}

func newTestHandler(collector *stubCollector, cache RankingCache) *GetRankingsHandler {
	return NewGetRankingsHandler(&stubStudentRepo{}, &stubCourseRepo{}, collector, cache, nil)
}

func TestGetRankingsHandler_RanksByDimension(t *testing.T) {
	collector := &stubCollector{snapshots: testSnapshots()}
	h := newTestHandler(collector, nil)

	result, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "overall"})
	require.NoError(t, err)

	require.Len(t, result.Entries, 3)
	assert.Equal(t, "2", result.Entries[0].StudentID)
	assert.Equal(t, "3", result.Entries[1].StudentID)
	assert.Equal(t, "1", result.Entries[2].StudentID)
	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.Equal(t, 90.0, result.Entries[0].Score)
	assert.Equal(t, 3, result.TotalConsidered)
	assert.Equal(t, 3, result.DataRichCount)
	assert.False(t, result.FromCache)

	// The exams dimension reorders the same snapshots.
	result, err = h.Handle(context.Background(), GetRankingsQuery{Dimension: "exams"})
	require.NoError(t, err)
	assert.Equal(t, "1", result.Entries[0].StudentID)
	assert.Equal(t, 95.0, result.Entries[0].Score)
}

func TestGetRankingsHandler_EmptyDimensionDefaultsToOverall(t *testing.T) {
	collector := &stubCollector{snapshots: testSnapshots()}
	h := newTestHandler(collector, nil)

	result, err := h.Handle(context.Background(), GetRankingsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "overall", result.Dimension)
}

func TestGetRankingsHandler_RejectsUnknownDimension(t *testing.T) {
	h := newTestHandler(&stubCollector{}, nil)

	_, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "charisma"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestGetRankingsHandler_ServesFromCache(t *testing.T) {
	collector := &stubCollector{snapshots: testSnapshots()}
	cache := &stubCache{rankings: []evaluation.StudentSummary{
		{StudentID: "2", DisplayName: "B", Overall: 90},
	}}
	h := newTestHandler(collector, cache)

	result, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "overall"})
	require.NoError(t, err)

	assert.True(t, result.FromCache)
	assert.Equal(t, 0, collector.calls)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "2", result.Entries[0].StudentID)
}

func TestGetRankingsHandler_CacheFailureFallsThrough(t *testing.T) {
	collector := &stubCollector{snapshots: testSnapshots()}
	cache := &stubCache{err: errors.New("redis down")}
	h := newTestHandler(collector, cache)

	result, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "overall"})
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.Equal(t, 1, collector.calls)
}

func TestGetRankingsHandler_SkipCache(t *testing.T) {
	collector := &stubCollector{snapshots: testSnapshots()}
	cache := &stubCache{rankings: testSnapshots()}
	h := newTestHandler(collector, cache)

	result, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "overall", SkipCache: true})
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.Equal(t, 1, collector.calls)
}

func TestGetRankingsHandler_Deterministic(t *testing.T) {
	collector := &stubCollector{snapshots: testSnapshots()}
	h := newTestHandler(collector, nil)

	first, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "overall"})
	require.NoError(t, err)
	second, err := h.Handle(context.Background(), GetRankingsQuery{Dimension: "overall"})
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
}
