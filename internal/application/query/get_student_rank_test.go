package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/ranking"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
)

type stubRankSource struct {
	rankings []evaluation.StudentSummary
	listErr  error
	rank     int64
	rankErr  error
}

func (s *stubRankSource) GetRankings(ctx context.Context, dim ranking.Dimension, limit int) ([]evaluation.StudentSummary, error) {
	return s.rankings, s.listErr
}

func (s *stubRankSource) GetRank(ctx context.Context, dim ranking.Dimension, studentID string) (int64, error) {
	return s.rank, s.rankErr
}

func TestGetStudentRank(t *testing.T) {
	source := &stubRankSource{
		rankings: []evaluation.StudentSummary{
			{StudentID: "1", DisplayName: "A", Overall: 90},
			{StudentID: "2", DisplayName: "B", Overall: 80},
			{StudentID: "3", DisplayName: "C", Overall: 70},
			{StudentID: "4", DisplayName: "D", Overall: 60},
		},
		rank: 2,
	}
	handler := NewGetStudentRankHandler(source, nil)

	result, err := handler.Handle(context.Background(), GetStudentRankQuery{StudentID: "2"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Rank)
	assert.Equal(t, 4, result.TotalRanked)
	assert.Equal(t, string(ranking.DimensionOverall), result.Dimension)
	assert.Equal(t, "B", result.Entry.DisplayName)
	assert.Equal(t, 80.0, result.Entry.Score)
	// Rank 2 of 4 means 3 of 4 students are at or below this position.
	assert.InDelta(t, 75.0, result.Percentile, 0.001)
}

func TestGetStudentRankTopIsFullPercentile(t *testing.T) {
	source := &stubRankSource{
		rankings: []evaluation.StudentSummary{
			{StudentID: "1", Overall: 90},
			{StudentID: "2", Overall: 80},
		},
		rank: 1,
	}
	handler := NewGetStudentRankHandler(source, nil)

	result, err := handler.Handle(context.Background(), GetStudentRankQuery{StudentID: "1"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rank)
	assert.InDelta(t, 100.0, result.Percentile, 0.001)
}

func TestGetStudentRankNotRanked(t *testing.T) {
	source := &stubRankSource{
		rankings: []evaluation.StudentSummary{{StudentID: "1", Overall: 90}},
		rankErr:  errors.New("no such member"),
	}
	handler := NewGetStudentRankHandler(source, nil)

	_, err := handler.Handle(context.Background(), GetStudentRankQuery{StudentID: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetStudentRankValidation(t *testing.T) {
	handler := NewGetStudentRankHandler(&stubRankSource{}, nil)

	_, err := handler.Handle(context.Background(), GetStudentRankQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = handler.Handle(context.Background(), GetStudentRankQuery{StudentID: "1", Dimension: "bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestGetStudentRankCacheUnavailable(t *testing.T) {
	source := &stubRankSource{listErr: errors.New("connection refused")}
	handler := NewGetStudentRankHandler(source, nil)

	_, err := handler.Handle(context.Background(), GetStudentRankQuery{StudentID: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
}
