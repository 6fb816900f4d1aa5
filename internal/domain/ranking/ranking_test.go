package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
)

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("gpa")
	require.NoError(t, err)
	assert.Equal(t, DimensionGPA, d)

	d, err = ParseDimension("")
	require.NoError(t, err)
	assert.Equal(t, DimensionOverall, d)

	_, err = ParseDimension("bogus")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestDimension_ScoreOf(t *testing.T) {
	s := evaluation.StudentSummary{
		Continuous:    10,
		Participation: 20,
		Academic:      30,
		Overall:       40,
	}

	assert.Equal(t, 10.0, DimensionGPA.ScoreOf(s))
	assert.Equal(t, 20.0, DimensionAttendance.ScoreOf(s))
	assert.Equal(t, 30.0, DimensionExams.ScoreOf(s))
	assert.Equal(t, 40.0, DimensionOverall.ScoreOf(s))
}

func TestTop_StableTieBreak(t *testing.T) {
	summaries := []evaluation.StudentSummary{
		{StudentID: "1", Overall: 70},
		{StudentID: "2", Overall: 90},
		{StudentID: "3", Overall: 90},
	}

	top := Top(summaries, DimensionOverall, 5)

	require.Len(t, top, 3)
	assert.Equal(t, "2", top[0].StudentID)
	assert.Equal(t, "3", top[1].StudentID)
	assert.Equal(t, "1", top[2].StudentID)
}

func TestTop_TruncatesToLimit(t *testing.T) {
	summaries := make([]evaluation.StudentSummary, 10)
	for i := range summaries {
		summaries[i] = evaluation.StudentSummary{
			StudentID: string(rune('a' + i)),
			Overall:   float64(i * 10),
		}
	}

	top := Top(summaries, DimensionOverall, 5)

	require.Len(t, top, 5)
	assert.Equal(t, 90.0, top[0].Overall)
	assert.Equal(t, 50.0, top[4].Overall)
}

func TestTop_DoesNotMutateInput(t *testing.T) {
	summaries := []evaluation.StudentSummary{
		{StudentID: "1", Overall: 10},
		{StudentID: "2", Overall: 90},
	}

	_ = Top(summaries, DimensionOverall, 5)

	assert.Equal(t, "1", summaries[0].StudentID)
	assert.Equal(t, "2", summaries[1].StudentID)
}

func TestTop_DefaultLimit(t *testing.T) {
	summaries := make([]evaluation.StudentSummary, 8)
	top := Top(summaries, DimensionOverall, 0)
	assert.Len(t, top, DefaultTopCount)
}
