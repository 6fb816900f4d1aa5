package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeStudent_AveragesCoursesEqually(t *testing.T) {
	breakdowns := []CourseScoreBreakdown{
		{CourseID: "c1", Continuous: 70, Participation: 80, Academic: 90, Overall: 82},
		{CourseID: "c2", Continuous: 50, Participation: 60, Academic: 70, Overall: 62},
	}

	s := SummarizeStudent("st1", breakdowns, nil, nil, StudentCourseSummary{})

	assert.Equal(t, 60.0, s.Continuous)
	assert.Equal(t, 70.0, s.Participation)
	assert.Equal(t, 80.0, s.Academic)
	assert.Equal(t, 72.0, s.Overall)
}

func TestSummarizeStudent_RoundsToOneDecimal(t *testing.T) {
	breakdowns := []CourseScoreBreakdown{
		{Overall: 70}, {Overall: 80}, {Overall: 85},
	}

	s := SummarizeStudent("st1", breakdowns, nil, nil, StudentCourseSummary{})

	// (70+80+85)/3 = 78.333...
	assert.Equal(t, 78.3, s.Overall)
}

func TestSummarizeStudent_EmptyBreakdownsZeroScores(t *testing.T) {
	s := SummarizeStudent("st1", nil, nil, nil, StudentCourseSummary{})

	assert.Equal(t, 0.0, s.Continuous)
	assert.Equal(t, 0.0, s.Participation)
	assert.Equal(t, 0.0, s.Academic)
	assert.Equal(t, 0.0, s.Overall)
	assert.False(t, s.DataRich())
}

func TestSummarizeStudent_ExamAverage(t *testing.T) {
	grades := []GradeRecord{
		{Category: "midterm", Grade: 70, MaxGrade: 100},
		{Category: "Τελική Εξέταση", Grade: 90, MaxGrade: 100},
		{Category: "homework", Grade: 40, MaxGrade: 100},
		{Category: "exam", Grade: 80, MaxGrade: 0},
	}

	s := SummarizeStudent("st1", nil, grades, nil, StudentCourseSummary{})

	// Homework is not an exam category and the zero-max record is
	// unusable, so only 70 and 90 count.
	assert.Equal(t, 80.0, s.ExamAverage)
}

func TestSummarizeStudent_AttendanceRate(t *testing.T) {
	attendance := []AttendanceRecord{
		{Status: AttendancePresent},
		{Status: AttendancePresent},
		{Status: AttendanceAbsent},
		{Status: AttendanceLate},
	}

	s := SummarizeStudent("st1", nil, nil, attendance, StudentCourseSummary{})

	assert.Equal(t, 50.0, s.AttendanceRate)
}

func TestSummarizeStudent_PlatformCounters(t *testing.T) {
	platform := StudentCourseSummary{
		TotalCredits: 24,
		Courses: []CourseGrade{
			{CourseID: "c1", LetterGrade: "B", GPA: 3.0},
			{CourseID: "c2", LetterGrade: "F", GPA: 0.0},
			{CourseID: "c3", LetterGrade: "D", GPA: 0.7},
		},
	}

	s := SummarizeStudent("st1", nil, nil, nil, platform)

	assert.Equal(t, 3, s.TotalCourses)
	assert.Equal(t, 24.0, s.TotalCredits)
	assert.Equal(t, 2, s.FailedCourses)
	assert.True(t, s.DataRich())
}
