package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
)

func mustCourse(t *testing.T, id string, penalty float64, rules ...course.EvaluationRule) *course.Course {
	t.Helper()
	c, err := course.NewCourse(id, "Course "+id, 5)
	require.NoError(t, err)
	c.AbsencePenalty = penalty
	c.Rules = rules
	return c
}

func TestScoreCourse_SingleExamRule(t *testing.T) {
	c := mustCourse(t, "c1", 0, course.EvaluationRule{Category: "exam", Weight: 100})
	recs := CourseRecords{
		Grades: []GradeRecord{{CourseID: "c1", Category: "exam", Grade: 80, MaxGrade: 100}},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)
	assert.Equal(t, 80.0, b.Academic)
	assert.Equal(t, 80.0, b.Overall)
	assert.Equal(t, 0.0, b.Continuous)
	assert.Equal(t, 0.0, b.Participation)
}

func TestScoreCourse_NoRulesSkipsCourse(t *testing.T) {
	c := mustCourse(t, "c1", 5)
	recs := CourseRecords{
		Grades: []GradeRecord{{CourseID: "c1", Category: "exam", Grade: 80, MaxGrade: 100}},
	}

	_, ok := ScoreCourse(c, recs)
	assert.False(t, ok)
}

func TestScoreCourse_AbsencePenaltyAppliedOnce(t *testing.T) {
	// One absence at 5 points per absence against a daily participation
	// score of 90 must land on 85, applied after the bucket average.
	c := mustCourse(t, "c1", 5, course.EvaluationRule{Category: "participation", Weight: 50})
	recs := CourseRecords{
		Attendance: []AttendanceRecord{{CourseID: "c1", Status: AttendanceAbsent}},
		Daily:      []DailyPerformanceRecord{{CourseID: "c1", Category: "participation", Score: 90, MaxScore: 100}},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)
	assert.Equal(t, 85.0, b.Participation)
	assert.Equal(t, 85.0, b.Overall)
}

func TestScoreCourse_ExplicitAttendanceRuleSupersedesPenalty(t *testing.T) {
	// With an explicit attendance rule the penalty is encoded in the rule
	// value and must not be subtracted a second time.
	c := mustCourse(t, "c1", 5,
		course.EvaluationRule{Category: "attendance", Weight: 30},
		course.EvaluationRule{Category: "participation", Weight: 70},
	)
	recs := CourseRecords{
		Attendance: []AttendanceRecord{
			{CourseID: "c1", Status: AttendanceAbsent},
			{CourseID: "c1", Status: AttendanceAbsent},
		},
		Daily: []DailyPerformanceRecord{{CourseID: "c1", Category: "participation", Score: 80, MaxScore: 100}},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)

	// attendance value: 100 - 5*2 = 90, participation value: 80
	// bucket score: (90*30 + 80*70) / 100 = 83
	assert.InDelta(t, 83.0, b.Participation, 1e-9)
}

func TestScoreCourse_ZeroWeightRuleExcluded(t *testing.T) {
	c := mustCourse(t, "c1", 0,
		course.EvaluationRule{Category: "exam", Weight: 0},
		course.EvaluationRule{Category: "homework", Weight: 40},
	)
	recs := CourseRecords{
		Grades: []GradeRecord{
			{CourseID: "c1", Category: "exam", Grade: 50, MaxGrade: 100},
			{CourseID: "c1", Category: "homework", Grade: 90, MaxGrade: 100},
		},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)

	// The zero-weight exam rule must not drag the academic bucket down.
	assert.Equal(t, 90.0, b.Academic)
	assert.Equal(t, 90.0, b.Overall)
}

func TestScoreCourse_RuleWithoutDataKeepsDenominatorHonest(t *testing.T) {
	c := mustCourse(t, "c1", 0,
		course.EvaluationRule{Category: "exam", Weight: 60},
		course.EvaluationRule{Category: "quiz", Weight: 40},
	)
	recs := CourseRecords{
		Grades: []GradeRecord{{CourseID: "c1", Category: "exam", Grade: 70, MaxGrade: 100}},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)

	// No quiz data: the quiz weight is excluded, not averaged in as zero.
	assert.Equal(t, 70.0, b.Academic)
	assert.Equal(t, 70.0, b.Overall)
}

func TestScoreCourse_ParticipationCombinesBothSources(t *testing.T) {
	c := mustCourse(t, "c1", 0, course.EvaluationRule{Category: "participation", Weight: 100})
	recs := CourseRecords{
		Grades: []GradeRecord{{CourseID: "c1", Category: "participation", Grade: 60, MaxGrade: 100}},
		Daily: []DailyPerformanceRecord{
			{CourseID: "c1", Category: "participation", Score: 80, MaxScore: 100},
			{CourseID: "c1", Category: "participation", Score: 100, MaxScore: 100},
		},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)

	// Source means: grades 60, daily 90. Combined as (60+90)/2 = 75.
	assert.Equal(t, 75.0, b.Participation)
}

func TestScoreCourse_UnrecognizedCategoryContributesNothing(t *testing.T) {
	c := mustCourse(t, "c1", 0,
		course.EvaluationRule{Category: "field trip report", Weight: 50},
		course.EvaluationRule{Category: "exam", Weight: 50},
	)
	recs := CourseRecords{
		Grades: []GradeRecord{
			{CourseID: "c1", Category: "field trip report", Grade: 100, MaxGrade: 100},
			{CourseID: "c1", Category: "exam", Grade: 80, MaxGrade: 100},
		},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)
	assert.Equal(t, 80.0, b.Academic)
	assert.Equal(t, 80.0, b.Overall)
}

func TestScoreCourse_MixedBucketsOverall(t *testing.T) {
	c := mustCourse(t, "c1", 0,
		course.EvaluationRule{Category: "effort", Weight: 20},
		course.EvaluationRule{Category: "participation", Weight: 30},
		course.EvaluationRule{Category: "final", Weight: 50},
	)
	recs := CourseRecords{
		Grades: []GradeRecord{{CourseID: "c1", Category: "final", Grade: 90, MaxGrade: 100}},
		Daily: []DailyPerformanceRecord{
			{CourseID: "c1", Category: "effort", Score: 70, MaxScore: 100},
			{CourseID: "c1", Category: "participation", Score: 80, MaxScore: 100},
		},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)
	assert.Equal(t, 70.0, b.Continuous)
	assert.Equal(t, 80.0, b.Participation)
	assert.Equal(t, 90.0, b.Academic)
	// (70*20 + 80*30 + 90*50) / 100 = 83
	assert.InDelta(t, 83.0, b.Overall, 1e-9)
}

func TestScoreCourse_NoUsablePercentages(t *testing.T) {
	c := mustCourse(t, "c1", 0, course.EvaluationRule{Category: "exam", Weight: 100})
	recs := CourseRecords{
		Grades: []GradeRecord{{CourseID: "c1", Category: "exam", Grade: 80, MaxGrade: 0}},
	}

	b, ok := ScoreCourse(c, recs)
	require.True(t, ok)
	assert.Equal(t, 0.0, b.Academic)
	assert.Equal(t, 0.0, b.Overall)
}
