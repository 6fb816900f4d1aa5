package sms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

func TestStudentFromDTO(t *testing.T) {
	enrolled := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	dto := StudentDTO{
		ID:         "s1",
		FirstName:  "Maria",
		LastName:   "Papadopoulou",
		Email:      "maria@example.edu",
		Status:     "graduated",
		Cohort:     "2025A",
		EnrolledAt: &enrolled,
	}

	st, err := NewMapper().StudentFromDTO(dto)
	require.NoError(t, err)

	assert.Equal(t, "s1", st.ID)
	assert.Equal(t, "Maria Papadopoulou", st.DisplayName())
	assert.Equal(t, student.StatusGraduated, st.Status)
	assert.Equal(t, "2025A", st.Cohort)
	assert.Equal(t, enrolled, st.EnrolledAt)
}

func TestStudentFromDTORejectsBadRows(t *testing.T) {
	m := NewMapper()

	_, err := m.StudentFromDTO(StudentDTO{FirstName: "No", LastName: "ID"})
	assert.Error(t, err)

	_, err = m.StudentFromDTO(StudentDTO{ID: "s1", FirstName: "Maria", Status: "enrolled-ish"})
	assert.Error(t, err)
}

func TestCourseFromDTO(t *testing.T) {
	dto := CourseDTO{
		ID:             "c1",
		Name:           "Databases",
		Credits:        5,
		AbsencePenalty: 2,
		EvaluationRules: []EvaluationRuleDTO{
			{Category: "Εξετάσεις", Weight: 60},
			{Category: "homework", Weight: 40},
		},
	}

	c, err := NewMapper().CourseFromDTO(dto)
	require.NoError(t, err)

	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, 5.0, c.Credits)
	assert.Equal(t, 2.0, c.AbsencePenalty)
	require.Len(t, c.Rules, 2)
	// Labels stay verbatim; normalization happens at scoring time.
	assert.Equal(t, "Εξετάσεις", c.Rules[0].Category)
}

func TestCourseFromDTORejectsNegativeCredits(t *testing.T) {
	_, err := NewMapper().CourseFromDTO(CourseDTO{ID: "c1", Name: "X", Credits: -1})
	assert.Error(t, err)
}
