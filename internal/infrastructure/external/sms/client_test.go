package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseSummaryDTO_Parsing(t *testing.T) {
	jsonData := `{
    "success": true,
    "data": {
        "overall_gpa": 3.42,
        "total_credits": 24,
        "courses": [
            {
                "course_id": "db-101",
                "course_name": "Βάσεις Δεδομένων",
                "letter_grade": "B",
                "gpa": 3.0,
                "credits": 6
            },
            {
                "course_id": "alg-201",
                "course_name": "Αλγόριθμοι",
                "letter_grade": "F",
                "gpa": 0.0,
                "credits": 4
            }
        ]
    }
}`

	var response APIResponse[CourseSummaryDTO]
	err := json.Unmarshal([]byte(jsonData), &response)
	assert.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, 3.42, response.Data.OverallGPA)
	assert.Equal(t, 24.0, response.Data.TotalCredits)
	assert.Len(t, response.Data.Courses, 2)
	assert.Equal(t, "Βάσεις Δεδομένων", response.Data.Courses[0].CourseName)
	assert.Equal(t, "F", response.Data.Courses[1].LetterGrade)
}

func TestGradeRecordDTO_Parsing(t *testing.T) {
	jsonData := `{
    "success": true,
    "data": [
        {"course_id": "db-101", "category": "Τελική Εξέταση", "grade": 17, "max_grade": 20},
        {"course_id": "db-101", "category": "homework", "grade": 8, "max_grade": 10}
    ]
}`

	var response APIResponse[[]GradeRecordDTO]
	err := json.Unmarshal([]byte(jsonData), &response)
	assert.NoError(t, err)

	require.Len(t, response.Data, 2)
	assert.Equal(t, "Τελική Εξέταση", response.Data[0].Category)
	assert.Equal(t, 17.0, response.Data[0].Grade)
	assert.Equal(t, 20.0, response.Data[0].MaxGrade)
}

func TestMapper_AttachesStudentID(t *testing.T) {
	m := NewMapper()

	grades := m.GradesFromDTO("st1", []GradeRecordDTO{
		{CourseID: "c1", Category: "exam", Grade: 15, MaxGrade: 20},
	})
	require.Len(t, grades, 1)
	assert.Equal(t, "st1", grades[0].StudentID)
	assert.Equal(t, "c1", grades[0].CourseID)

	attendance := m.AttendanceFromDTO("st1", []AttendanceRecordDTO{
		{CourseID: "c1", Status: "absent"},
	})
	require.Len(t, attendance, 1)
	assert.Equal(t, "st1", attendance[0].StudentID)
	assert.True(t, attendance[0].IsAbsence())
}

func TestClient_GetGrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/st1/grades", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
            "success": true,
            "data": [{"course_id": "c1", "category": "exam", "grade": 16, "max_grade": 20}]
        }`))
	}))
	defer server.Close()

	config := DefaultClientConfig(server.URL)
	config.APIKey = "test-key"
	client := NewClient(config)

	grades, err := client.GetGrades(context.Background(), "st1")
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "exam", grades[0].Category)
	assert.Equal(t, 16.0, grades[0].Grade)
}

func TestClient_APIErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "NOT_FOUND", "message": "no such student"}`))
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))

	_, err := client.GetAttendance(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code": "SERVER_ERROR", "message": "try again"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer server.Close()

	config := DefaultClientConfig(server.URL)
	config.RetryConfig.InitialBackoff = 0
	client := NewClient(config)

	daily, err := client.GetDailyPerformance(context.Background(), "st1")
	require.NoError(t, err)
	assert.Empty(t, daily)
	assert.Equal(t, 2, calls)
}
