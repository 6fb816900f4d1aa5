package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

type stubRosterSource struct {
	students    []*student.Student
	courses     []*course.Course
	studentsErr error
	coursesErr  error
}

func (s *stubRosterSource) ListStudents(ctx context.Context) ([]*student.Student, error) {
	return s.students, s.studentsErr
}

func (s *stubRosterSource) ListCourses(ctx context.Context) ([]*course.Course, error) {
	return s.courses, s.coursesErr
}

type recordingStudentWriter struct {
	upserted []string
	failID   string
}

func (w *recordingStudentWriter) Upsert(ctx context.Context, st *student.Student) error {
	if st.ID == w.failID {
		return errors.New("write failed")
	}
	w.upserted = append(w.upserted, st.ID)
	return nil
}

type recordingCourseWriter struct {
	upserted []string
}

func (w *recordingCourseWriter) Upsert(ctx context.Context, c *course.Course) error {
	w.upserted = append(w.upserted, c.ID)
	return nil
}

func rosterFixture(t *testing.T) *stubRosterSource {
	t.Helper()

	st1, err := student.NewStudent("s1", "Maria", "Papadopoulou")
	require.NoError(t, err)
	st2, err := student.NewStudent("s2", "Nikos", "Georgiou")
	require.NoError(t, err)

	c1, err := course.NewCourse("c1", "Databases", 5)
	require.NoError(t, err)

	return &stubRosterSource{
		students: []*student.Student{st1, st2},
		courses:  []*course.Course{c1},
	}
}

func TestSyncCatalog(t *testing.T) {
	source := rosterFixture(t)
	students := &recordingStudentWriter{}
	courses := &recordingCourseWriter{}
	handler := NewSyncCatalogHandler(source, students, courses, nil)

	result, err := handler.Handle(context.Background(), SyncCatalogCommand{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.StudentsSynced)
	assert.Equal(t, 1, result.CoursesSynced)
	assert.Equal(t, 0, result.Failures)
	assert.Equal(t, []string{"s1", "s2"}, students.upserted)
	assert.Equal(t, []string{"c1"}, courses.upserted)
}

func TestSyncCatalogCountsWriteFailures(t *testing.T) {
	source := rosterFixture(t)
	students := &recordingStudentWriter{failID: "s1"}
	courses := &recordingCourseWriter{}
	handler := NewSyncCatalogHandler(source, students, courses, nil)

	result, err := handler.Handle(context.Background(), SyncCatalogCommand{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.StudentsSynced)
	assert.Equal(t, 1, result.Failures)
	assert.Equal(t, []string{"s2"}, students.upserted)
}

func TestSyncCatalogListFailureAborts(t *testing.T) {
	source := rosterFixture(t)
	source.studentsErr = errors.New("platform down")
	handler := NewSyncCatalogHandler(source, &recordingStudentWriter{}, &recordingCourseWriter{}, nil)

	_, err := handler.Handle(context.Background(), SyncCatalogCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list students")
}

func TestSyncCatalogSkipFlags(t *testing.T) {
	source := rosterFixture(t)
	students := &recordingStudentWriter{}
	courses := &recordingCourseWriter{}
	handler := NewSyncCatalogHandler(source, students, courses, nil)

	result, err := handler.Handle(context.Background(), SyncCatalogCommand{SkipStudents: true})
	require.NoError(t, err)

	assert.Equal(t, 0, result.StudentsSynced)
	assert.Equal(t, 1, result.CoursesSynced)
	assert.Empty(t, students.upserted)
}
