package sms

import (
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// DTO → DOMAIN MAPPING
// The platform records do not carry the student ID in each row; the
// mapper attaches it while converting to domain types.
// ══════════════════════════════════════════════════════════════════════════════

// Mapper converts SMS API DTOs into domain types.
type Mapper struct{}

// NewMapper creates a new Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// CourseSummaryFromDTO converts the platform's academic standing payload.
func (m *Mapper) CourseSummaryFromDTO(studentID string, dto CourseSummaryDTO) evaluation.StudentCourseSummary {
	courses := make([]evaluation.CourseGrade, 0, len(dto.Courses))
	for _, c := range dto.Courses {
		courses = append(courses, evaluation.CourseGrade{
			CourseID:    c.CourseID,
			CourseName:  c.CourseName,
			LetterGrade: c.LetterGrade,
			GPA:         c.GPA,
			Credits:     c.Credits,
		})
	}
	return evaluation.StudentCourseSummary{
		StudentID:    studentID,
		OverallGPA:   dto.OverallGPA,
		TotalCredits: dto.TotalCredits,
		Courses:      courses,
	}
}

// AttendanceFromDTO converts a list of attendance rows.
func (m *Mapper) AttendanceFromDTO(studentID string, dtos []AttendanceRecordDTO) []evaluation.AttendanceRecord {
	out := make([]evaluation.AttendanceRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, evaluation.AttendanceRecord{
			StudentID: studentID,
			CourseID:  d.CourseID,
			Status:    d.Status,
		})
	}
	return out
}

// GradesFromDTO converts a list of grade rows.
func (m *Mapper) GradesFromDTO(studentID string, dtos []GradeRecordDTO) []evaluation.GradeRecord {
	out := make([]evaluation.GradeRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, evaluation.GradeRecord{
			StudentID: studentID,
			CourseID:  d.CourseID,
			Category:  d.Category,
			Grade:     d.Grade,
			MaxGrade:  d.MaxGrade,
		})
	}
	return out
}

// StudentFromDTO converts a roster row. Rows with an empty ID or an
// unknown status are rejected so a bad import cannot poison the catalog.
func (m *Mapper) StudentFromDTO(dto StudentDTO) (*student.Student, error) {
	st, err := student.NewStudent(dto.ID, dto.FirstName, dto.LastName)
	if err != nil {
		return nil, err
	}
	st.Email = dto.Email
	st.Cohort = dto.Cohort
	if dto.Status != "" {
		if err := st.SetStatus(student.Status(dto.Status)); err != nil {
			return nil, err
		}
	}
	if dto.EnrolledAt != nil {
		st.EnrolledAt = *dto.EnrolledAt
	}
	return st, nil
}

// CourseFromDTO converts a catalog row, keeping category labels verbatim.
func (m *Mapper) CourseFromDTO(dto CourseDTO) (*course.Course, error) {
	c, err := course.NewCourse(dto.ID, dto.Name, dto.Credits)
	if err != nil {
		return nil, err
	}
	c.AbsencePenalty = dto.AbsencePenalty
	for _, r := range dto.EvaluationRules {
		if err := c.AddRule(r.Category, r.Weight); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DailyPerformanceFromDTO converts a list of daily performance rows.
func (m *Mapper) DailyPerformanceFromDTO(studentID string, dtos []DailyPerformanceRecordDTO) []evaluation.DailyPerformanceRecord {
	out := make([]evaluation.DailyPerformanceRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, evaluation.DailyPerformanceRecord{
			StudentID: studentID,
			CourseID:  d.CourseID,
			Category:  d.Category,
			Score:     d.Score,
			MaxScore:  d.MaxScore,
		})
	}
	return out
}
