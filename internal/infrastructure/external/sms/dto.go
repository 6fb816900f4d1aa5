// Package sms implements the School Management System platform API client.
// This package handles all communication with the SMS platform, including
// fetching grade, attendance, and daily performance data per student.
package sms

import (
	"fmt"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE ENVELOPE
// ══════════════════════════════════════════════════════════════════════════════

// APIResponse is the standard SMS API response envelope.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta contains pagination information for list responses.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// APIErrorDTO is the error payload the SMS API returns on 4xx/5xx.
type APIErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIErrorDTO) Error() string {
	return fmt.Sprintf("sms api error %s: %s", e.Code, e.Message)
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT DATA DTOs
// ══════════════════════════════════════════════════════════════════════════════

// StudentDTO mirrors the platform's student record.
type StudentDTO struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Status     string     `json:"status"`
	Cohort     string     `json:"cohort"`
	EnrolledAt *time.Time `json:"enrolled_at,omitempty"`
}

// CourseDTO mirrors the platform's course catalog record.
type CourseDTO struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Credits         float64             `json:"credits"`
	AbsencePenalty  float64             `json:"absence_penalty"`
	EvaluationRules []EvaluationRuleDTO `json:"evaluation_rules"`
}

// EvaluationRuleDTO is one category weight row inside CourseDTO. The
// category label is free text and is kept verbatim.
type EvaluationRuleDTO struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// CourseSummaryDTO is the platform's precomputed academic standing.
type CourseSummaryDTO struct {
	OverallGPA   float64          `json:"overall_gpa"`
	TotalCredits float64          `json:"total_credits"`
	Courses      []CourseGradeDTO `json:"courses"`
}

// CourseGradeDTO is one course row inside CourseSummaryDTO.
type CourseGradeDTO struct {
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	LetterGrade string  `json:"letter_grade"`
	GPA         float64 `json:"gpa"`
	Credits     float64 `json:"credits"`
}

// AttendanceRecordDTO is one per-day attendance entry.
type AttendanceRecordDTO struct {
	CourseID string `json:"course_id"`
	Status   string `json:"status"`
	Date     string `json:"date,omitempty"`
}

// GradeRecordDTO is one formal grade entry.
type GradeRecordDTO struct {
	CourseID string  `json:"course_id"`
	Category string  `json:"category"`
	Grade    float64 `json:"grade"`
	MaxGrade float64 `json:"max_grade"`
}

// DailyPerformanceRecordDTO is one informal day-to-day scoring entry.
type DailyPerformanceRecordDTO struct {
	CourseID string  `json:"course_id"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}
