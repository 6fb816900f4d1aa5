// Package student contains the student aggregate: identity, enrollment
// metadata, and the activity status used to prioritize data collection.
package student

import (
	"strings"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STATUS
// ══════════════════════════════════════════════════════════════════════════════

// Status represents the enrollment status of a student.
type Status string

const (
	// StatusActive means the student is currently enrolled and attending.
	StatusActive Status = "active"

	// StatusInactive means the student is enrolled but not attending.
	StatusInactive Status = "inactive"

	// StatusGraduated means the student has completed the programme.
	StatusGraduated Status = "graduated"

	// StatusWithdrawn means the student has left the programme.
	StatusWithdrawn Status = "withdrawn"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusGraduated, StatusWithdrawn:
		return true
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Student is the aggregate root for a single enrolled student.
type Student struct {
	// ID is the platform identifier used in all SMS API calls.
	ID string

	// FirstName and LastName come from the enrollment record.
	FirstName string
	LastName  string

	// Email is the institutional address. May be empty for legacy records.
	Email string

	// Status is the current enrollment status.
	Status Status

	// Cohort groups students by intake period, e.g. "2025A".
	Cohort string

	// EnrolledAt is when the student joined the programme.
	EnrolledAt time.Time

	// CreatedAt and UpdatedAt are bookkeeping timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStudent creates a student and validates the required fields.
func NewStudent(id, firstName, lastName string) (*Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.ErrInvalidStudentID
	}
	if strings.TrimSpace(firstName) == "" && strings.TrimSpace(lastName) == "" {
		return nil, shared.WrapError("student", "Create", shared.ErrEmptyValue, "student name is required", nil)
	}

	now := time.Now().UTC()
	return &Student{
		ID:        id,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayName returns the name shown in rankings and reports.
func (s *Student) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.ID
	}
	return name
}

// IsActive reports whether the student should be prioritized when
// collecting performance snapshots.
func (s *Student) IsActive() bool {
	return s.Status == StatusActive
}

// SetStatus updates the enrollment status.
func (s *Student) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.WrapError("student", "UpdateStatus", shared.ErrInvalidInput, "unknown status "+string(status), nil)
	}
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	return nil
}
