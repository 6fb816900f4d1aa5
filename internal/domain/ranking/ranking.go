// Package ranking sorts student performance summaries by a selectable
// dimension and truncates the result to a top list.
package ranking

import (
	"sort"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DIMENSIONS
// ══════════════════════════════════════════════════════════════════════════════

// Dimension selects which summary field a ranking sorts by.
type Dimension string

const (
	// DimensionGPA ranks by the continuous-assessment score.
	DimensionGPA Dimension = "gpa"

	// DimensionAttendance ranks by the participation score.
	DimensionAttendance Dimension = "attendance"

	// DimensionExams ranks by the academic score.
	DimensionExams Dimension = "exams"

	// DimensionOverall ranks by the combined overall score.
	DimensionOverall Dimension = "overall"
)

// Dimensions lists all supported ranking dimensions.
func Dimensions() []Dimension {
	return []Dimension{DimensionGPA, DimensionAttendance, DimensionExams, DimensionOverall}
}

// ParseDimension validates a raw dimension string. An empty string
// defaults to the overall dimension.
func ParseDimension(raw string) (Dimension, error) {
	switch Dimension(raw) {
	case "":
		return DimensionOverall, nil
	case DimensionGPA, DimensionAttendance, DimensionExams, DimensionOverall:
		return Dimension(raw), nil
	}
	return "", shared.ErrInvalidDimension
}

// IsValid reports whether the dimension is one of the known values.
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionGPA, DimensionAttendance, DimensionExams, DimensionOverall:
		return true
	}
	return false
}

// ScoreOf extracts the summary field this dimension ranks by.
func (d Dimension) ScoreOf(s evaluation.StudentSummary) float64 {
	switch d {
	case DimensionGPA:
		return s.Continuous
	case DimensionAttendance:
		return s.Participation
	case DimensionExams:
		return s.Academic
	default:
		return s.Overall
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// TOP LIST
// ══════════════════════════════════════════════════════════════════════════════

// DefaultTopCount is the number of entries a ranking shows by default.
const DefaultTopCount = 5

// Top sorts summaries descending by the given dimension and returns the
// first limit entries. The sort is stable: ties keep the relative order
// of the input, and the input slice itself is never mutated.
func Top(summaries []evaluation.StudentSummary, dim Dimension, limit int) []evaluation.StudentSummary {
	if limit <= 0 {
		limit = DefaultTopCount
	}

	ranked := make([]evaluation.StudentSummary, len(summaries))
	copy(ranked, summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return dim.ScoreOf(ranked[i]) > dim.ScoreOf(ranked[j])
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
