// Package course contains the course aggregate: catalog metadata and the
// evaluation rules that describe how each course weighs its grading categories.
package course

import (
	"strings"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVALUATION RULES
// ══════════════════════════════════════════════════════════════════════════════

// EvaluationRule assigns a relative weight to one grading category.
// Weights do not need to sum to 100; scoring works with the proportions.
type EvaluationRule struct {
	// Category is the free-text category label as entered by teaching
	// staff. It is normalized before matching against performance records.
	Category string `json:"category"`

	// Weight is the relative importance of the category. Rules with a
	// non-positive weight are ignored.
	Weight float64 `json:"weight"`
}

// Active reports whether the rule participates in scoring.
func (r EvaluationRule) Active() bool {
	return r.Weight > 0
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSE ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Course is the aggregate root for a single catalog course.
type Course struct {
	// ID is the platform identifier referenced by performance records.
	ID string

	// Name is the human-readable course title.
	Name string

	// Credits counts toward the student's credit total.
	Credits float64

	// AbsencePenalty is the percentage-point deduction per recorded
	// absence when the course has an attendance evaluation rule.
	AbsencePenalty float64

	// Rules are the evaluation rules for this course. A course without
	// rules produces no score breakdown.
	Rules []EvaluationRule
}

// NewCourse creates a course and validates the catalog fields.
func NewCourse(id, name string, credits float64) (*Course, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.ErrInvalidCourseID
	}
	if credits < 0 {
		return nil, shared.ErrInvalidCredits
	}
	return &Course{
		ID:      id,
		Name:    strings.TrimSpace(name),
		Credits: credits,
	}, nil
}

// AddRule appends an evaluation rule after validating its weight.
func (c *Course) AddRule(category string, weight float64) error {
	if weight < 0 {
		return shared.ErrInvalidRuleWeight
	}
	c.Rules = append(c.Rules, EvaluationRule{Category: category, Weight: weight})
	return nil
}

// HasRules reports whether the course carries at least one evaluation rule.
func (c *Course) HasRules() bool {
	return len(c.Rules) > 0
}

// ActiveRules returns the rules with positive weight, in declaration order.
func (c *Course) ActiveRules() []EvaluationRule {
	out := make([]EvaluationRule, 0, len(c.Rules))
	for _, r := range c.Rules {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}
