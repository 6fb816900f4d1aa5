package evaluation

import (
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
)

// ══════════════════════════════════════════════════════════════════════════════
// BUCKET ASSIGNMENT
// Each canonical category feeds exactly one of three course score
// components. The assignment is fixed; unrecognized categories feed none.
// ══════════════════════════════════════════════════════════════════════════════

// Bucket identifies the course score component a category contributes to.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketContinuous
	BucketParticipation
	BucketAcademic
)

// BucketOf returns the fixed bucket assignment for a canonical category.
func BucketOf(c Category) Bucket {
	switch c {
	case CategoryBehavior, CategoryEffort, CategorySkills, CategoryContinuous:
		return BucketContinuous
	case CategoryParticipation, CategoryAttendance:
		return BucketParticipation
	case CategoryHomework, CategoryProject, CategoryQuiz, CategoryLab,
		CategoryPresentation, CategoryMidterm, CategoryFinal, CategoryExam:
		return BucketAcademic
	}
	return BucketNone
}

// ══════════════════════════════════════════════════════════════════════════════
// PER-COURSE SCORING
// ══════════════════════════════════════════════════════════════════════════════

// CourseRecords holds one student's raw records for a single course.
type CourseRecords struct {
	Grades     []GradeRecord
	Attendance []AttendanceRecord
	Daily      []DailyPerformanceRecord
}

// AbsenceCount returns the number of unexcused absences.
func (r CourseRecords) AbsenceCount() int {
	n := 0
	for _, a := range r.Attendance {
		if a.IsAbsence() {
			n++
		}
	}
	return n
}

// gradePercentages returns usable grade percentages whose normalized
// category matches cat.
func (r CourseRecords) gradePercentages(cat Category) []float64 {
	var out []float64
	for _, g := range r.Grades {
		if Normalize(g.Category) != cat {
			continue
		}
		if pct, ok := g.Percentage(); ok {
			out = append(out, pct)
		}
	}
	return out
}

// dailyPercentages returns usable daily-performance percentages whose
// normalized category matches cat.
func (r CourseRecords) dailyPercentages(cat Category) []float64 {
	var out []float64
	for _, d := range r.Daily {
		if Normalize(d.Category) != cat {
			continue
		}
		if pct, ok := d.Percentage(); ok {
			out = append(out, pct)
		}
	}
	return out
}

// CourseScoreBreakdown is the derived score set for one student in one
// course. Each field is a percentage in [0,100], or 0 when no data
// contributed to the corresponding bucket.
type CourseScoreBreakdown struct {
	CourseID      string
	Continuous    float64
	Participation float64
	Academic      float64
	Overall       float64
}

// weightedAcc accumulates one bucket's weighted sum and weight total.
type weightedAcc struct {
	sum    float64
	weight float64
}

func (a *weightedAcc) add(value, weight float64) {
	a.sum += value * weight
	a.weight += weight
}

// score returns the weighted average, or 0 when nothing contributed.
func (a *weightedAcc) score() float64 {
	if a.weight == 0 {
		return 0
	}
	return a.sum / a.weight
}

// ScoreCourse computes the score breakdown for one student in one course.
// The second return value is false for courses without evaluation rules;
// such courses are skipped entirely rather than scored as zero.
//
// Each rule with positive weight contributes its category average to the
// bucket it belongs to, but only when real data produced an average above
// zero. Rules without data stay out of the weight totals so a missing
// category never drags a bucket toward zero.
func ScoreCourse(c *course.Course, recs CourseRecords) (CourseScoreBreakdown, bool) {
	if c == nil || !c.HasRules() {
		return CourseScoreBreakdown{}, false
	}

	absences := recs.AbsenceCount()
	var continuous, participation, academic weightedAcc
	hadAttendanceRule := false

	for _, rule := range c.Rules {
		if !rule.Active() {
			continue
		}
		cat := Normalize(rule.Category)
		if cat == "" {
			continue
		}
		bucket := BucketOf(cat)

		var avg float64
		switch {
		case cat == CategoryAttendance:
			// The attendance rule encodes the absence penalty directly,
			// so no separate penalty is applied afterwards.
			hadAttendanceRule = true
			avg = 100 - c.AbsencePenalty*float64(absences)
			if avg < 0 {
				avg = 0
			}
		case cat == CategoryParticipation:
			avg = dualSourceMean(recs.gradePercentages(cat), recs.dailyPercentages(cat))
		case bucket == BucketContinuous:
			avg = Mean(append(recs.gradePercentages(cat), recs.dailyPercentages(cat)...))
		case bucket == BucketAcademic:
			avg = Mean(recs.gradePercentages(cat))
		default:
			// Unrecognized category, no bucket to feed.
			continue
		}

		if avg <= 0 {
			continue
		}
		switch bucket {
		case BucketContinuous:
			continuous.add(avg, rule.Weight)
		case BucketParticipation:
			participation.add(avg, rule.Weight)
		case BucketAcademic:
			academic.add(avg, rule.Weight)
		}
	}

	participationScore := participation.score()
	if !hadAttendanceRule && participation.weight > 0 && c.AbsencePenalty > 0 && absences > 0 {
		participationScore -= c.AbsencePenalty * float64(absences)
		if participationScore < 0 {
			participationScore = 0
		}
	}

	totalWeight := continuous.weight + participation.weight + academic.weight
	var overall float64
	if totalWeight > 0 {
		overall = (continuous.score()*continuous.weight +
			participationScore*participation.weight +
			academic.score()*academic.weight) / totalWeight
	}

	return CourseScoreBreakdown{
		CourseID:      c.ID,
		Continuous:    continuous.score(),
		Participation: participationScore,
		Academic:      academic.score(),
		Overall:       overall,
	}, true
}

// dualSourceMean combines participation observations from the grade and
// daily-performance sources. When both sources have data, their two
// means are averaged; a lone source stands on its own.
func dualSourceMean(gradePcts, dailyPcts []float64) float64 {
	switch {
	case len(gradePcts) > 0 && len(dailyPcts) > 0:
		return (Mean(gradePcts) + Mean(dailyPcts)) / 2
	case len(dailyPcts) > 0:
		return Mean(dailyPcts)
	case len(gradePcts) > 0:
		return Mean(gradePcts)
	}
	return 0
}
