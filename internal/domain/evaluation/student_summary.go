package evaluation

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT SUMMARY
// ══════════════════════════════════════════════════════════════════════════════

// StudentSummary is the derived performance snapshot for one student,
// averaged across the student's scored courses. All scores are rounded
// to one decimal place.
type StudentSummary struct {
	StudentID   string  `json:"student_id"`
	DisplayName string  `json:"display_name"`
	Active      bool    `json:"active"`

	Continuous    float64 `json:"continuous"`
	Participation float64 `json:"participation"`
	Academic      float64 `json:"academic"`
	Overall       float64 `json:"overall"`

	ExamAverage    float64 `json:"exam_average"`
	AttendanceRate float64 `json:"attendance_rate"`
	TotalCourses   int     `json:"total_courses"`
	TotalCredits   float64 `json:"total_credits"`
	FailedCourses  int     `json:"failed_courses"`
}

// DataRich reports whether the snapshot carries any real signal. The
// batch orchestrator uses this to decide when enough students have been
// fetched to produce meaningful rankings.
func (s StudentSummary) DataRich() bool {
	return s.Continuous != 0 ||
		s.Participation != 0 ||
		s.Academic != 0 ||
		s.Overall != 0 ||
		s.ExamAverage != 0 ||
		s.AttendanceRate != 0 ||
		s.TotalCourses != 0 ||
		s.TotalCredits != 0 ||
		s.FailedCourses != 0
}

// SummarizeStudent folds per-course breakdowns and raw records into a
// student-level summary. Each scored course counts equally; credit
// weights play no role in the four score fields. An empty breakdown
// list yields zeroed scores, never an error.
func SummarizeStudent(studentID string, breakdowns []CourseScoreBreakdown, grades []GradeRecord, attendance []AttendanceRecord, platform StudentCourseSummary) StudentSummary {
	summary := StudentSummary{StudentID: studentID}

	if len(breakdowns) > 0 {
		continuous := make([]float64, 0, len(breakdowns))
		participation := make([]float64, 0, len(breakdowns))
		academic := make([]float64, 0, len(breakdowns))
		overall := make([]float64, 0, len(breakdowns))
		for _, b := range breakdowns {
			continuous = append(continuous, b.Continuous)
			participation = append(participation, b.Participation)
			academic = append(academic, b.Academic)
			overall = append(overall, b.Overall)
		}
		summary.Continuous = Round1(Mean(continuous))
		summary.Participation = Round1(Mean(participation))
		summary.Academic = Round1(Mean(academic))
		summary.Overall = Round1(Mean(overall))
	}

	summary.ExamAverage = Round1(examAverage(grades))
	summary.AttendanceRate = Round1(attendanceRate(attendance))

	summary.TotalCourses = len(platform.Courses)
	summary.TotalCredits = platform.TotalCredits
	for _, c := range platform.Courses {
		if c.Failed() {
			summary.FailedCourses++
		}
	}

	return summary
}

// examAverage is the mean grade percentage over formal examination
// categories: midterm, final, and exam.
func examAverage(grades []GradeRecord) float64 {
	var pcts []float64
	for _, g := range grades {
		switch Normalize(g.Category) {
		case CategoryMidterm, CategoryFinal, CategoryExam:
			if pct, ok := g.Percentage(); ok {
				pcts = append(pcts, pct)
			}
		}
	}
	return Mean(pcts)
}

// attendanceRate is the share of attendance records marked present,
// as a percentage. No records means 0, not 100.
func attendanceRate(records []AttendanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	present := 0
	for _, r := range records {
		if r.Status == AttendancePresent {
			present++
		}
	}
	return float64(present) / float64(len(records)) * 100
}
