package evaluation

// ══════════════════════════════════════════════════════════════════════════════
// PERFORMANCE RECORDS
// Raw per-student data as returned by the SMS platform, already mapped
// from transport DTOs. All scoring inputs flow through these types.
// ══════════════════════════════════════════════════════════════════════════════

// GradeRecord is a single formal grade entry.
type GradeRecord struct {
	StudentID string
	CourseID  string

	// Category is the raw label entered by staff; normalized at scoring time.
	Category string

	// Grade and MaxGrade define the percentage. A non-positive MaxGrade
	// makes the record unusable.
	Grade    float64
	MaxGrade float64
}

// Percentage returns the grade on the 0..100 scale.
func (g GradeRecord) Percentage() (float64, bool) {
	return ToPercentage(g.Grade, g.MaxGrade)
}

// Attendance statuses as reported by the platform.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// AttendanceRecord is a single per-day attendance entry.
type AttendanceRecord struct {
	StudentID string
	CourseID  string
	Status    string
}

// IsAbsence reports whether the record counts against the student.
// Excused absences do not.
func (a AttendanceRecord) IsAbsence() bool {
	return a.Status == AttendanceAbsent
}

// DailyPerformanceRecord is an informal day-to-day scoring entry, kept
// separate from formal grades by the platform.
type DailyPerformanceRecord struct {
	StudentID string
	CourseID  string
	Category  string
	Score     float64
	MaxScore  float64
}

// Percentage returns the score on the 0..100 scale.
func (d DailyPerformanceRecord) Percentage() (float64, bool) {
	return ToPercentage(d.Score, d.MaxScore)
}

// ══════════════════════════════════════════════════════════════════════════════
// PLATFORM SUMMARIES
// Precomputed per-student academic standing returned by the SMS platform.
// ══════════════════════════════════════════════════════════════════════════════

// CourseGrade is one course row from the platform's grade summary.
type CourseGrade struct {
	CourseID    string
	CourseName  string
	LetterGrade string
	GPA         float64
	Credits     float64
}

// Failed reports whether the course counts as failed, either by letter
// grade or by a GPA below the passing threshold.
func (c CourseGrade) Failed() bool {
	return c.LetterGrade == "F" || c.GPA < 1.0
}

// StudentCourseSummary is the platform's precomputed academic standing.
type StudentCourseSummary struct {
	StudentID    string
	OverallGPA   float64
	TotalCredits float64
	Courses      []CourseGrade
}
