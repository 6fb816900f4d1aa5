// Package snapshot collects per-student performance data from the SMS
// platform and turns it into ranked summaries. The fetcher handles one
// student; the orchestrator drives batched collection runs.
package snapshot

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// DATA SOURCE
// ══════════════════════════════════════════════════════════════════════════════

// DataSource is the read interface to the SMS platform. The HTTP client
// in infrastructure/external/sms implements it.
type DataSource interface {
	// GetStudentCourseSummary returns the platform's precomputed
	// academic standing for a student.
	GetStudentCourseSummary(ctx context.Context, studentID string) (evaluation.StudentCourseSummary, error)

	// GetAttendance returns all attendance records for a student.
	GetAttendance(ctx context.Context, studentID string) ([]evaluation.AttendanceRecord, error)

	// GetGrades returns all formal grade records for a student.
	GetGrades(ctx context.Context, studentID string) ([]evaluation.GradeRecord, error)

	// GetDailyPerformance returns all daily-performance records for a student.
	GetDailyPerformance(ctx context.Context, studentID string) ([]evaluation.DailyPerformanceRecord, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// FETCHER
// ══════════════════════════════════════════════════════════════════════════════

// FetcherConfig controls per-student fetch behavior.
type FetcherConfig struct {
	// Timeout bounds all four platform calls for one student together.
	Timeout time.Duration
}

// DefaultFetcherConfig returns the standard fetch settings.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout: 5 * time.Second,
	}
}

// Fetcher builds the performance snapshot for a single student. Every
// failure degrades to missing data: a source that errors or times out
// contributes an empty collection, and the caller always receives a
// summary, possibly fully zeroed. There is no error return path.
type Fetcher struct {
	source DataSource
	config FetcherConfig
	logger *slog.Logger
}

// NewFetcher creates a snapshot fetcher.
func NewFetcher(source DataSource, config FetcherConfig, logger *slog.Logger) *Fetcher {
	if config.Timeout <= 0 {
		config.Timeout = DefaultFetcherConfig().Timeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		source: source,
		config: config,
		logger: logger,
	}
}

// Snapshot fetches the four platform collections for one student
// concurrently under a shared deadline, scores every catalog course the
// records reference, and folds the results into a StudentSummary.
func (f *Fetcher) Snapshot(ctx context.Context, st *student.Student, catalog []*course.Course) evaluation.StudentSummary {
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	var (
		platform   evaluation.StudentCourseSummary
		attendance []evaluation.AttendanceRecord
		grades     []evaluation.GradeRecord
		daily      []evaluation.DailyPerformanceRecord
	)

	// Each goroutine owns exactly one of the variables above and always
	// returns nil, so one failed source never cancels the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := f.source.GetStudentCourseSummary(gctx, st.ID)
		if err != nil {
			f.logger.Debug("course summary unavailable", "student_id", st.ID, "error", err)
			return nil
		}
		platform = v
		return nil
	})
	g.Go(func() error {
		v, err := f.source.GetAttendance(gctx, st.ID)
		if err != nil {
			f.logger.Debug("attendance unavailable", "student_id", st.ID, "error", err)
			return nil
		}
		attendance = v
		return nil
	})
	g.Go(func() error {
		v, err := f.source.GetGrades(gctx, st.ID)
		if err != nil {
			f.logger.Debug("grades unavailable", "student_id", st.ID, "error", err)
			return nil
		}
		grades = v
		return nil
	})
	g.Go(func() error {
		v, err := f.source.GetDailyPerformance(gctx, st.ID)
		if err != nil {
			f.logger.Debug("daily performance unavailable", "student_id", st.ID, "error", err)
			return nil
		}
		daily = v
		return nil
	})
	_ = g.Wait()

	summary := buildSummary(st.ID, catalog, platform, grades, attendance, daily)
	summary.DisplayName = st.DisplayName()
	summary.Active = st.IsActive()
	return summary
}

// buildSummary scores the catalog courses referenced by the records and
// aggregates them into the student-level summary. Courses without
// evaluation rules are skipped, not scored as zero.
func buildSummary(studentID string, catalog []*course.Course, platform evaluation.StudentCourseSummary, grades []evaluation.GradeRecord, attendance []evaluation.AttendanceRecord, daily []evaluation.DailyPerformanceRecord) evaluation.StudentSummary {
	gradesByCourse := make(map[string][]evaluation.GradeRecord)
	for _, g := range grades {
		gradesByCourse[g.CourseID] = append(gradesByCourse[g.CourseID], g)
	}
	attendanceByCourse := make(map[string][]evaluation.AttendanceRecord)
	for _, a := range attendance {
		attendanceByCourse[a.CourseID] = append(attendanceByCourse[a.CourseID], a)
	}
	dailyByCourse := make(map[string][]evaluation.DailyPerformanceRecord)
	for _, d := range daily {
		dailyByCourse[d.CourseID] = append(dailyByCourse[d.CourseID], d)
	}

	// Catalog order keeps the breakdown list deterministic across runs.
	var breakdowns []evaluation.CourseScoreBreakdown
	for _, c := range catalog {
		recs := evaluation.CourseRecords{
			Grades:     gradesByCourse[c.ID],
			Attendance: attendanceByCourse[c.ID],
			Daily:      dailyByCourse[c.ID],
		}
		if len(recs.Grades) == 0 && len(recs.Attendance) == 0 && len(recs.Daily) == 0 {
			continue
		}
		if b, ok := evaluation.ScoreCourse(c, recs); ok {
			breakdowns = append(breakdowns, b)
		}
	}

	return evaluation.SummarizeStudent(studentID, breakdowns, grades, attendance, platform)
}
