package snapshot

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// fakeFetcher marks students as data-rich according to richByID and
// counts every fetch.
type fakeFetcher struct {
	mu       sync.Mutex
	fetched  []string
	richByID map[string]bool
}

func (f *fakeFetcher) Snapshot(ctx context.Context, st *student.Student, catalog []*course.Course) evaluation.StudentSummary {
	f.mu.Lock()
	f.fetched = append(f.fetched, st.ID)
	f.mu.Unlock()

	s := evaluation.StudentSummary{StudentID: st.ID, Active: st.IsActive()}
	if f.richByID[st.ID] {
		s.Overall = 75
	}
	return s
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetched)
}

func makeStudents(t *testing.T, n int, inactive ...int) []*student.Student {
	t.Helper()
	out := make([]*student.Student, 0, n)
	for i := 0; i < n; i++ {
		st, err := student.NewStudent(fmt.Sprintf("st%02d", i), "Student", fmt.Sprintf("%02d", i))
		require.NoError(t, err)
		out = append(out, st)
	}
	for _, i := range inactive {
		require.NoError(t, out[i].SetStatus(student.StatusInactive))
	}
	return out
}

func TestOrchestrator_StopsEarlyOnSufficiency(t *testing.T) {
	// First twelve students are data-rich; with window 6 and target 12
	// the run must stop after two windows.
	rich := make(map[string]bool)
	for i := 0; i < 12; i++ {
		rich[fmt.Sprintf("st%02d", i)] = true
	}
	fetcher := &fakeFetcher{richByID: rich}
	o := NewOrchestrator(fetcher, DefaultConfig(), nil)

	results := o.Collect(context.Background(), makeStudents(t, 20), nil)

	assert.Equal(t, 12, fetcher.count())
	assert.Len(t, results, 12)
}

func TestOrchestrator_FetchesAllWhenDataSparse(t *testing.T) {
	fetcher := &fakeFetcher{richByID: map[string]bool{}}
	o := NewOrchestrator(fetcher, DefaultConfig(), nil)

	results := o.Collect(context.Background(), makeStudents(t, 20), nil)

	assert.Equal(t, 20, fetcher.count())
	assert.Len(t, results, 20)
}

func TestOrchestrator_HardCap(t *testing.T) {
	fetcher := &fakeFetcher{richByID: map[string]bool{}}
	o := NewOrchestrator(fetcher, DefaultConfig(), nil)

	results := o.Collect(context.Background(), makeStudents(t, 80), nil)

	assert.Equal(t, 60, fetcher.count())
	assert.Len(t, results, 60)
}

func TestOrchestrator_ActiveStudentsFirst(t *testing.T) {
	// Students 0 and 1 are inactive; with a window of 2 and rich data
	// everywhere, the first window must hold the first two active ones.
	rich := make(map[string]bool)
	for i := 0; i < 6; i++ {
		rich[fmt.Sprintf("st%02d", i)] = true
	}
	fetcher := &fakeFetcher{richByID: rich}
	o := NewOrchestrator(fetcher, Config{WindowSize: 2, MaxStudents: 6, TopCount: 1, MinSufficiency: 2}, nil)

	results := o.Collect(context.Background(), makeStudents(t, 6, 0, 1), nil)

	require.Len(t, results, 2)
	assert.Equal(t, "st02", results[0].StudentID)
	assert.Equal(t, "st03", results[1].StudentID)
}

func TestOrchestrator_StableOrderWithinWindow(t *testing.T) {
	fetcher := &fakeFetcher{richByID: map[string]bool{}}
	o := NewOrchestrator(fetcher, Config{WindowSize: 4, MaxStudents: 8, TopCount: 5, MinSufficiency: 12}, nil)

	results := o.Collect(context.Background(), makeStudents(t, 8), nil)

	require.Len(t, results, 8)
	for i, s := range results {
		assert.Equal(t, fmt.Sprintf("st%02d", i), s.StudentID)
	}
}

func TestOrchestrator_CancelledContextStopsBetweenWindows(t *testing.T) {
	fetcher := &fakeFetcher{richByID: map[string]bool{}}
	o := NewOrchestrator(fetcher, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := o.Collect(ctx, makeStudents(t, 20), nil)

	assert.Empty(t, results)
	assert.Equal(t, 0, fetcher.count())
}

func TestConfig_SufficiencyTarget(t *testing.T) {
	assert.Equal(t, 12, DefaultConfig().SufficiencyTarget())

	c := Config{TopCount: 10, MinSufficiency: 12}
	assert.Equal(t, 20, c.SufficiencyTarget())
}
