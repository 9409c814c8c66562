package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/cpusched/sim/internal/testutil"
)

func TestCalculateStatistics_Averages(t *testing.T) {
	// GIVEN three completed rows and one that was never dispatched
	rows := []ProcessMetrics{
		{Name: "A", WaitingTime: 0, TurnaroundTime: 5, ResponseTime: 0, Responded: true, Completed: true, ContextSwitches: 1},
		{Name: "B", WaitingTime: 4, TurnaroundTime: 7, ResponseTime: 4, Responded: true, Completed: true},
		{Name: "C", WaitingTime: 6, TurnaroundTime: 7, ResponseTime: 2, Responded: true, Completed: true, ContextSwitches: 2},
		{Name: "D", WaitingTime: 2, TurnaroundTime: 2},
	}

	// WHEN aggregated over 20 elapsed ticks with 4 idle
	stats := CalculateStatistics("test", rows, 20, 4)

	// THEN turnaround and waiting average over every row, response over dispatched rows
	assert.Equal(t, "test", stats.SchedulerName)
	assert.Equal(t, 4, stats.TotalProcesses)
	assert.Equal(t, 3, stats.CompletedProcesses)
	assert.Equal(t, int64(21), stats.TotalTurnaroundTime)
	assert.Equal(t, int64(12), stats.TotalWaitingTime)
	assert.Equal(t, int64(6), stats.TotalResponseTime)
	testutil.AssertFloat64Equal(t, "avg turnaround", 5.25, stats.AvgTurnaroundTime, 1e-12)
	testutil.AssertFloat64Equal(t, "avg waiting", 3.0, stats.AvgWaitingTime, 1e-12)
	testutil.AssertFloat64Equal(t, "avg response", 2.0, stats.AvgResponseTime, 1e-12)
	testutil.AssertFloat64Equal(t, "throughput", 3.0/20.0, stats.Throughput, 1e-12)
	testutil.AssertFloat64Equal(t, "throughput per ms", 150.0, stats.ThroughputPerMs(), 1e-12)
	testutil.AssertFloat64Equal(t, "utilization", 0.8, stats.CPUUtilization, 1e-12)
	assert.Equal(t, 3, stats.TotalContextSwitches)
}

func TestCalculateStatistics_Empty_ZeroValues(t *testing.T) {
	stats := CalculateStatistics("empty", nil, 0, 0)
	assert.Equal(t, 0, stats.TotalProcesses)
	assert.Zero(t, stats.AvgWaitingTime)
	assert.Zero(t, stats.Throughput)
	assert.Zero(t, stats.CPUUtilization)
	assert.Empty(t, stats.CompletionOrder())
}

func TestCalculateStatistics_ZeroElapsed_NoDivision(t *testing.T) {
	stats := CalculateStatistics("instant", []ProcessMetrics{{Name: "A"}}, 0, 0)
	assert.Zero(t, stats.Throughput)
	assert.Zero(t, stats.CPUUtilization)
}

func TestCalculateStatistics_CopiesRows(t *testing.T) {
	rows := []ProcessMetrics{{Name: "A", Completed: true}}
	stats := CalculateStatistics("copy", rows, 1, 0)
	rows[0].Name = "mutated"
	assert.Equal(t, "A", stats.Processes[0].Name)
}

func TestStatistics_CompletionOrder_OmitsUnfinished_StableOnTies(t *testing.T) {
	stats := Statistics{Processes: []ProcessMetrics{
		{Name: "late", FinishTime: 9, Completed: true},
		{Name: "tie-a", FinishTime: 4, Completed: true},
		{Name: "open", FinishTime: 1},
		{Name: "tie-b", FinishTime: 4, Completed: true},
	}}
	assert.Equal(t, []string{"tie-a", "tie-b", "late"}, stats.CompletionOrder())
}

func TestStatistics_Process_LookupByName(t *testing.T) {
	stats := Statistics{Processes: []ProcessMetrics{{Name: "A", PID: 1}, {Name: "B", PID: 2}}}
	m, ok := stats.Process("B")
	assert.True(t, ok)
	assert.Equal(t, 2, m.PID)
	_, ok = stats.Process("Z")
	assert.False(t, ok)
}
