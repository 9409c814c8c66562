// Derives per-process and aggregate scheduling metrics from finalized process states:
// waiting, turnaround and response times, throughput, utilization and context switches.

package sim

import (
	"sort"

	"github.com/inference-sim/cpusched/sim/trace"
)

// ProcessMetrics is the metrics row of one process at the end of a run.
// Times are in ticks.
type ProcessMetrics struct {
	PID             int          `json:"pid"`
	Name            string       `json:"name"`
	ArrivalTime     int64        `json:"arrival_time"`
	BurstTime       int64        `json:"burst_time"`
	Priority        int          `json:"priority"`
	StartTime       int64        `json:"start_time"`
	FinishTime      int64        `json:"finish_time"`
	WaitingTime     int64        `json:"waiting_time"`
	TurnaroundTime  int64        `json:"turnaround_time"`
	ResponseTime    int64        `json:"response_time"`
	Responded       bool         `json:"responded"` // false if never dispatched; ResponseTime is then meaningless
	ContextSwitches int          `json:"context_switches"`
	Completed       bool         `json:"completed"`
	FinalState      ProcessState `json:"final_state"`
}

// Statistics is the result record of one run. It is built once by
// CalculateStatistics and not modified afterwards. Processes and Trace are
// owned by the record and are not shared with the Simulator that produced it;
// callers should treat them as read-only.
type Statistics struct {
	SchedulerName      string           `json:"scheduler_name"`
	Processes          []ProcessMetrics `json:"processes"`
	TotalProcesses     int              `json:"total_processes"`
	CompletedProcesses int              `json:"completed_processes"`

	TotalTurnaroundTime int64   `json:"total_turnaround_time"`
	TotalWaitingTime    int64   `json:"total_waiting_time"`
	TotalResponseTime   int64   `json:"total_response_time"`
	AvgTurnaroundTime   float64 `json:"avg_turnaround_time"`
	AvgWaitingTime      float64 `json:"avg_waiting_time"`
	AvgResponseTime     float64 `json:"avg_response_time"` // divides by dispatched processes, not TotalProcesses

	Throughput           float64 `json:"throughput"`      // completed processes per tick
	CPUUtilization       float64 `json:"cpu_utilization"` // 1 - idle/elapsed
	TotalContextSwitches int     `json:"total_context_switches"`
	TotalElapsedTime     int64   `json:"total_elapsed_time"`
	IdleTime             int64   `json:"idle_time"`

	Trace *trace.ExecutionTrace `json:"trace,omitempty"`
}

// CalculateStatistics aggregates metrics rows. elapsed is the final clock and
// idle the time the CPU had nothing ready. rows is copied.
func CalculateStatistics(schedulerName string, rows []ProcessMetrics, elapsed, idle int64) Statistics {
	stats := Statistics{
		SchedulerName:    schedulerName,
		Processes:        append([]ProcessMetrics(nil), rows...),
		TotalProcesses:   len(rows),
		TotalElapsedTime: elapsed,
		IdleTime:         idle,
	}
	if len(rows) == 0 {
		return stats
	}

	responded := 0
	for _, m := range rows {
		stats.TotalTurnaroundTime += m.TurnaroundTime
		stats.TotalWaitingTime += m.WaitingTime
		if m.Responded {
			stats.TotalResponseTime += m.ResponseTime
			responded++
		}
		stats.TotalContextSwitches += m.ContextSwitches
		if m.Completed {
			stats.CompletedProcesses++
		}
	}

	n := float64(len(rows))
	stats.AvgTurnaroundTime = float64(stats.TotalTurnaroundTime) / n
	stats.AvgWaitingTime = float64(stats.TotalWaitingTime) / n
	if responded > 0 {
		stats.AvgResponseTime = float64(stats.TotalResponseTime) / float64(responded)
	}
	if elapsed > 0 {
		stats.Throughput = float64(stats.CompletedProcesses) / float64(elapsed)
		stats.CPUUtilization = 1.0 - float64(idle)/float64(elapsed)
	}
	return stats
}

// ThroughputPerMs returns completed processes per millisecond.
func (s Statistics) ThroughputPerMs() float64 {
	return s.Throughput * TicksPerMillisecond
}

// CompletionOrder returns process names ordered by finish time. Unfinished
// processes are omitted; ties keep workload order.
func (s Statistics) CompletionOrder() []string {
	done := make([]ProcessMetrics, 0, len(s.Processes))
	for _, m := range s.Processes {
		if m.Completed {
			done = append(done, m)
		}
	}
	sort.SliceStable(done, func(i, j int) bool { return done[i].FinishTime < done[j].FinishTime })
	names := make([]string, len(done))
	for i, m := range done {
		names[i] = m.Name
	}
	return names
}

// Process returns the metrics row with the given name.
func (s Statistics) Process(name string) (ProcessMetrics, bool) {
	for _, m := range s.Processes {
		if m.Name == name {
			return m, true
		}
	}
	return ProcessMetrics{}, false
}
