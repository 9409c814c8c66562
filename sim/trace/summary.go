package trace

// TraceSummary aggregates statistics from an ExecutionTrace.
type TraceSummary struct {
	TotalSlices        int
	TotalSwitches      int
	IdleIntervals      int
	BusyTime           int64
	IdleTime           int64
	SwitchTime         int64
	SlicesPerProcess   map[int]int   // pid -> number of dispatch slices
	ExecutedPerProcess map[int]int64 // pid -> executed ticks
}

// Summarize computes aggregate statistics from an ExecutionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(et *ExecutionTrace) *TraceSummary {
	summary := &TraceSummary{
		SlicesPerProcess:   make(map[int]int),
		ExecutedPerProcess: make(map[int]int64),
	}
	if et == nil {
		return summary
	}

	summary.TotalSlices = len(et.Slices)
	for _, s := range et.Slices {
		summary.BusyTime += s.Duration
		summary.SlicesPerProcess[s.PID]++
		summary.ExecutedPerProcess[s.PID] += s.Duration
	}

	summary.TotalSwitches = len(et.Switches)
	for _, s := range et.Switches {
		summary.SwitchTime += s.Overhead
	}

	summary.IdleIntervals = len(et.Idles)
	for _, i := range et.Idles {
		summary.IdleTime += i.Duration
	}

	return summary
}
