// Package trace provides execution-trace recording for scheduling runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// SliceRecord captures one dispatch: a process running from Start for Duration ticks.
type SliceRecord struct {
	PID        int    `json:"pid"`
	Name       string `json:"name"`
	Start      int64  `json:"start"`
	Duration   int64  `json:"duration"`
	Terminated bool   `json:"terminated"`
}

// End returns the tick at which the slice finished.
func (r SliceRecord) End() int64 { return r.Start + r.Duration }

// SwitchRecord captures a context switch. FromPID is 0 when the CPU had no
// current process.
type SwitchRecord struct {
	Clock    int64 `json:"clock"`
	FromPID  int   `json:"from_pid"`
	ToPID    int   `json:"to_pid"`
	Overhead int64 `json:"overhead"`
}

// IdleRecord captures a gap in which no process was ready.
type IdleRecord struct {
	Start    int64 `json:"start"`
	Duration int64 `json:"duration"`
}
