package trace

// TraceLevel controls the verbosity of execution tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSlices captures every dispatch slice, context switch and idle gap.
	TraceLevelSlices TraceLevel = "slices"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelSlices: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelSlices
}

// ExecutionTrace collects the timeline of one simulation run.
type ExecutionTrace struct {
	Level    TraceLevel     `json:"level"`
	Slices   []SliceRecord  `json:"slices"`
	Switches []SwitchRecord `json:"switches"`
	Idles    []IdleRecord   `json:"idles"`
}

// NewExecutionTrace creates an ExecutionTrace ready for recording.
func NewExecutionTrace(level TraceLevel) *ExecutionTrace {
	return &ExecutionTrace{
		Level:    level,
		Slices:   make([]SliceRecord, 0),
		Switches: make([]SwitchRecord, 0),
		Idles:    make([]IdleRecord, 0),
	}
}

// RecordSlice appends a dispatch slice.
func (et *ExecutionTrace) RecordSlice(record SliceRecord) {
	et.Slices = append(et.Slices, record)
}

// RecordSwitch appends a context switch.
func (et *ExecutionTrace) RecordSwitch(record SwitchRecord) {
	et.Switches = append(et.Switches, record)
}

// RecordIdle appends an idle gap.
func (et *ExecutionTrace) RecordIdle(record IdleRecord) {
	et.Idles = append(et.Idles, record)
}

// Clone returns a deep copy of the trace. A nil trace clones to nil.
func (et *ExecutionTrace) Clone() *ExecutionTrace {
	if et == nil {
		return nil
	}
	return &ExecutionTrace{
		Level:    et.Level,
		Slices:   append(make([]SliceRecord, 0, len(et.Slices)), et.Slices...),
		Switches: append(make([]SwitchRecord, 0, len(et.Switches)), et.Switches...),
		Idles:    append(make([]IdleRecord, 0, len(et.Idles)), et.Idles...),
	}
}
