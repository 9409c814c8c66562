package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/inference-sim/cpusched/sim/trace"
)

// TicksPerMillisecond converts between simulation ticks (microseconds) and milliseconds.
const TicksPerMillisecond = 1000

// DefaultContextSwitchOverhead is the per-switch cost in ticks (1 µs).
const DefaultContextSwitchOverhead int64 = 1

var (
	// ErrInvalidConfig wraps every rejected configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrEmptyWorkload is returned when a run is attempted with no processes.
	ErrEmptyWorkload = errors.New("empty workload")
)

// SimConfig groups engine parameters shared by every policy.
type SimConfig struct {
	ContextSwitchOverhead int64            // ticks charged per context switch (>= 0)
	Horizon               int64            // optional time limit in ticks (math.MaxInt64 = none)
	TraceLevel            trace.TraceLevel // "" or "none" disables execution tracing
}

// NewSimConfig creates a SimConfig with all fields explicitly specified.
func NewSimConfig(contextSwitchOverhead, horizon int64, traceLevel trace.TraceLevel) SimConfig {
	return SimConfig{
		ContextSwitchOverhead: contextSwitchOverhead,
		Horizon:               horizon,
		TraceLevel:            traceLevel,
	}
}

// DefaultSimConfig returns a 1-tick context switch, no time limit and no trace.
func DefaultSimConfig() SimConfig {
	return NewSimConfig(DefaultContextSwitchOverhead, math.MaxInt64, trace.TraceLevelNone)
}

// Validate checks parameter ranges.
func (c SimConfig) Validate() error {
	if c.ContextSwitchOverhead < 0 {
		return fmt.Errorf("%w: context switch overhead must be non-negative, got %d", ErrInvalidConfig, c.ContextSwitchOverhead)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidConfig, c.Horizon)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}

// PolicyConfig groups the parameters of every built-in policy. Each policy
// reads only its own fields.
type PolicyConfig struct {
	TimeQuantum   int64 // rr, rr-priority
	TimeSlice     int64 // srtf
	NumQueues     int   // mlfq
	BaseQuantum   int64 // mlfq, quantum of queue 0
	BoostInterval int64 // mlfq, execution ticks between priority boosts
}

// NewPolicyConfig creates a PolicyConfig with all fields explicitly specified.
func NewPolicyConfig(timeQuantum, timeSlice int64, numQueues int, baseQuantum, boostInterval int64) PolicyConfig {
	return PolicyConfig{
		TimeQuantum:   timeQuantum,
		TimeSlice:     timeSlice,
		NumQueues:     numQueues,
		BaseQuantum:   baseQuantum,
		BoostInterval: boostInterval,
	}
}

// DefaultPolicyConfig returns quantum 2 ms, slice 1 ms, 3 queues with a 4 ms
// base quantum and a 50 ms boost interval.
func DefaultPolicyConfig() PolicyConfig {
	return NewPolicyConfig(2*TicksPerMillisecond, 1*TicksPerMillisecond, 3, 4*TicksPerMillisecond, 50*TicksPerMillisecond)
}

// Validate checks the fields the named policy uses.
func (c PolicyConfig) Validate(name string) error {
	if !IsValidPolicy(name) {
		return fmt.Errorf("%w %q", ErrUnknownPolicy, name)
	}
	switch name {
	case PolicyRR, PolicyRRPriority:
		if c.TimeQuantum <= 0 {
			return fmt.Errorf("%w: %s time quantum must be positive, got %d", ErrInvalidConfig, name, c.TimeQuantum)
		}
	case PolicySRTF:
		if c.TimeSlice <= 0 {
			return fmt.Errorf("%w: srtf time slice must be positive, got %d", ErrInvalidConfig, c.TimeSlice)
		}
	case PolicyMLFQ:
		if c.NumQueues <= 0 {
			return fmt.Errorf("%w: mlfq queue count must be positive, got %d", ErrInvalidConfig, c.NumQueues)
		}
		if c.BaseQuantum <= 0 {
			return fmt.Errorf("%w: mlfq base quantum must be positive, got %d", ErrInvalidConfig, c.BaseQuantum)
		}
		if c.NumQueues > 63 || c.BaseQuantum > math.MaxInt64>>(c.NumQueues-1) {
			return fmt.Errorf("%w: mlfq quantum of level %d overflows (base %d)", ErrInvalidConfig, c.NumQueues-1, c.BaseQuantum)
		}
		if c.BoostInterval <= 0 {
			return fmt.Errorf("%w: mlfq boost interval must be positive, got %d", ErrInvalidConfig, c.BoostInterval)
		}
	}
	return nil
}

// TicksToMs converts ticks to milliseconds.
func TicksToMs(t int64) float64 {
	return float64(t) / TicksPerMillisecond
}

// MsToTicks converts milliseconds to ticks, rounding to the nearest tick.
func MsToTicks(ms float64) int64 {
	return int64(math.Round(ms * TicksPerMillisecond))
}
