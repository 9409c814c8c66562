package workload

import (
	"fmt"

	"github.com/inference-sim/cpusched/sim"
)

// Preset names.
const (
	PresetIOBound      = "io-bound"
	PresetCPUBound     = "cpu-bound"
	PresetMixed        = "mixed"
	PresetArrivalBurst = "arrival-burst"
	PresetPriority     = "priority"
	PresetControlled   = "controlled"
)

// PresetNames lists every preset in display order.
var PresetNames = []string{PresetIOBound, PresetCPUBound, PresetMixed, PresetArrivalBurst, PresetPriority, PresetControlled}

// BenchmarkPresets are the presets the benchmark command sweeps.
var BenchmarkPresets = []string{PresetIOBound, PresetCPUBound, PresetMixed, PresetArrivalBurst, PresetPriority}

// row is {arrival ms, burst ms, priority}.
type row [3]int

var presets = map[string][]row{
	// mostly short jobs with one long one
	PresetIOBound: {
		{0, 2, 3}, {1, 1, 5}, {2, 3, 2}, {3, 1, 4}, {4, 2, 1},
		{5, 15, 3}, {6, 1, 5}, {7, 2, 4}, {8, 3, 2}, {9, 1, 1},
	},
	// mostly long jobs with two short exceptions
	PresetCPUBound: {
		{0, 10, 3}, {2, 15, 5}, {4, 8, 2}, {6, 20, 4}, {8, 3, 1},
		{10, 12, 3}, {12, 2, 5}, {14, 18, 4}, {16, 9, 2}, {18, 14, 1},
	},
	PresetMixed: {
		{0, 8, 3}, {1, 2, 5}, {3, 15, 2}, {5, 3, 4}, {6, 10, 1},
		{8, 1, 3}, {9, 12, 5}, {10, 5, 4}, {12, 4, 2}, {14, 20, 1},
	},
	// burst shrinks as arrival grows
	PresetArrivalBurst: {
		{0, 20, 3}, {2, 18, 5}, {4, 16, 2}, {6, 14, 4}, {8, 12, 1},
		{10, 10, 3}, {12, 8, 5}, {14, 6, 4}, {16, 4, 2}, {18, 2, 1},
	},
	// high-priority jobs arrive after low-priority ones
	PresetPriority: {
		{0, 10, 1}, {2, 8, 2}, {4, 6, 1}, {6, 10, 3}, {8, 8, 3},
		{10, 6, 2}, {12, 10, 5}, {14, 8, 5}, {16, 6, 4}, {18, 4, 4},
	},
	PresetControlled: {
		{0, 10, 3}, {2, 6, 5}, {4, 12, 1}, {6, 4, 4}, {8, 8, 2},
	},
}

// IsValidPreset reports whether name is a known preset.
func IsValidPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// Preset returns a fresh copy of the named workload in ticks. Processes are
// named P1..Pn.
func Preset(name string) ([]sim.ProcessSpec, error) {
	rows, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q; valid: %v", sim.ErrInvalidConfig, name, PresetNames)
	}
	out := make([]sim.ProcessSpec, len(rows))
	for i, r := range rows {
		out[i] = sim.ProcessSpec{
			Name:        fmt.Sprintf("P%d", i+1),
			ArrivalTime: int64(r[0]) * sim.TicksPerMillisecond,
			BurstTime:   int64(r[1]) * sim.TicksPerMillisecond,
			Priority:    r[2],
		}
	}
	return out, nil
}
