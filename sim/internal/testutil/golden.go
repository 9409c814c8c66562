// Package testutil provides shared test infrastructure for the scheduling simulator.
// It holds the golden dataset types and assertion helpers used by sim/ and
// its sub-package tests. It deliberately does not import sim so that
// in-package tests can use it.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-traced run. All times are in ticks.
type GoldenTestCase struct {
	Name                  string          `json:"name"`
	Policy                string          `json:"policy"`
	TimeQuantum           int64           `json:"time_quantum"`
	TimeSlice             int64           `json:"time_slice"`
	NumQueues             int             `json:"num_queues"`
	BaseQuantum           int64           `json:"base_quantum"`
	BoostInterval         int64           `json:"boost_interval"`
	ContextSwitchOverhead int64           `json:"context_switch_overhead"`
	Processes             []GoldenProcess `json:"processes"`
	Metrics               GoldenMetrics   `json:"metrics"`
}

// GoldenProcess is one workload entry of a golden case.
type GoldenProcess struct {
	Name        string `json:"name"`
	ArrivalTime int64  `json:"arrival_time"`
	BurstTime   int64  `json:"burst_time"`
	Priority    int    `json:"priority"`
}

// GoldenMetrics represents the expected result of a golden case.
type GoldenMetrics struct {
	CompletionOrder      []string                 `json:"completion_order"`
	TotalElapsedTime     int64                    `json:"total_elapsed_time"`
	IdleTime             int64                    `json:"idle_time"`
	TotalContextSwitches int                      `json:"total_context_switches"`
	Processes            map[string]GoldenProcRow `json:"processes"`
}

// GoldenProcRow is the expected metrics row of one process.
type GoldenProcRow struct {
	FinishTime      int64 `json:"finish_time"`
	WaitingTime     int64 `json:"waiting_time"`
	TurnaroundTime  int64 `json:"turnaround_time"`
	ResponseTime    int64 `json:"response_time"`
	ContextSwitches int   `json:"context_switches"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
