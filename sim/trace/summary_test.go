package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	et := NewExecutionTrace(TraceLevelSlices)

	// WHEN summarized
	summary := Summarize(et)

	// THEN all counts are zero
	if summary.TotalSlices != 0 || summary.TotalSwitches != 0 || summary.IdleIntervals != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.BusyTime != 0 || summary.IdleTime != 0 || summary.SwitchTime != 0 {
		t.Error("expected zero times")
	}
	if len(summary.SlicesPerProcess) != 0 {
		t.Error("expected empty per-process map")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("expected non-nil summary")
	}
	if summary.TotalSlices != 0 {
		t.Errorf("expected 0 slices, got %d", summary.TotalSlices)
	}
	if summary.ExecutedPerProcess == nil {
		t.Error("expected initialized map")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a round-robin style timeline for two processes
	et := NewExecutionTrace(TraceLevelSlices)
	et.RecordSwitch(SwitchRecord{Clock: 0, FromPID: 0, ToPID: 1, Overhead: 1})
	et.RecordSlice(SliceRecord{PID: 1, Name: "P1", Start: 1, Duration: 2})
	et.RecordSwitch(SwitchRecord{Clock: 3, FromPID: 1, ToPID: 2, Overhead: 1})
	et.RecordSlice(SliceRecord{PID: 2, Name: "P2", Start: 4, Duration: 2, Terminated: true})
	et.RecordSwitch(SwitchRecord{Clock: 6, FromPID: 2, ToPID: 1, Overhead: 1})
	et.RecordSlice(SliceRecord{PID: 1, Name: "P1", Start: 7, Duration: 1, Terminated: true})
	et.RecordIdle(IdleRecord{Start: 8, Duration: 10})

	// WHEN summarized
	summary := Summarize(et)

	// THEN counts and totals match
	if summary.TotalSlices != 3 {
		t.Errorf("expected 3 slices, got %d", summary.TotalSlices)
	}
	if summary.TotalSwitches != 3 {
		t.Errorf("expected 3 switches, got %d", summary.TotalSwitches)
	}
	if summary.BusyTime != 5 {
		t.Errorf("expected busy time 5, got %d", summary.BusyTime)
	}
	if summary.SwitchTime != 3 {
		t.Errorf("expected switch time 3, got %d", summary.SwitchTime)
	}
	if summary.IdleIntervals != 1 || summary.IdleTime != 10 {
		t.Errorf("expected one idle gap of 10, got %d gaps of %d", summary.IdleIntervals, summary.IdleTime)
	}
	if summary.SlicesPerProcess[1] != 2 || summary.SlicesPerProcess[2] != 1 {
		t.Errorf("unexpected slice distribution %v", summary.SlicesPerProcess)
	}
	if summary.ExecutedPerProcess[1] != 3 || summary.ExecutedPerProcess[2] != 2 {
		t.Errorf("unexpected executed distribution %v", summary.ExecutedPerProcess)
	}
}
