package cmd

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/compare"
	"github.com/inference-sim/cpusched/sim/trace"
)

func runFCFS(t *testing.T, cfg sim.SimConfig) sim.Statistics {
	t.Helper()
	stats, err := sim.Simulate(cfg, sim.NewFCFS(), []sim.ProcessSpec{
		{Name: "A", BurstTime: 2000, Priority: 1},
		{Name: "B", ArrivalTime: 500, BurstTime: 1500, Priority: 2},
	})
	require.NoError(t, err)
	return stats
}

func TestPrintProcessTable_RowsInMilliseconds(t *testing.T) {
	stats := runFCFS(t, sim.NewSimConfig(0, math.MaxInt64, trace.TraceLevelNone))
	var buf bytes.Buffer

	printProcessTable(&buf, stats)

	text := buf.String()
	assert.Contains(t, text, "First Come First Served")
	assert.Contains(t, text, "2.000") // A's burst and B's start
	assert.Contains(t, text, "1.500") // B's burst and wait
	assert.Contains(t, text, "Average")
}

func TestPrintProcessTable_UnfinishedShowsState(t *testing.T) {
	stats := runFCFS(t, sim.NewSimConfig(0, 1000, trace.TraceLevelNone))
	var buf bytes.Buffer

	printProcessTable(&buf, stats)

	assert.Contains(t, buf.String(), string(sim.StateReady))
}

func TestPrintStatsSummary(t *testing.T) {
	stats := runFCFS(t, sim.NewSimConfig(0, math.MaxInt64, trace.TraceLevelNone))
	var buf bytes.Buffer

	printStatsSummary(&buf, stats)

	assert.Contains(t, buf.String(), "Completed:        2/2")
	assert.Contains(t, buf.String(), "100.00%")
}

func TestPrintComparisonAndRankings(t *testing.T) {
	stats := runFCFS(t, sim.DefaultSimConfig())
	results := []compare.Result{{Policy: sim.PolicyFCFS, Stats: stats}}
	var buf bytes.Buffer

	printComparison(&buf, results)
	printRankings(&buf, compare.Rank(results))

	text := buf.String()
	assert.Contains(t, text, "First Come First Served")
	assert.Equal(t, 6, strings.Count(text, sim.PolicyFCFS+" "), "one ranking row per metric")
}

func TestPrintWorkload_TotalsBurst(t *testing.T) {
	var buf bytes.Buffer
	printWorkload(&buf, []sim.ProcessSpec{{Name: "A", BurstTime: 1000}, {Name: "B", BurstTime: 2500}})
	assert.Contains(t, buf.String(), "3.500")
}

func TestPrintTrace_SummaryFooter(t *testing.T) {
	stats := runFCFS(t, sim.NewSimConfig(1, math.MaxInt64, trace.TraceLevelSlices))
	var buf bytes.Buffer

	printTrace(&buf, stats.Trace)

	text := buf.String()
	assert.Contains(t, strings.ToLower(text), "2 slices")
	assert.Contains(t, strings.ToLower(text), "2 switches")
}
