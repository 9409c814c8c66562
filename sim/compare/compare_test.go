package compare

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/workload"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func mixed(t *testing.T) []sim.ProcessSpec {
	t.Helper()
	procs, err := workload.Preset(workload.PresetMixed)
	require.NoError(t, err)
	return procs
}

func TestRunPolicies_MatchesSequentialRuns(t *testing.T) {
	// GIVEN the mixed preset and every policy
	procs := mixed(t)
	cfg, pcfg := sim.DefaultSimConfig(), sim.DefaultPolicyConfig()

	// WHEN run concurrently
	results, err := RunPolicies(procs, sim.PolicyNames, cfg, pcfg)

	// THEN each result equals a standalone run, in input order
	require.NoError(t, err)
	require.Len(t, results, len(sim.PolicyNames))
	for i, name := range sim.PolicyNames {
		assert.Equal(t, name, results[i].Policy)
		policy, err := sim.NewPolicy(name, pcfg)
		require.NoError(t, err)
		want, err := sim.Simulate(cfg, policy, procs)
		require.NoError(t, err)
		assert.Equal(t, want, results[i].Stats, name)
	}
}

func TestRunPolicies_DoesNotMutateWorkload(t *testing.T) {
	procs := mixed(t)
	before := append([]sim.ProcessSpec(nil), procs...)
	_, err := RunPolicies(procs, sim.PolicyNames, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())
	require.NoError(t, err)
	assert.Equal(t, before, procs)
}

func TestRunPolicies_ConfigErrors(t *testing.T) {
	procs := mixed(t)

	_, err := RunPolicies(procs, []string{sim.PolicyFCFS, "lottery"}, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())
	assert.ErrorIs(t, err, sim.ErrUnknownPolicy)

	_, err = RunPolicies(procs, nil, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)

	_, err = RunPolicies(nil, sim.PolicyNames, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())
	assert.ErrorIs(t, err, sim.ErrEmptyWorkload)

	bad := sim.DefaultPolicyConfig()
	bad.TimeQuantum = 0
	_, err = RunPolicies(procs, []string{sim.PolicyRR}, sim.DefaultSimConfig(), bad)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestRunPolicies_SamePolicyTwice_IndependentRuns(t *testing.T) {
	results, err := RunPolicies(mixed(t), []string{sim.PolicyMLFQ, sim.PolicyMLFQ}, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())
	require.NoError(t, err)
	assert.Equal(t, results[0], results[1])
}

func TestRunBenchmarks_PresetGrid(t *testing.T) {
	var workloads []NamedWorkload
	for _, name := range workload.BenchmarkPresets {
		procs, err := workload.Preset(name)
		require.NoError(t, err)
		workloads = append(workloads, NamedWorkload{Name: name, Processes: procs})
	}

	out, err := RunBenchmarks(workloads, sim.PolicyNames, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())

	require.NoError(t, err)
	require.Len(t, out, len(workload.BenchmarkPresets))
	for i, br := range out {
		assert.Equal(t, workload.BenchmarkPresets[i], br.Workload)
		assert.Len(t, br.Results, len(sim.PolicyNames))
		assert.Len(t, br.Rankings, 6)
		for _, r := range br.Results {
			assert.Equal(t, 10, r.Stats.CompletedProcesses)
		}
	}
}

func TestRunBenchmarks_ErrorNamesWorkload(t *testing.T) {
	_, err := RunBenchmarks([]NamedWorkload{{Name: "empty"}}, sim.PolicyNames, sim.DefaultSimConfig(), sim.DefaultPolicyConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
