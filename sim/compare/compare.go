// Package compare runs several scheduling policies over the same workload and
// ranks them per metric. Each policy gets its own goroutine and its own
// process copies; nothing is shared between runs.
package compare

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim"
)

// Result is the outcome of one policy on one workload.
type Result struct {
	Policy string         `json:"policy"` // registry key, e.g. "rr"
	Stats  sim.Statistics `json:"stats"`
}

// NamedWorkload is one benchmark input.
type NamedWorkload struct {
	Name      string
	Processes []sim.ProcessSpec
}

// BenchmarkResult groups the results of every policy on one workload.
type BenchmarkResult struct {
	Workload string    `json:"workload"`
	Results  []Result  `json:"results"`
	Rankings []Ranking `json:"rankings"`
}

// RunPolicies simulates workload under every named policy concurrently.
// Results come back in the order of names. All policies are built, and so
// validated, before any run starts.
func RunPolicies(workload []sim.ProcessSpec, names []string, cfg sim.SimConfig, pcfg sim.PolicyConfig) ([]Result, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no policies to compare", sim.ErrInvalidConfig)
	}
	sims := make([]*sim.Simulator, len(names))
	for i, name := range names {
		policy, err := sim.NewPolicy(name, pcfg)
		if err != nil {
			return nil, err
		}
		s, err := sim.NewSimulator(cfg, policy, workload)
		if err != nil {
			return nil, err
		}
		sims[i] = s
	}

	results := make([]Result, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	wg.Add(len(sims))
	for i, s := range sims {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("policy %s: %v", names[i], r)
				}
			}()
			results[i] = Result{Policy: names[i], Stats: s.Run()}
			logrus.Debugf("%s finished: avg waiting %.1f ticks", names[i], results[i].Stats.AvgWaitingTime)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// RunBenchmarks runs every policy on every workload and ranks each workload's
// results. Workloads run one after another; policies within a workload run
// concurrently.
func RunBenchmarks(workloads []NamedWorkload, names []string, cfg sim.SimConfig, pcfg sim.PolicyConfig) ([]BenchmarkResult, error) {
	out := make([]BenchmarkResult, 0, len(workloads))
	for _, w := range workloads {
		logrus.Infof("Running benchmark %s (%d processes, %d policies)", w.Name, len(w.Processes), len(names))
		results, err := RunPolicies(w.Processes, names, cfg, pcfg)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s: %w", w.Name, err)
		}
		out = append(out, BenchmarkResult{Workload: w.Name, Results: results, Rankings: Rank(results)})
	}
	return out, nil
}
