package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/compare"
	"github.com/inference-sim/cpusched/sim/trace"
	"github.com/inference-sim/cpusched/sim/workload"
)

var (
	// Workload source flags
	workloadPath string // YAML workload spec
	workloadCSV  string // CSV workload
	presetName   string // Built-in preset
	randomCount  int    // Number of random processes
	seed         int64  // Seed for random workload generation

	// Policy selection and parameters (milliseconds)
	policyName       string   // Policy for `run`
	policyNames      []string // Policies for `compare` and `benchmark`
	quantumMs        float64  // RR / RR-priority quantum
	timeSliceMs      float64  // SRTF slice
	mlfqQueues       int      // MLFQ level count
	mlfqBaseQuantum  float64  // MLFQ quantum of level 0
	mlfqBoostMs      float64  // MLFQ boost interval
	policyConfigPath string   // YAML policy bundle

	// Engine flags
	contextSwitchMs float64 // Per-switch overhead
	horizonMs       float64 // Time limit; 0 = none
	traceLevel      string  // Execution trace detail

	// Output flags
	resultsPath string // JSON results file
	exportCSV   string // `workload` CSV export
	logLevel    string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusched",
	Short: "Discrete-time simulator for CPU scheduling policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates one policy and prints its per-process table
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling policy over a workload",
	Run: func(cmd *cobra.Command, args []string) {
		procs := mustResolveWorkload(cmd)
		cfg, pcfg, _ := mustBuildConfigs()

		policy, err := sim.NewPolicy(policyName, pcfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		stats, err := sim.Simulate(cfg, policy, procs)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		out := cmd.OutOrStdout()
		printProcessTable(out, stats)
		printStatsSummary(out, stats)
		if stats.Trace != nil {
			printTrace(out, stats.Trace)
		}
		mustSaveResults(compare.Result{Policy: policyName, Stats: stats})
		logrus.Info("Simulation complete.")
	},
}

// compareCmd runs several policies concurrently on one workload
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare scheduling policies on the same workload",
	Run: func(cmd *cobra.Command, args []string) {
		procs := mustResolveWorkload(cmd)
		cfg, pcfg, names := mustBuildConfigs()

		results, err := compare.RunPolicies(procs, names, cfg, pcfg)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		rankings := compare.Rank(results)

		out := cmd.OutOrStdout()
		printComparison(out, results)
		printRankings(out, rankings)
		mustSaveResults(compare.BenchmarkResult{Workload: workloadLabel(), Results: results, Rankings: rankings})
	},
}

// benchmarkCmd sweeps every benchmark preset with every policy
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Run every policy on every benchmark preset",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, pcfg, names := mustBuildConfigs()

		workloads := make([]compare.NamedWorkload, 0, len(workload.BenchmarkPresets))
		for _, name := range workload.BenchmarkPresets {
			procs, err := workload.Preset(name)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			workloads = append(workloads, compare.NamedWorkload{Name: name, Processes: procs})
		}
		out, err := compare.RunBenchmarks(workloads, names, cfg, pcfg)
		if err != nil {
			logrus.Fatalf("Benchmark failed: %v", err)
		}

		w := cmd.OutOrStdout()
		for _, br := range out {
			_, _ = fmt.Fprintf(w, "=== Benchmark: %s ===\n", br.Workload)
			printComparison(w, br.Results)
			printRankings(w, br.Rankings)
		}
		mustSaveResults(out)
	},
}

// workloadCmd prints (and optionally exports) the resolved workload
var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Show the resolved workload",
	Run: func(cmd *cobra.Command, args []string) {
		procs := mustResolveWorkload(cmd)
		printWorkload(cmd.OutOrStdout(), procs)
		if exportCSV == "" {
			return
		}
		file, err := os.Create(exportCSV)
		if err != nil {
			logrus.Fatalf("Creating %s: %v", exportCSV, err)
		}
		defer func() { _ = file.Close() }()
		if err := workload.ExportCSV(file, procs); err != nil {
			logrus.Fatalf("Exporting workload: %v", err)
		}
		logrus.Infof("Workload written to %s", exportCSV)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mustResolveWorkload fails the command on any workload error.
func mustResolveWorkload(cmd *cobra.Command) []sim.ProcessSpec {
	procs, err := resolveWorkload(cmd.Flags().Changed("seed"))
	if err != nil {
		logrus.Fatalf("Workload: %v", err)
	}
	return procs
}

// resolveWorkload picks the single configured workload source. With none
// set, a random workload of --random processes (default 5) is generated.
// seedChanged lets an explicit --seed override a YAML spec's seed.
func resolveWorkload(seedChanged bool) ([]sim.ProcessSpec, error) {
	sources := 0
	for _, set := range []bool{workloadPath != "", workloadCSV != "", presetName != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("%w: use only one of --workload, --workload-csv and --preset", sim.ErrInvalidConfig)
	}

	switch {
	case workloadPath != "":
		spec, err := workload.LoadWorkloadSpec(workloadPath)
		if err != nil {
			return nil, err
		}
		if seedChanged {
			spec.Seed = seed
		}
		return spec.Resolve()
	case workloadCSV != "":
		return workload.LoadCSVFile(workloadCSV)
	case presetName != "":
		return workload.Preset(presetName)
	default:
		return workload.GenerateRandom(seed, workload.DefaultRandomSpec(randomCount))
	}
}

func workloadLabel() string {
	switch {
	case workloadPath != "":
		return workloadPath
	case workloadCSV != "":
		return workloadCSV
	case presetName != "":
		return presetName
	default:
		return fmt.Sprintf("random-%d-seed-%d", randomCount, seed)
	}
}

func mustBuildConfigs() (sim.SimConfig, sim.PolicyConfig, []string) {
	cfg, pcfg, names, err := buildConfigs()
	if err != nil {
		logrus.Fatalf("Configuration: %v", err)
	}
	return cfg, pcfg, names
}

// buildConfigs converts the millisecond flags to tick configs and applies
// the --policy-config bundle on top.
func buildConfigs() (sim.SimConfig, sim.PolicyConfig, []string, error) {
	horizon := int64(math.MaxInt64)
	if horizonMs > 0 {
		horizon = sim.MsToTicks(horizonMs)
	}
	cfg := sim.NewSimConfig(sim.MsToTicks(contextSwitchMs), horizon, trace.TraceLevel(traceLevel))
	pcfg := sim.NewPolicyConfig(
		sim.MsToTicks(quantumMs),
		sim.MsToTicks(timeSliceMs),
		mlfqQueues,
		sim.MsToTicks(mlfqBaseQuantum),
		sim.MsToTicks(mlfqBoostMs),
	)
	names := policyNames

	if policyConfigPath != "" {
		bundle, err := sim.LoadPolicyBundle(policyConfigPath)
		if err != nil {
			return cfg, pcfg, nil, err
		}
		if err := bundle.Validate(); err != nil {
			return cfg, pcfg, nil, err
		}
		pcfg = bundle.ApplyPolicyConfig(pcfg)
		cfg = bundle.ApplySimConfig(cfg)
		if len(bundle.Policies) > 0 {
			names = bundle.Policies
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, pcfg, nil, err
	}
	for _, name := range names {
		if !sim.IsValidPolicy(name) {
			return cfg, pcfg, nil, fmt.Errorf("%w %q; valid: %v", sim.ErrUnknownPolicy, name, sim.PolicyNames)
		}
	}
	return cfg, pcfg, names, nil
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultPolicyConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&resultsPath, "results-path", "", "File to save results as JSON")

	for _, c := range []*cobra.Command{runCmd, compareCmd, benchmarkCmd} {
		c.Flags().Float64Var(&quantumMs, "quantum", sim.TicksToMs(defaults.TimeQuantum), "Round robin time quantum (ms)")
		c.Flags().Float64Var(&timeSliceMs, "time-slice", sim.TicksToMs(defaults.TimeSlice), "SRTF time slice (ms)")
		c.Flags().IntVar(&mlfqQueues, "mlfq-queues", defaults.NumQueues, "Number of MLFQ levels")
		c.Flags().Float64Var(&mlfqBaseQuantum, "mlfq-base-quantum", sim.TicksToMs(defaults.BaseQuantum), "MLFQ quantum of the top level (ms); doubles per level")
		c.Flags().Float64Var(&mlfqBoostMs, "mlfq-boost", sim.TicksToMs(defaults.BoostInterval), "MLFQ priority boost interval (ms of execution)")
		c.Flags().Float64Var(&contextSwitchMs, "context-switch", sim.TicksToMs(sim.DefaultContextSwitchOverhead), "Context switch overhead (ms)")
		c.Flags().Float64Var(&horizonMs, "horizon", 0, "Simulation time limit (ms); 0 runs to completion")
		c.Flags().StringVar(&policyConfigPath, "policy-config", "", "YAML policy bundle overriding the parameter flags")
		c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Execution trace level (none, slices)")
	}
	for _, c := range []*cobra.Command{runCmd, compareCmd, workloadCmd} {
		c.Flags().StringVar(&workloadPath, "workload", "", "YAML workload spec")
		c.Flags().StringVar(&workloadCSV, "workload-csv", "", "CSV workload (name,arrival,burst,priority in ms)")
		c.Flags().StringVar(&presetName, "preset", "", fmt.Sprintf("Built-in workload %v", workload.PresetNames))
		c.Flags().IntVar(&randomCount, "random", 5, "Number of random processes when no other workload is given")
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for random workload generation")
	}

	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyRR, fmt.Sprintf("Scheduling policy %v", sim.PolicyNames))
	compareCmd.Flags().StringSliceVar(&policyNames, "policies", sim.PolicyNames, "Policies to compare")
	benchmarkCmd.Flags().StringSliceVar(&policyNames, "policies", sim.PolicyNames, "Policies to benchmark")
	workloadCmd.Flags().StringVar(&exportCSV, "export-csv", "", "Write the resolved workload to this CSV file")

	rootCmd.AddCommand(runCmd, compareCmd, benchmarkCmd, workloadCmd)
}
