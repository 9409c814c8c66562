// Package sim provides the core discrete-event engine for CPU scheduling simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (new → ready ⇄ running → terminated) and its transition table
//   - policy.go: The Policy contract (Admit, SelectNext, Dispatch) and the policy registry
//   - simulator.go: The control loop: arrivals, selection, context switch, dispatch, idle advance
//
// # Architecture
//
// One Simulator performs one run of one Policy over one workload. The engine
// owns the clock and the master process list; a policy owns only its ready
// queues. Runs share no mutable state: PIDs are assigned per run, so
// independent runs may execute concurrently (see sim/compare/).
//
// Sub-packages:
//   - sim/workload/: Workload specs, presets, random generation and CSV loading
//   - sim/compare/: Concurrent multi-policy and multi-workload comparison
//   - sim/trace/: Execution timeline recording
//
// # Policies
//
// The built-in policies are FCFS, RoundRobin, PriorityRoundRobin, SJN, SRTF
// and MLFQ. Build them by name with NewPolicy. Time is measured in int64
// ticks (1 tick = 1 µs).
package sim
