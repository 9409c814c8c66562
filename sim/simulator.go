// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim/trace"
)

// Simulator is the core object that holds simulated time, the process set and
// the active policy. One Simulator performs exactly one run.
type Simulator struct {
	Clock                 int64
	Horizon               int64
	ContextSwitchOverhead int64
	// IdleTime is the total time the CPU had nothing ready.
	IdleTime int64
	// SwitchCount counts context switches performed by the engine, including
	// switches away from a process that just terminated.
	SwitchCount int
	Policy      Policy
	// Processes is the master process list, in workload order.
	Processes []*Process
	// Current is the process the CPU last switched to (nil before the first dispatch).
	Current *Process
	Trace   *trace.ExecutionTrace

	// pending holds processes not yet admitted, ordered by arrival time and
	// then workload position.
	pending []*Process
	ran     bool
}

// NewSimulator validates the configuration and workload and builds a fresh
// process for every descriptor. PIDs are 1..n in workload order.
func NewSimulator(cfg SimConfig, policy Policy, workload []ProcessSpec) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: policy must not be nil", ErrInvalidConfig)
	}
	if len(workload) == 0 {
		return nil, ErrEmptyWorkload
	}
	procs := make([]*Process, len(workload))
	for i, spec := range workload {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("workload entry %d: %w", i, err)
		}
		procs[i] = NewProcess(i+1, spec)
	}
	if _, ok := clockBound(workload, cfg.ContextSwitchOverhead); !ok {
		return nil, fmt.Errorf("%w: workload timing overflows the simulation clock", ErrInvalidConfig)
	}
	pending := append([]*Process(nil), procs...)
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].ArrivalTime < pending[j].ArrivalTime
	})
	s := &Simulator{
		Clock:                 0,
		Horizon:               cfg.Horizon,
		ContextSwitchOverhead: cfg.ContextSwitchOverhead,
		Policy:                policy,
		Processes:             procs,
		pending:               pending,
	}
	if cfg.TraceLevel.Enabled() {
		s.Trace = trace.NewExecutionTrace(cfg.TraceLevel)
	}
	return s, nil
}

// clockBound returns an upper bound on the final clock of any run over
// workload: the latest arrival plus every burst plus one switch per
// dispatched tick. ok is false when the bound does not fit in an int64.
func clockBound(workload []ProcessSpec, overhead int64) (int64, bool) {
	var latest, total int64
	for _, spec := range workload {
		latest = max(latest, spec.ArrivalTime)
		if total > math.MaxInt64-spec.BurstTime {
			return 0, false
		}
		total += spec.BurstTime
	}
	if overhead > 0 && total > math.MaxInt64/overhead {
		return 0, false
	}
	switches := total * overhead
	if total > math.MaxInt64-switches {
		return 0, false
	}
	total += switches
	if latest > math.MaxInt64-total {
		return 0, false
	}
	return latest + total, true
}

// Simulate builds a Simulator and runs it.
func Simulate(cfg SimConfig, policy Policy, workload []ProcessSpec) (Statistics, error) {
	s, err := NewSimulator(cfg, policy, workload)
	if err != nil {
		return Statistics{}, err
	}
	return s.Run(), nil
}

// Run executes the control loop until every process terminates, nothing is
// left to arrive, or the clock reaches the horizon. Policy contract
// violations panic.
func (sim *Simulator) Run() Statistics {
	if sim.ran {
		panic("Run: simulator already ran")
	}
	sim.ran = true
	logrus.Infof("Starting %s with %d processes, context switch=%d ticks", sim.Policy.Name(), len(sim.Processes), sim.ContextSwitchOverhead)

	active := len(sim.Processes)
	for active > 0 {
		if sim.Clock >= sim.Horizon {
			logrus.Infof("[tick %07d] Horizon reached with %d processes unfinished", sim.Clock, active)
			break
		}

		sim.admitArrivals()

		next := sim.Policy.SelectNext()
		if next == nil {
			if !sim.advanceIdle() {
				break
			}
			continue
		}

		if next != sim.Current {
			sim.contextSwitch(next)
		}

		executed, err := sim.Policy.Dispatch(next, sim.Clock)
		if err != nil {
			panic(fmt.Sprintf("%s: dispatch of %s at tick %d: %v", sim.Policy.Name(), next.Name, sim.Clock, err))
		}
		logrus.Debugf("[tick %07d] Executed %s for %d ticks, %d remaining", sim.Clock, next.Name, executed, next.RemainingTime())
		if sim.Trace != nil {
			sim.Trace.RecordSlice(trace.SliceRecord{
				PID:        next.PID,
				Name:       next.Name,
				Start:      sim.Clock,
				Duration:   executed,
				Terminated: next.IsTerminated(),
			})
		}
		sim.Clock += executed

		active = sim.countActive()
	}
	// processes that arrived during the final slice still count as waiting
	sim.admitArrivals()
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)

	rows := make([]ProcessMetrics, len(sim.Processes))
	for i, p := range sim.Processes {
		rows[i] = p.Finalize(sim.Clock)
	}
	stats := CalculateStatistics(sim.Policy.Name(), rows, sim.Clock, sim.IdleTime)
	stats.Trace = sim.Trace.Clone()
	return stats
}

// admitArrivals activates every process whose arrival time has been reached,
// earliest arrival first and workload order for ties, and hands it to the policy.
func (sim *Simulator) admitArrivals() {
	for len(sim.pending) > 0 && sim.pending[0].ArrivalTime <= sim.Clock {
		p := sim.pending[0]
		sim.pending = sim.pending[1:]
		if err := p.Activate(sim.Clock); err != nil {
			panic(fmt.Sprintf("admit: %v", err))
		}
		logrus.Debugf("[tick %07d] << Arrival: %s (arrived %d)", sim.Clock, p.Name, p.ArrivalTime)
		sim.Policy.Admit(p)
	}
}

// advanceIdle jumps the clock to the next arrival, capped at the horizon, and
// books the gap as idle time. Returns false when nothing is left to arrive.
func (sim *Simulator) advanceIdle() bool {
	if len(sim.pending) == 0 {
		return false
	}
	target := min(sim.pending[0].ArrivalTime, sim.Horizon)
	gap := target - sim.Clock
	logrus.Debugf("[tick %07d] CPU idle for %d ticks", sim.Clock, gap)
	if gap > 0 {
		sim.IdleTime += gap
		if sim.Trace != nil {
			sim.Trace.RecordIdle(trace.IdleRecord{Start: sim.Clock, Duration: gap})
		}
	}
	sim.Clock = target
	return true
}

// contextSwitch preempts the outgoing process if it is still running, charges
// the switch overhead and makes next current.
func (sim *Simulator) contextSwitch(next *Process) {
	fromPID := 0
	if prev := sim.Current; prev != nil {
		fromPID = prev.PID
		if prev.State() == StateRunning {
			if err := prev.Preempt(sim.Clock); err != nil {
				panic(fmt.Sprintf("context switch: %v", err))
			}
		}
	}
	logrus.Debugf("[tick %07d] Context switch %d -> %s, overhead %d", sim.Clock, fromPID, next.Name, sim.ContextSwitchOverhead)
	if sim.Trace != nil {
		sim.Trace.RecordSwitch(trace.SwitchRecord{
			Clock:    sim.Clock,
			FromPID:  fromPID,
			ToPID:    next.PID,
			Overhead: sim.ContextSwitchOverhead,
		})
	}
	sim.Clock += sim.ContextSwitchOverhead
	sim.SwitchCount++
	sim.Current = next
}

func (sim *Simulator) countActive() int {
	active := 0
	for _, p := range sim.Processes {
		if !p.IsTerminated() {
			active++
		}
	}
	return active
}
