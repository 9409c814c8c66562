// Defines the Process struct that models one schedulable unit of work in the simulation.
// Tracks arrival, burst, remaining work, and the timestamps needed for waiting/response/turnaround.

package sim

import (
	"errors"
	"fmt"
	"math"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNew        ProcessState = "new"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateWaiting    ProcessState = "waiting" // modelled, but no policy moves a process here
	StateTerminated ProcessState = "terminated"
)

// Unbounded is the time slice that lets a dispatched process run to completion.
const Unbounded int64 = math.MaxInt64

// ErrInvalidTransition is wrapped by every TransitionError.
var ErrInvalidTransition = errors.New("invalid process state transition")

// validTransitions is the complete transition table. Anything absent is rejected.
var validTransitions = map[ProcessState]map[ProcessState]bool{
	StateNew:     {StateReady: true},
	StateReady:   {StateRunning: true},
	StateRunning: {StateReady: true, StateTerminated: true},
}

// TransitionError reports a rejected state change on a process.
type TransitionError struct {
	PID  int
	From ProcessState
	To   ProcessState
	Op   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: process %d cannot move from %s to %s", e.Op, e.PID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ProcessSpec describes one process of a workload, as handed to the engine.
// Times are in ticks.
type ProcessSpec struct {
	Name        string `json:"name"`
	ArrivalTime int64  `json:"arrival_time"`
	BurstTime   int64  `json:"burst_time"`
	Priority    int    `json:"priority"` // higher = more important
}

// Validate checks that the descriptor can be simulated.
func (ps ProcessSpec) Validate() error {
	if ps.ArrivalTime < 0 {
		return fmt.Errorf("%w: process %q has negative arrival time %d", ErrInvalidConfig, ps.Name, ps.ArrivalTime)
	}
	if ps.BurstTime <= 0 {
		return fmt.Errorf("%w: process %q must have a positive burst time, got %d", ErrInvalidConfig, ps.Name, ps.BurstTime)
	}
	return nil
}

// ExecutionInterval is one contiguous stretch of execution.
type ExecutionInterval struct {
	Start    int64 `json:"start"`
	Duration int64 `json:"duration"`
}

// Process models a single process's lifecycle in the simulation.
// Identity fields are fixed at construction; everything else is mutated only
// through Activate, Execute, Preempt and Finalize.
type Process struct {
	PID         int    // Unique within one run, assigned by the caller
	Name        string // Display name
	ArrivalTime int64  // Tick at which the process enters the system
	BurstTime   int64  // Total execution the process needs
	Priority    int    // Higher = more important; only priority-aware policies read it

	state         ProcessState
	remainingTime int64
	startTime     int64 // first dispatch
	finishTime    int64
	responseTime  int64
	started       bool
	finished      bool
	preemptions   int
	executionLog  []ExecutionInterval

	readyTime  int64 // accumulated time spent in READY
	readySince int64 // tick at which the current READY stretch began

	metrics *ProcessMetrics // set by the first Finalize
}

// NewProcess constructs a process in state NEW from a descriptor and an explicit id.
func NewProcess(pid int, spec ProcessSpec) *Process {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("P%d", pid)
	}
	return &Process{
		PID:           pid,
		Name:          name,
		ArrivalTime:   spec.ArrivalTime,
		BurstTime:     spec.BurstTime,
		Priority:      spec.Priority,
		state:         StateNew,
		remainingTime: spec.BurstTime,
	}
}

func (p *Process) State() ProcessState { return p.state }

func (p *Process) RemainingTime() int64 { return p.remainingTime }

// StartTime returns the tick of the first dispatch and whether it happened.
func (p *Process) StartTime() (int64, bool) { return p.startTime, p.started }

// FinishTime returns the termination tick and whether the process terminated.
func (p *Process) FinishTime() (int64, bool) { return p.finishTime, p.finished }

// ResponseTime returns first-dispatch minus arrival, once the process has been dispatched.
func (p *Process) ResponseTime() (int64, bool) { return p.responseTime, p.started }

// Preemptions is the number of RUNNING -> READY transitions.
func (p *Process) Preemptions() int { return p.preemptions }

// ReadyTime returns the ready-state time accumulated so far.
func (p *Process) ReadyTime() int64 { return p.readyTime }

// ExecutionLog returns a copy of the execution intervals in order.
func (p *Process) ExecutionLog() []ExecutionInterval {
	out := make([]ExecutionInterval, len(p.executionLog))
	copy(out, p.executionLog)
	return out
}

func (p *Process) IsTerminated() bool { return p.state == StateTerminated }

// transition applies one entry of the transition table at tick now and keeps
// the ready-time accumulator current.
func (p *Process) transition(op string, to ProcessState, now int64) error {
	if !validTransitions[p.state][to] {
		return &TransitionError{PID: p.PID, From: p.state, To: to, Op: op}
	}
	if p.state == StateReady {
		p.readyTime += now - p.readySince
	}
	p.state = to
	if to == StateReady {
		p.readySince = now
	}
	return nil
}

// Activate moves a NEW process to READY. The ready stretch is counted from the
// arrival time, which may precede now when the engine observes the arrival late.
func (p *Process) Activate(now int64) error {
	if now < p.ArrivalTime {
		return fmt.Errorf("activate: process %d arrives at %d, now is %d: %w", p.PID, p.ArrivalTime, now, ErrInvalidTransition)
	}
	if err := p.transition("activate", StateReady, now); err != nil {
		return err
	}
	p.readySince = p.ArrivalTime
	return nil
}

// Execute runs the process for at most slice ticks starting at now and returns
// the executed duration. Pass Unbounded to run to completion.
func (p *Process) Execute(slice int64, now int64) (int64, error) {
	if slice <= 0 {
		return 0, fmt.Errorf("execute: process %d got non-positive slice %d", p.PID, slice)
	}
	switch p.state {
	case StateRunning:
	case StateReady:
		if err := p.transition("execute", StateRunning, now); err != nil {
			return 0, err
		}
	default:
		return 0, &TransitionError{PID: p.PID, From: p.state, To: StateRunning, Op: "execute"}
	}

	if !p.started {
		p.started = true
		p.startTime = now
		p.responseTime = max(0, now-p.ArrivalTime)
	}

	executed := min(p.remainingTime, slice)
	p.remainingTime -= executed
	p.executionLog = append(p.executionLog, ExecutionInterval{Start: now, Duration: executed})

	if p.remainingTime == 0 {
		if err := p.transition("execute", StateTerminated, now+executed); err != nil {
			return executed, err
		}
		p.finished = true
		p.finishTime = now + executed
	}
	return executed, nil
}

// Preempt moves a RUNNING process back to READY at tick now.
func (p *Process) Preempt(now int64) error {
	if err := p.transition("preempt", StateReady, now); err != nil {
		return err
	}
	p.preemptions++
	return nil
}

// Finalize computes the metrics row at tick now. Only the first call does any
// work; later calls return the same row.
func (p *Process) Finalize(now int64) ProcessMetrics {
	if p.metrics != nil {
		return *p.metrics
	}
	if !p.finished {
		p.finishTime = max(now, p.ArrivalTime)
	}
	if !p.started {
		p.startTime = p.finishTime
	}
	if p.state == StateReady && now > p.readySince {
		p.readyTime += now - p.readySince
		p.readySince = now
	}

	m := ProcessMetrics{
		PID:             p.PID,
		Name:            p.Name,
		ArrivalTime:     p.ArrivalTime,
		BurstTime:       p.BurstTime,
		Priority:        p.Priority,
		StartTime:       p.startTime,
		FinishTime:      p.finishTime,
		WaitingTime:     p.readyTime,
		TurnaroundTime:  p.finishTime - p.ArrivalTime,
		ResponseTime:    p.responseTime,
		Responded:       p.started,
		ContextSwitches: p.preemptions,
		Completed:       p.finished,
		FinalState:      p.state,
	}
	p.metrics = &m
	return m
}

// This method returns a human-readable string representation of a Process.
func (p *Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, Name: %s, Burst: %d, Remaining: %d, Priority: %d, State: %s)",
		p.PID, p.Name, p.BurstTime, p.remainingTime, p.Priority, p.state)
}
