package sim

import (
	"errors"
	"fmt"
)

// Policy is the contract every scheduling algorithm implements. The engine
// owns the clock and the process list; a policy owns its ready queue(s).
//
// Admit receives a process that has just become ready (or was re-admitted by
// the policy itself). SelectNext returns the process to run next, or nil when
// nothing is ready. Dispatch removes the selection from the policy's queues,
// executes it starting at now for a policy-chosen quantum, re-admits it if it
// did not terminate, and returns the executed duration.
type Policy interface {
	Name() string
	Admit(p *Process)
	SelectNext() *Process
	Dispatch(p *Process, now int64) (int64, error)
}

// Registry keys for the built-in policies.
const (
	PolicyFCFS       = "fcfs"
	PolicyRR         = "rr"
	PolicyRRPriority = "rr-priority"
	PolicySJN        = "sjn"
	PolicySRTF       = "srtf"
	PolicyMLFQ       = "mlfq"
)

// PolicyNames lists the built-in policies in their canonical comparison order.
var PolicyNames = []string{PolicyFCFS, PolicyRR, PolicyRRPriority, PolicySJN, PolicySRTF, PolicyMLFQ}

// ValidPolicies is the set of recognized policy names.
// Shared by PolicyConfig.Validate and NewPolicy to avoid duplication.
var ValidPolicies = map[string]bool{
	PolicyFCFS: true, PolicyRR: true, PolicyRRPriority: true,
	PolicySJN: true, PolicySRTF: true, PolicyMLFQ: true,
}

// IsValidPolicy returns true if name is a recognized policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

var (
	// ErrUnknownPolicy is returned by NewPolicy for unrecognized names.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
	// ErrNotAdmitted means a policy dispatched a process it does not hold.
	ErrNotAdmitted = errors.New("process not admitted")
)

// NewPolicy validates cfg for the named policy and builds a fresh instance.
// A policy instance carries queue state and must not be shared across runs.
func NewPolicy(name string, cfg PolicyConfig) (Policy, error) {
	if !IsValidPolicy(name) {
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, name)
	}
	if err := cfg.Validate(name); err != nil {
		return nil, err
	}
	switch name {
	case PolicyFCFS:
		return NewFCFS(), nil
	case PolicyRR:
		return NewRoundRobin(cfg.TimeQuantum), nil
	case PolicyRRPriority:
		return NewPriorityRoundRobin(cfg.TimeQuantum), nil
	case PolicySJN:
		return NewSJN(), nil
	case PolicySRTF:
		return NewSRTF(cfg.TimeSlice), nil
	case PolicyMLFQ:
		return NewMLFQ(cfg.NumQueues, cfg.BaseQuantum, cfg.BoostInterval), nil
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}

// dispatchFrom is the shared dispatch path: remove p from q, run it for at
// most slice ticks, and hand it to readmit if it is still alive. A nil readmit
// is for run-to-completion policies.
func dispatchFrom(q *ReadyQueue, p *Process, slice int64, now int64, readmit func(p *Process, executed int64)) (int64, error) {
	if err := q.mustRemove(p); err != nil {
		return 0, err
	}
	executed, err := p.Execute(slice, now)
	if err != nil {
		return executed, err
	}
	if !p.IsTerminated() {
		if readmit == nil {
			return executed, fmt.Errorf("%w: %s left unfinished by a run-to-completion dispatch", ErrInvalidTransition, p.Name)
		}
		readmit(p, executed)
	}
	return executed, nil
}

func mustBePositive(what string, v int64) {
	if v <= 0 {
		panic(fmt.Sprintf("%s must be positive, got %d", what, v))
	}
}
