package sim

import (
	"fmt"
	"sort"
	"strings"
)

// RoundRobin runs the head of a single FIFO queue for one quantum and puts
// unfinished processes back at the tail.
type RoundRobin struct {
	Quantum int64
	queue   ReadyQueue
}

// NewRoundRobin panics on a non-positive quantum; use NewPolicy for validated construction.
func NewRoundRobin(quantum int64) *RoundRobin {
	mustBePositive("round robin quantum", quantum)
	return &RoundRobin{Quantum: quantum}
}

func (r *RoundRobin) Name() string { return "Round Robin" }

func (r *RoundRobin) Admit(p *Process) { r.queue.Enqueue(p) }

func (r *RoundRobin) SelectNext() *Process { return r.queue.Peek() }

func (r *RoundRobin) Dispatch(p *Process, now int64) (int64, error) {
	return dispatchFrom(&r.queue, p, r.Quantum, now, func(p *Process, _ int64) { r.Admit(p) })
}

// PriorityRoundRobin keeps one FIFO queue per priority value. The highest
// non-empty level always wins; round robin applies only within a level.
type PriorityRoundRobin struct {
	Quantum int64
	queues  map[int]*ReadyQueue
	levels  []int // known priorities, descending
}

// NewPriorityRoundRobin panics on a non-positive quantum; use NewPolicy for validated construction.
func NewPriorityRoundRobin(quantum int64) *PriorityRoundRobin {
	mustBePositive("round robin quantum", quantum)
	return &PriorityRoundRobin{
		Quantum: quantum,
		queues:  make(map[int]*ReadyQueue),
	}
}

func (r *PriorityRoundRobin) Name() string { return "Round Robin with Priority" }

func (r *PriorityRoundRobin) Admit(p *Process) {
	r.queueFor(p.Priority).Enqueue(p)
}

// queueFor returns the queue of a priority level, creating it on first sight.
func (r *PriorityRoundRobin) queueFor(priority int) *ReadyQueue {
	if q, ok := r.queues[priority]; ok {
		return q
	}
	q := &ReadyQueue{}
	r.queues[priority] = q
	r.levels = append(r.levels, priority)
	sort.Sort(sort.Reverse(sort.IntSlice(r.levels)))
	return q
}

func (r *PriorityRoundRobin) SelectNext() *Process {
	for _, level := range r.levels {
		if p := r.queues[level].Peek(); p != nil {
			return p
		}
	}
	return nil
}

func (r *PriorityRoundRobin) Dispatch(p *Process, now int64) (int64, error) {
	q, ok := r.queues[p.Priority]
	if !ok {
		return 0, fmt.Errorf("%w: no queue for priority %d of %s", ErrNotAdmitted, p.Priority, p.Name)
	}
	return dispatchFrom(q, p, r.Quantum, now, func(p *Process, _ int64) { r.Admit(p) })
}

// Levels returns the known priority levels, highest first.
func (r *PriorityRoundRobin) Levels() []int {
	return append([]int(nil), r.levels...)
}

func (r *PriorityRoundRobin) String() string {
	parts := make([]string, 0, len(r.levels))
	for _, level := range r.levels {
		parts = append(parts, fmt.Sprintf("%d:%s", level, r.queues[level]))
	}
	return strings.Join(parts, " ")
}
