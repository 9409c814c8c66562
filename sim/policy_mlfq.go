package sim

import "fmt"

// MLFQ is a multi-level feedback queue. Queue 0 has the highest priority and
// the shortest quantum; each lower level doubles the quantum. A process that
// uses its whole quantum without finishing drops one level. Every
// BoostInterval ticks of execution, all processes return to queue 0.
type MLFQ struct {
	BoostInterval int64

	queues     []ReadyQueue
	quanta     []int64
	levels     map[int]int // pid -> current queue level
	sinceBoost int64
	boosts     int
}

// NewMLFQ panics on non-positive parameters; use NewPolicy for validated construction.
func NewMLFQ(numQueues int, baseQuantum int64, boostInterval int64) *MLFQ {
	mustBePositive("mlfq queue count", int64(numQueues))
	mustBePositive("mlfq base quantum", baseQuantum)
	mustBePositive("mlfq boost interval", boostInterval)
	quanta := make([]int64, numQueues)
	for i := range quanta {
		quanta[i] = baseQuantum << i
	}
	return &MLFQ{
		BoostInterval: boostInterval,
		queues:        make([]ReadyQueue, numQueues),
		quanta:        quanta,
		levels:        make(map[int]int),
	}
}

func (m *MLFQ) Name() string { return "Multi-Level Feedback Queue" }

// Admit places a first-seen process in queue 0 and a known one at its recorded level.
func (m *MLFQ) Admit(p *Process) {
	level, ok := m.levels[p.PID]
	if !ok {
		level = 0
		m.levels[p.PID] = level
	}
	m.queues[level].Enqueue(p)
}

func (m *MLFQ) SelectNext() *Process {
	if m.sinceBoost >= m.BoostInterval {
		m.boost()
	}
	for i := range m.queues {
		if p := m.queues[i].Peek(); p != nil {
			return p
		}
	}
	return nil
}

// boost moves every process in queues 1..N-1 to the tail of queue 0, in level
// order, and restarts the boost timer.
func (m *MLFQ) boost() {
	for level := 1; level < len(m.queues); level++ {
		for p := m.queues[level].Dequeue(); p != nil; p = m.queues[level].Dequeue() {
			m.levels[p.PID] = 0
			m.queues[0].Enqueue(p)
		}
	}
	m.sinceBoost = 0
	m.boosts++
}

func (m *MLFQ) Dispatch(p *Process, now int64) (int64, error) {
	level, ok := m.levels[p.PID]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no mlfq level", ErrNotAdmitted, p.Name)
	}
	quantum := m.quanta[level]
	executed, err := dispatchFrom(&m.queues[level], p, quantum, now, func(p *Process, executed int64) {
		if executed >= quantum {
			m.levels[p.PID] = min(level+1, len(m.queues)-1)
		}
		m.Admit(p)
	})
	m.sinceBoost += executed
	return executed, err
}

// Level returns the recorded queue level of pid and whether it is known.
func (m *MLFQ) Level(pid int) (int, bool) {
	level, ok := m.levels[pid]
	return level, ok
}

// Quantum returns the time quantum of a queue level.
func (m *MLFQ) Quantum(level int) int64 {
	return m.quanta[level]
}

// NumQueues returns the number of queue levels.
func (m *MLFQ) NumQueues() int { return len(m.queues) }

// Boosts returns how many priority boosts have been applied.
func (m *MLFQ) Boosts() int { return m.boosts }
