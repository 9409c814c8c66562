// Implements the ReadyQueue, which holds processes that are ready to run.
// Processes are enqueued on admission and re-admission.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue represents a FIFO queue of processes waiting for the CPU.
// No operation reorders the queue; order only changes through removal and
// reinsertion at the tail.
type ReadyQueue struct {
	queue []*Process // FIFO queue of processes
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	rq.queue = append(rq.queue, p)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(p.Name)
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers within the
// sim package may iterate over it but MUST NOT append to or reslice it.
func (rq *ReadyQueue) Items() []*Process {
	return rq.queue
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return p
}

// Remove deletes the first occurrence of p, preserving the order of the rest.
// Returns false if p is not queued.
func (rq *ReadyQueue) Remove(p *Process) bool {
	for i, q := range rq.queue {
		if q == p {
			copy(rq.queue[i:], rq.queue[i+1:])
			rq.queue[len(rq.queue)-1] = nil
			rq.queue = rq.queue[:len(rq.queue)-1]
			return true
		}
	}
	return false
}

// Contains reports whether p is queued.
func (rq *ReadyQueue) Contains(p *Process) bool {
	for _, q := range rq.queue {
		if q == p {
			return true
		}
	}
	return false
}

// mustRemove is Remove for dispatch paths, where a missing process means the
// policy selected something it never admitted.
func (rq *ReadyQueue) mustRemove(p *Process) error {
	if !rq.Remove(p) {
		return fmt.Errorf("%w: %s is not in ready queue %s", ErrNotAdmitted, p.Name, rq)
	}
	return nil
}
