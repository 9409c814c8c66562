package sim

// FCFS runs processes to completion in arrival order.
type FCFS struct {
	queue ReadyQueue
}

func NewFCFS() *FCFS { return &FCFS{} }

func (f *FCFS) Name() string { return "First Come First Served" }

func (f *FCFS) Admit(p *Process) { f.queue.Enqueue(p) }

func (f *FCFS) SelectNext() *Process { return f.queue.Peek() }

func (f *FCFS) Dispatch(p *Process, now int64) (int64, error) {
	return dispatchFrom(&f.queue, p, Unbounded, now, nil)
}
