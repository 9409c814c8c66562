package sim

// shortestFirst is the selection half shared by SJN and SRTF: one unordered
// ready queue searched for the minimum remaining time.
type shortestFirst struct {
	queue ReadyQueue
}

func (s *shortestFirst) Admit(p *Process) { s.queue.Enqueue(p) }

// SelectNext returns the process with the least remaining time. Ties go to
// the earliest queue position.
func (s *shortestFirst) SelectNext() *Process {
	var best *Process
	for _, p := range s.queue.Items() {
		if best == nil || p.RemainingTime() < best.RemainingTime() {
			best = p
		}
	}
	return best
}

// SJN runs the shortest ready job to completion.
type SJN struct {
	shortestFirst
}

func NewSJN() *SJN { return &SJN{} }

func (s *SJN) Name() string { return "Shortest Job Next" }

func (s *SJN) Dispatch(p *Process, now int64) (int64, error) {
	return dispatchFrom(&s.queue, p, Unbounded, now, nil)
}

// SRTF is the preemptive form of SJN: the shortest process runs for one time
// slice, then the choice is made again.
type SRTF struct {
	shortestFirst
	TimeSlice int64
}

// NewSRTF panics on a non-positive slice; use NewPolicy for validated construction.
func NewSRTF(timeSlice int64) *SRTF {
	mustBePositive("srtf time slice", timeSlice)
	return &SRTF{TimeSlice: timeSlice}
}

func (s *SRTF) Name() string { return "Shortest Remaining Time First" }

func (s *SRTF) Dispatch(p *Process, now int64) (int64, error) {
	return dispatchFrom(&s.queue, p, s.TimeSlice, now, func(p *Process, _ int64) { s.Admit(p) })
}
