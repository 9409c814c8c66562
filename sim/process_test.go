package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, ProcessState("new"), StateNew)
	assert.Equal(t, ProcessState("ready"), StateReady)
	assert.Equal(t, ProcessState("running"), StateRunning)
	assert.Equal(t, ProcessState("waiting"), StateWaiting)
	assert.Equal(t, ProcessState("terminated"), StateTerminated)
}

func TestNewProcess_RequiredFields_SetCorrectly(t *testing.T) {
	// GIVEN a descriptor without a name
	spec := ProcessSpec{ArrivalTime: 7, BurstTime: 12, Priority: 3}

	// WHEN NewProcess is called
	p := NewProcess(4, spec)

	// THEN identity fields match and derived state is initial
	assert.Equal(t, 4, p.PID)
	assert.Equal(t, "P4", p.Name)
	assert.Equal(t, int64(7), p.ArrivalTime)
	assert.Equal(t, int64(12), p.BurstTime)
	assert.Equal(t, 3, p.Priority)
	assert.Equal(t, StateNew, p.State())
	assert.Equal(t, int64(12), p.RemainingTime())
	_, started := p.StartTime()
	assert.False(t, started)
	assert.Empty(t, p.ExecutionLog())
}

func TestNewProcess_ExplicitName_Kept(t *testing.T) {
	p := NewProcess(1, ProcessSpec{Name: "editor", BurstTime: 1})
	assert.Equal(t, "editor", p.Name)
}

func TestProcessSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ProcessSpec
		wantErr bool
	}{
		{"valid", ProcessSpec{ArrivalTime: 0, BurstTime: 1}, false},
		{"negative arrival", ProcessSpec{ArrivalTime: -1, BurstTime: 1}, true},
		{"zero burst", ProcessSpec{ArrivalTime: 0, BurstTime: 0}, true},
		{"negative burst", ProcessSpec{ArrivalTime: 0, BurstTime: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcess_Activate_BeforeArrival_Rejected(t *testing.T) {
	p := NewProcess(1, ProcessSpec{ArrivalTime: 10, BurstTime: 5})
	err := p.Activate(9)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateNew, p.State())
}

func TestProcess_Activate_Twice_Rejected(t *testing.T) {
	p := NewProcess(1, ProcessSpec{BurstTime: 5})
	require.NoError(t, p.Activate(0))

	err := p.Activate(1)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StateReady, te.From)
	assert.Equal(t, StateReady, te.To)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestProcess_Execute_PartialSlice_StaysRunning(t *testing.T) {
	// GIVEN a ready process with 5 ticks of work that arrived at 2
	p := NewProcess(1, ProcessSpec{ArrivalTime: 2, BurstTime: 5})
	require.NoError(t, p.Activate(2))

	// WHEN it executes a 3-tick slice starting at 6
	executed, err := p.Execute(3, 6)

	// THEN it ran 3 ticks, is still running, and its response time is 4
	require.NoError(t, err)
	assert.Equal(t, int64(3), executed)
	assert.Equal(t, StateRunning, p.State())
	assert.Equal(t, int64(2), p.RemainingTime())
	rt, ok := p.ResponseTime()
	assert.True(t, ok)
	assert.Equal(t, int64(4), rt)
	assert.Equal(t, int64(4), p.ReadyTime())
	assert.Equal(t, []ExecutionInterval{{Start: 6, Duration: 3}}, p.ExecutionLog())
}

func TestProcess_Execute_SliceLongerThanRemaining_Terminates(t *testing.T) {
	p := NewProcess(1, ProcessSpec{BurstTime: 4})
	require.NoError(t, p.Activate(0))

	executed, err := p.Execute(Unbounded, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(4), executed)
	assert.True(t, p.IsTerminated())
	finish, ok := p.FinishTime()
	assert.True(t, ok)
	assert.Equal(t, int64(5), finish)
}

func TestProcess_Execute_ContinuesWhileRunning(t *testing.T) {
	// GIVEN a process that ran one slice and was never switched out
	p := NewProcess(1, ProcessSpec{BurstTime: 4})
	require.NoError(t, p.Activate(0))
	_, err := p.Execute(2, 0)
	require.NoError(t, err)

	// WHEN it executes again at the next tick
	_, err = p.Execute(2, 2)

	// THEN the second slice is accepted and the first dispatch is still the start
	require.NoError(t, err)
	assert.True(t, p.IsTerminated())
	start, _ := p.StartTime()
	assert.Equal(t, int64(0), start)
	assert.Len(t, p.ExecutionLog(), 2)
}

func TestProcess_Execute_InvalidStates_Rejected(t *testing.T) {
	// GIVEN a NEW process
	p := NewProcess(1, ProcessSpec{BurstTime: 2})

	// WHEN it is executed before activation
	_, err := p.Execute(1, 0)

	// THEN the transition is rejected
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// AND a terminated process also cannot execute
	require.NoError(t, p.Activate(0))
	_, err = p.Execute(Unbounded, 0)
	require.NoError(t, err)
	_, err = p.Execute(1, 2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestProcess_Execute_NonPositiveSlice_Rejected(t *testing.T) {
	p := NewProcess(1, ProcessSpec{BurstTime: 2})
	require.NoError(t, p.Activate(0))
	_, err := p.Execute(0, 0)
	assert.Error(t, err)
	assert.Equal(t, StateReady, p.State())
}

func TestProcess_Preempt_CountsAndAccumulatesReadyTime(t *testing.T) {
	// GIVEN a process preempted at 2 and redispatched at 7
	p := NewProcess(1, ProcessSpec{BurstTime: 4})
	require.NoError(t, p.Activate(0))
	_, err := p.Execute(2, 0)
	require.NoError(t, err)
	require.NoError(t, p.Preempt(2))
	_, err = p.Execute(2, 7)
	require.NoError(t, err)

	// THEN one preemption and 5 ticks of waiting are recorded
	assert.Equal(t, 1, p.Preemptions())
	assert.Equal(t, int64(5), p.ReadyTime())
}

func TestProcess_Preempt_NotRunning_Rejected(t *testing.T) {
	p := NewProcess(1, ProcessSpec{BurstTime: 4})
	require.NoError(t, p.Activate(0))
	assert.ErrorIs(t, p.Preempt(1), ErrInvalidTransition)
	assert.Equal(t, 0, p.Preemptions())
}

func TestProcess_Finalize_Completed_Conserves(t *testing.T) {
	// GIVEN a process that waited, ran, waited again and finished
	p := NewProcess(1, ProcessSpec{ArrivalTime: 1, BurstTime: 5})
	require.NoError(t, p.Activate(3))
	_, _ = p.Execute(2, 3)
	require.NoError(t, p.Preempt(5))
	_, _ = p.Execute(3, 9)

	// WHEN finalized
	m := p.Finalize(12)

	// THEN turnaround == waiting + burst
	assert.True(t, m.Completed)
	assert.Equal(t, int64(12), m.FinishTime)
	assert.Equal(t, int64(11), m.TurnaroundTime)
	assert.Equal(t, int64(6), m.WaitingTime)
	assert.Equal(t, m.TurnaroundTime, m.WaitingTime+m.BurstTime)
	assert.Equal(t, int64(2), m.ResponseTime)
	assert.Equal(t, 1, m.ContextSwitches)
}

func TestProcess_Finalize_Idempotent(t *testing.T) {
	p := NewProcess(1, ProcessSpec{BurstTime: 5})
	require.NoError(t, p.Activate(0))

	first := p.Finalize(3)
	second := p.Finalize(100)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(3), second.WaitingTime)
}

func TestProcess_Finalize_NeverStarted(t *testing.T) {
	// GIVEN a process that is still NEW and arrives after the final clock
	p := NewProcess(1, ProcessSpec{ArrivalTime: 50, BurstTime: 5})

	// WHEN finalized at 20
	m := p.Finalize(20)

	// THEN its finish is its arrival and it never responded
	assert.False(t, m.Completed)
	assert.False(t, m.Responded)
	assert.Equal(t, int64(50), m.FinishTime)
	assert.Equal(t, m.FinishTime, m.StartTime)
	assert.Equal(t, int64(0), m.TurnaroundTime)
	assert.Equal(t, int64(0), m.WaitingTime)
	assert.Equal(t, StateNew, m.FinalState)
}

func TestProcess_String_IncludesState(t *testing.T) {
	p := NewProcess(2, ProcessSpec{BurstTime: 1})
	assert.Contains(t, p.String(), "new")
	assert.Contains(t, p.String(), "P2")
}
