package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim"
)

// GenerateRandom draws r.Count processes uniformly: arrival in
// [0, MaxArrival] ms, burst in [1, MaxBurst] ms and priority in
// [1, MaxPriority]. Each attribute comes from its own RNG subsystem, so the
// same seed always yields the same workload and changing one bound does not
// reshuffle the others.
func GenerateRandom(seed int64, r RandomSpec) ([]sim.ProcessSpec, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrival)
	burstRNG := rng.ForSubsystem(sim.SubsystemBurst)
	priorityRNG := rng.ForSubsystem(sim.SubsystemPriority)

	procs := make([]sim.ProcessSpec, r.Count)
	for i := range procs {
		arrivalMs := arrivalRNG.Intn(r.MaxArrival + 1)
		burstMs := 1 + burstRNG.Intn(r.MaxBurst)
		procs[i] = sim.ProcessSpec{
			Name:        fmt.Sprintf("P%d", i+1),
			ArrivalTime: int64(arrivalMs) * sim.TicksPerMillisecond,
			BurstTime:   int64(burstMs) * sim.TicksPerMillisecond,
			Priority:    1 + priorityRNG.Intn(r.MaxPriority),
		}
	}
	logrus.Debugf("generated %d random processes (seed=%d)", len(procs), seed)
	return procs, nil
}
