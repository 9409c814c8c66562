package compare

// Metric names used by Rank.
const (
	MetricAvgWaiting      = "avg_waiting_time"
	MetricAvgTurnaround   = "avg_turnaround_time"
	MetricAvgResponse     = "avg_response_time"
	MetricContextSwitches = "context_switches"
	MetricThroughput      = "throughput"
	MetricUtilization     = "cpu_utilization"
)

// Ranking names the best policy for one metric.
type Ranking struct {
	Metric string  `json:"metric"`
	Policy string  `json:"policy"`
	Value  float64 `json:"value"`
}

type metric struct {
	name           string
	value          func(Result) float64
	higherIsBetter bool
}

var metrics = []metric{
	{MetricAvgWaiting, func(r Result) float64 { return r.Stats.AvgWaitingTime }, false},
	{MetricAvgTurnaround, func(r Result) float64 { return r.Stats.AvgTurnaroundTime }, false},
	{MetricAvgResponse, func(r Result) float64 { return r.Stats.AvgResponseTime }, false},
	{MetricContextSwitches, func(r Result) float64 { return float64(r.Stats.TotalContextSwitches) }, false},
	{MetricThroughput, func(r Result) float64 { return r.Stats.Throughput }, true},
	{MetricUtilization, func(r Result) float64 { return r.Stats.CPUUtilization }, true},
}

// Rank returns the best policy per metric, in a fixed metric order. Ties go
// to the earlier result. Returns nil for no results.
func Rank(results []Result) []Ranking {
	if len(results) == 0 {
		return nil
	}
	out := make([]Ranking, 0, len(metrics))
	for _, m := range metrics {
		best := results[0]
		bestVal := m.value(best)
		for _, r := range results[1:] {
			v := m.value(r)
			if (m.higherIsBetter && v > bestVal) || (!m.higherIsBetter && v < bestVal) {
				best, bestVal = r, v
			}
		}
		out = append(out, Ranking{Metric: m.name, Policy: best.Policy, Value: bestVal})
	}
	return out
}
