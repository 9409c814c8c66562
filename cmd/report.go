package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/compare"
	"github.com/inference-sim/cpusched/sim/trace"
)

// ms formats ticks as milliseconds.
func ms(ticks int64) string {
	return strconv.FormatFloat(sim.TicksToMs(ticks), 'f', 3, 64)
}

func msf(ticks float64) string {
	return strconv.FormatFloat(ticks/sim.TicksPerMillisecond, 'f', 3, 64)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

// printProcessTable writes one row per process with averages in the footer.
func printProcessTable(w io.Writer, stats sim.Statistics) {
	_, _ = fmt.Fprintf(w, "Schedule table: %s\n", stats.SchedulerName)
	table := newTable(w, []string{"Name", "Priority", "Arrival", "Burst", "Start", "Finish", "Wait", "Turnaround", "Response", "Preempted"})
	for _, m := range stats.Processes {
		response := "-"
		if m.Responded {
			response = ms(m.ResponseTime)
		}
		finish := ms(m.FinishTime)
		if !m.Completed {
			finish = string(m.FinalState)
		}
		table.Append([]string{
			m.Name,
			strconv.Itoa(m.Priority),
			ms(m.ArrivalTime),
			ms(m.BurstTime),
			ms(m.StartTime),
			finish,
			ms(m.WaitingTime),
			ms(m.TurnaroundTime),
			response,
			strconv.Itoa(m.ContextSwitches),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "Average",
		msf(stats.AvgWaitingTime),
		msf(stats.AvgTurnaroundTime),
		msf(stats.AvgResponseTime),
		strconv.Itoa(stats.TotalContextSwitches)})
	table.Render()
}

// printStatsSummary writes the aggregate metrics of one run.
func printStatsSummary(w io.Writer, stats sim.Statistics) {
	_, _ = fmt.Fprintf(w, "Completed:        %d/%d\n", stats.CompletedProcesses, stats.TotalProcesses)
	_, _ = fmt.Fprintf(w, "Elapsed:          %s ms\n", ms(stats.TotalElapsedTime))
	_, _ = fmt.Fprintf(w, "Idle:             %s ms\n", ms(stats.IdleTime))
	_, _ = fmt.Fprintf(w, "CPU utilization:  %.2f%%\n", stats.CPUUtilization*100)
	_, _ = fmt.Fprintf(w, "Throughput:       %.4f processes/ms\n", stats.ThroughputPerMs())
	_, _ = fmt.Fprintf(w, "Context switches: %d\n", stats.TotalContextSwitches)
}

// printComparison writes one row per policy.
func printComparison(w io.Writer, results []compare.Result) {
	table := newTable(w, []string{"Policy", "Avg Wait (ms)", "Avg Turnaround (ms)", "Avg Response (ms)", "Throughput (/ms)", "CPU Util", "Switches", "Completed"})
	for _, r := range results {
		s := r.Stats
		table.Append([]string{
			s.SchedulerName,
			msf(s.AvgWaitingTime),
			msf(s.AvgTurnaroundTime),
			msf(s.AvgResponseTime),
			strconv.FormatFloat(s.ThroughputPerMs(), 'f', 4, 64),
			fmt.Sprintf("%.2f%%", s.CPUUtilization*100),
			strconv.Itoa(s.TotalContextSwitches),
			fmt.Sprintf("%d/%d", s.CompletedProcesses, s.TotalProcesses),
		})
	}
	table.Render()
}

// printRankings writes the best policy per metric.
func printRankings(w io.Writer, rankings []compare.Ranking) {
	table := newTable(w, []string{"Metric", "Best Policy", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rankings {
		table.Append([]string{r.Metric, r.Policy, strconv.FormatFloat(r.Value, 'f', 4, 64)})
	}
	table.Render()
}

// printWorkload writes the resolved workload in milliseconds.
func printWorkload(w io.Writer, procs []sim.ProcessSpec) {
	table := newTable(w, []string{"Name", "Arrival (ms)", "Burst (ms)", "Priority"})
	var total int64
	for _, p := range procs {
		total += p.BurstTime
		table.Append([]string{p.Name, ms(p.ArrivalTime), ms(p.BurstTime), strconv.Itoa(p.Priority)})
	}
	table.SetFooter([]string{strconv.Itoa(len(procs)), "Total", ms(total), ""})
	table.Render()
}

// printTrace writes the execution slices in time order, Gantt style.
func printTrace(w io.Writer, et *trace.ExecutionTrace) {
	_, _ = fmt.Fprintln(w, "Execution trace")
	table := newTable(w, []string{"PID", "Name", "Start (ms)", "End (ms)", "Done"})
	for _, s := range et.Slices {
		done := ""
		if s.Terminated {
			done = "yes"
		}
		table.Append([]string{strconv.Itoa(s.PID), s.Name, ms(s.Start), ms(s.End()), done})
	}
	summary := trace.Summarize(et)
	table.SetFooter([]string{"", fmt.Sprintf("%d slices", summary.TotalSlices),
		"busy " + ms(summary.BusyTime), "idle " + ms(summary.IdleTime),
		fmt.Sprintf("%d switches", summary.TotalSwitches)})
	table.Render()
}
