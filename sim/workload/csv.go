package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inference-sim/cpusched/sim"
)

// csvColumns is the workload CSV layout. Times are in milliseconds.
var csvColumns = []string{"name", "arrival", "burst", "priority"}

// LoadCSVFile opens path and parses it with LoadCSV.
func LoadCSVFile(path string) ([]sim.ProcessSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload csv: %w", err)
	}
	defer func() { _ = file.Close() }()
	return LoadCSV(file)
}

// LoadCSV reads rows of name,arrival,burst,priority. A first row starting
// with "name" is treated as a header. Blank names become P<row>.
func LoadCSV(r io.Reader) ([]sim.ProcessSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var procs []sim.ProcessSpec
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), csvColumns[0]) {
			continue
		}
		p, err := parseCSVRow(row, len(procs)+1)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		procs = append(procs, p)
	}
	if len(procs) == 0 {
		return nil, sim.ErrEmptyWorkload
	}
	return procs, nil
}

func parseCSVRow(row []string, idx int) (sim.ProcessSpec, error) {
	arrival, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("%w: bad arrival %q", sim.ErrInvalidConfig, row[1])
	}
	burst, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("%w: bad burst %q", sim.ErrInvalidConfig, row[2])
	}
	priority, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("%w: bad priority %q", sim.ErrInvalidConfig, row[3])
	}
	entry := ProcessEntry{Name: strings.TrimSpace(row[0]), Arrival: arrival, Burst: burst, Priority: priority}
	if err := validateEntry(entry, idx-1); err != nil {
		return sim.ProcessSpec{}, err
	}
	name := entry.Name
	if name == "" {
		name = fmt.Sprintf("P%d", idx)
	}
	return sim.ProcessSpec{
		Name:        name,
		ArrivalTime: sim.MsToTicks(arrival),
		BurstTime:   sim.MsToTicks(burst),
		Priority:    priority,
	}, nil
}

// ExportCSV writes procs in the LoadCSV layout, with a header row.
func ExportCSV(w io.Writer, procs []sim.ProcessSpec) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range procs {
		row := []string{
			p.Name,
			strconv.FormatFloat(sim.TicksToMs(p.ArrivalTime), 'f', -1, 64),
			strconv.FormatFloat(sim.TicksToMs(p.BurstTime), 'f', -1, 64),
			strconv.Itoa(p.Priority),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", p.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
