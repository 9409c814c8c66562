package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path). Exactly one of Processes,
// Random and Preset must be set. Times are in milliseconds.
type WorkloadSpec struct {
	Version   string         `yaml:"version"`
	Seed      int64          `yaml:"seed"`
	Processes []ProcessEntry `yaml:"processes,omitempty"`
	Random    *RandomSpec    `yaml:"random,omitempty"`
	Preset    string         `yaml:"preset,omitempty"`
}

// ProcessEntry is one explicitly listed process.
type ProcessEntry struct {
	Name     string  `yaml:"name"`
	Arrival  float64 `yaml:"arrival"` // ms
	Burst    float64 `yaml:"burst"`   // ms
	Priority int     `yaml:"priority"`
}

// RandomSpec parameterizes a uniformly random workload. Bounds are inclusive
// and in whole milliseconds.
type RandomSpec struct {
	Count       int `yaml:"count"`
	MaxArrival  int `yaml:"max_arrival"`
	MaxBurst    int `yaml:"max_burst"`
	MaxPriority int `yaml:"max_priority"`
}

// DefaultRandomSpec returns count processes arriving within 20 ms, bursts up
// to 20 ms and priorities 1..10.
func DefaultRandomSpec(count int) RandomSpec {
	return RandomSpec{Count: count, MaxArrival: 20, MaxBurst: 20, MaxPriority: 10}
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec parses YAML workload data with strict field checking.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("%w: unsupported workload version %q", sim.ErrInvalidConfig, s.Version)
	}
	sources := 0
	if len(s.Processes) > 0 {
		sources++
	}
	if s.Random != nil {
		sources++
	}
	if s.Preset != "" {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("%w: exactly one of processes, random or preset is required, got %d", sim.ErrInvalidConfig, sources)
	}
	for i, p := range s.Processes {
		if err := validateEntry(p, i); err != nil {
			return err
		}
	}
	if s.Random != nil {
		if err := s.Random.Validate(); err != nil {
			return err
		}
	}
	if s.Preset != "" && !IsValidPreset(s.Preset) {
		return fmt.Errorf("%w: unknown preset %q; valid: %v", sim.ErrInvalidConfig, s.Preset, PresetNames)
	}
	return nil
}

func validateEntry(p ProcessEntry, idx int) error {
	prefix := fmt.Sprintf("processes[%d]", idx)
	if err := validateFinite(prefix+".arrival", p.Arrival); err != nil {
		return err
	}
	if err := validateFinite(prefix+".burst", p.Burst); err != nil {
		return err
	}
	if p.Arrival < 0 {
		return fmt.Errorf("%w: %s.arrival must be non-negative, got %f", sim.ErrInvalidConfig, prefix, p.Arrival)
	}
	if sim.MsToTicks(p.Burst) <= 0 {
		return fmt.Errorf("%w: %s.burst must be at least one tick, got %f ms", sim.ErrInvalidConfig, prefix, p.Burst)
	}
	return nil
}

// Validate checks the random generator bounds.
func (r RandomSpec) Validate() error {
	if r.Count <= 0 {
		return fmt.Errorf("%w: random.count must be positive, got %d", sim.ErrInvalidConfig, r.Count)
	}
	if r.MaxArrival < 0 {
		return fmt.Errorf("%w: random.max_arrival must be non-negative, got %d", sim.ErrInvalidConfig, r.MaxArrival)
	}
	if r.MaxBurst < 1 {
		return fmt.Errorf("%w: random.max_burst must be at least 1, got %d", sim.ErrInvalidConfig, r.MaxBurst)
	}
	if r.MaxPriority < 1 {
		return fmt.Errorf("%w: random.max_priority must be at least 1, got %d", sim.ErrInvalidConfig, r.MaxPriority)
	}
	return nil
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", sim.ErrInvalidConfig, name, val)
	}
	return nil
}

// Resolve validates the spec and produces the engine workload in ticks.
func (s *WorkloadSpec) Resolve() ([]sim.ProcessSpec, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch {
	case s.Random != nil:
		return GenerateRandom(s.Seed, *s.Random)
	case s.Preset != "":
		return Preset(s.Preset)
	}
	out := make([]sim.ProcessSpec, len(s.Processes))
	for i, p := range s.Processes {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("P%d", i+1)
		}
		out[i] = sim.ProcessSpec{
			Name:        name,
			ArrivalTime: sim.MsToTicks(p.Arrival),
			BurstTime:   sim.MsToTicks(p.Burst),
			Priority:    p.Priority,
		}
	}
	logrus.Debugf("resolved %d explicit processes", len(out))
	return out, nil
}
