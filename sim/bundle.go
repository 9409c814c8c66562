package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyBundle holds policy selection and parameters, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override the
// configuration they are applied to. Times are in milliseconds.
type PolicyBundle struct {
	Policies   []string         `yaml:"policies"`
	RoundRobin RoundRobinBundle `yaml:"round_robin"`
	SRTF       SRTFBundle       `yaml:"srtf"`
	MLFQ       MLFQBundle       `yaml:"mlfq"`
	Engine     EngineBundle     `yaml:"engine"`
}

// RoundRobinBundle configures rr and rr-priority.
type RoundRobinBundle struct {
	QuantumMs *float64 `yaml:"quantum_ms"`
}

// SRTFBundle configures srtf.
type SRTFBundle struct {
	TimeSliceMs *float64 `yaml:"time_slice_ms"`
}

// MLFQBundle configures mlfq.
type MLFQBundle struct {
	NumQueues       *int     `yaml:"num_queues"`
	BaseQuantumMs   *float64 `yaml:"base_quantum_ms"`
	BoostIntervalMs *float64 `yaml:"boost_interval_ms"`
}

// EngineBundle configures the shared control loop.
type EngineBundle struct {
	ContextSwitchMs *float64 `yaml:"context_switch_ms"`
	HorizonMs       *float64 `yaml:"horizon_ms"`
}

// LoadPolicyBundle reads and parses a YAML policy configuration file.
// Unknown fields are rejected so that typos surface as errors.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Validate checks that all policy names and parameter ranges in the bundle are valid.
func (b *PolicyBundle) Validate() error {
	for _, name := range b.Policies {
		if !IsValidPolicy(name) {
			return fmt.Errorf("%w %q", ErrUnknownPolicy, name)
		}
	}
	positive := []struct {
		field string
		value *float64
	}{
		{"round_robin.quantum_ms", b.RoundRobin.QuantumMs},
		{"srtf.time_slice_ms", b.SRTF.TimeSliceMs},
		{"mlfq.base_quantum_ms", b.MLFQ.BaseQuantumMs},
		{"mlfq.boost_interval_ms", b.MLFQ.BoostIntervalMs},
		{"engine.horizon_ms", b.Engine.HorizonMs},
	}
	for _, p := range positive {
		if p.value != nil && *p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %f", ErrInvalidConfig, p.field, *p.value)
		}
	}
	if b.MLFQ.NumQueues != nil && *b.MLFQ.NumQueues <= 0 {
		return fmt.Errorf("%w: mlfq.num_queues must be positive, got %d", ErrInvalidConfig, *b.MLFQ.NumQueues)
	}
	if b.Engine.ContextSwitchMs != nil && *b.Engine.ContextSwitchMs < 0 {
		return fmt.Errorf("%w: engine.context_switch_ms must be non-negative, got %f", ErrInvalidConfig, *b.Engine.ContextSwitchMs)
	}
	return nil
}

// ApplyPolicyConfig returns cfg with every field set in the bundle overridden.
func (b *PolicyBundle) ApplyPolicyConfig(cfg PolicyConfig) PolicyConfig {
	if b.RoundRobin.QuantumMs != nil {
		cfg.TimeQuantum = MsToTicks(*b.RoundRobin.QuantumMs)
	}
	if b.SRTF.TimeSliceMs != nil {
		cfg.TimeSlice = MsToTicks(*b.SRTF.TimeSliceMs)
	}
	if b.MLFQ.NumQueues != nil {
		cfg.NumQueues = *b.MLFQ.NumQueues
	}
	if b.MLFQ.BaseQuantumMs != nil {
		cfg.BaseQuantum = MsToTicks(*b.MLFQ.BaseQuantumMs)
	}
	if b.MLFQ.BoostIntervalMs != nil {
		cfg.BoostInterval = MsToTicks(*b.MLFQ.BoostIntervalMs)
	}
	return cfg
}

// ApplySimConfig returns cfg with the engine fields set in the bundle overridden.
func (b *PolicyBundle) ApplySimConfig(cfg SimConfig) SimConfig {
	if b.Engine.ContextSwitchMs != nil {
		cfg.ContextSwitchOverhead = MsToTicks(*b.Engine.ContextSwitchMs)
	}
	if b.Engine.HorizonMs != nil {
		cfg.Horizon = MsToTicks(*b.Engine.HorizonMs)
	}
	return cfg
}
