package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/cluster"
	"github.com/fogsim/fog-offload-sim/sim/trace"
)

// Config describes a full policy comparison: the decision engine parameters,
// the fog topology, the application every IoT device runs, and the placement
// policies to compare.
type Config struct {
	Decision    sim.Config             `yaml:"decision"`
	IoTDevices  int                    `yaml:"iot_devices"` // task-generating entities, one sensor each
	HorizonMs   float64                `yaml:"horizon_ms"`  // simulated time per run
	Topology    cluster.TopologyConfig `yaml:"topology"`
	Application cluster.AppConfig      `yaml:"application"`
	Policies    []string               `yaml:"policies"` // run order
	TraceLevel  string                 `yaml:"trace_level"`
}

// DefaultConfig returns the reference experiment: three IoT devices over a
// cloud plus three fog nodes, greedy-q compared against round-robin.
func DefaultConfig() Config {
	return Config{
		Decision:    sim.DefaultConfig(),
		IoTDevices:  3,
		HorizonMs:   10000,
		Topology:    cluster.DefaultTopologyConfig(),
		Application: cluster.DefaultAppConfig(),
		Policies:    []string{sim.PlacementGreedyQ, sim.PlacementRoundRobin},
		TraceLevel:  string(trace.TraceLevelNone),
	}
}

// Validate checks every section. It is called before any run starts.
func (c Config) Validate() error {
	if err := c.Decision.Validate(); err != nil {
		return fmt.Errorf("decision: %w", err)
	}
	if err := c.Topology.Validate(); err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	if err := c.Application.Validate(); err != nil {
		return fmt.Errorf("application: %w", err)
	}
	if c.IoTDevices < 1 {
		return fmt.Errorf("iot_devices must be at least 1, got %d", c.IoTDevices)
	}
	if c.HorizonMs <= 0 {
		return fmt.Errorf("horizon_ms must be positive, got %f", c.HorizonMs)
	}
	if len(c.Policies) == 0 {
		return errors.New("at least one placement policy is required")
	}
	for _, p := range c.Policies {
		if p == "" || !sim.IsValidPlacementStrategy(p) {
			return fmt.Errorf("unknown placement policy %q", p)
		}
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}

// LoadConfig reads a YAML experiment file over DefaultConfig. Keys absent
// from the file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes over DefaultConfig with strict field checking.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
