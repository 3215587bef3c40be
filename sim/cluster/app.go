package cluster

import "fmt"

// AppConfig describes the sensor → processing → actuator loop run by every
// task-generating entity. Each sensor emission becomes one tuple that is
// processed (DATA then RESULT module) on the entity's assigned node.
type AppConfig struct {
	SensorPeriodMs    float64 `yaml:"sensor_period_ms"`    // deterministic emission interval
	DataCPULength     float64 `yaml:"data_cpu_length"`     // MI for the processing module
	DataNWLength      float64 `yaml:"data_nw_length"`      // bytes, informational
	ResultCPULength   float64 `yaml:"result_cpu_length"`   // MI for the actuator module
	ResultNWLength    float64 `yaml:"result_nw_length"`    // bytes, informational
	SensorLatencyMs   float64 `yaml:"sensor_latency_ms"`   // sensor → gateway link latency
	ActuatorLatencyMs float64 `yaml:"actuator_latency_ms"` // gateway → actuator link latency
}

// DefaultAppConfig returns the reference application.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		SensorPeriodMs:    1000,
		DataCPULength:     3000,
		DataNWLength:      500,
		ResultCPULength:   1000,
		ResultNWLength:    100,
		SensorLatencyMs:   1.0,
		ActuatorLatencyMs: 1.0,
	}
}

// Validate checks parameter ranges.
func (a AppConfig) Validate() error {
	if a.SensorPeriodMs <= 0 {
		return fmt.Errorf("sensor_period_ms must be positive, got %f", a.SensorPeriodMs)
	}
	if a.DataCPULength < 0 || a.ResultCPULength < 0 {
		return fmt.Errorf("cpu lengths must be non-negative")
	}
	if a.DataCPULength+a.ResultCPULength == 0 {
		return fmt.Errorf("tuples must carry some cpu length")
	}
	if a.SensorLatencyMs < 0 || a.ActuatorLatencyMs < 0 {
		return fmt.Errorf("link latencies must be non-negative")
	}
	return nil
}

// CPULength is the total MI processed per sensor emission.
func (a AppConfig) CPULength() float64 {
	return a.DataCPULength + a.ResultCPULength
}

// SensorNames returns the entity names "sensor-0" ... "sensor-(n-1)".
func SensorNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("sensor-%d", i)
	}
	return names
}
