package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fogsim/fog-offload-sim/sim/experiment"
)

// resolveConfig loads --config (or the defaults) and applies explicitly set
// flags on top of it.
func resolveConfig(cmd *cobra.Command) (experiment.Config, error) {
	cfg := experiment.DefaultConfig()
	if configPath != "" {
		loaded, err := experiment.LoadConfig(configPath)
		if err != nil {
			return experiment.Config{}, err
		}
		cfg = loaded
	}
	applyFlagOverrides(cmd, &cfg)
	return cfg, cfg.Validate()
}

// applyFlagOverrides copies flag values into cfg, but only for flags the user
// actually passed, so that values from the YAML file are never clobbered by
// flag defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *experiment.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Decision.Seed = seed
	}
	if flags.Changed("episodes") {
		cfg.Decision.Learning.Episodes = episodes
	}
	if flags.Changed("learning-rate") {
		cfg.Decision.Learning.LearningRate = learningRate
	}
	if flags.Changed("utilization-model") {
		cfg.Decision.Cost.UtilizationModel = utilizationModel
	}
	if flags.Changed("iot-devices") {
		cfg.IoTDevices = iotDevices
	}
	if flags.Changed("fog-nodes") {
		cfg.Topology.FogNodes = fogNodes
	}
	if flags.Changed("horizon") {
		cfg.HorizonMs = horizonMs
	}
	if flags.Changed("policies") {
		cfg.Policies = append([]string(nil), policies...)
	}
	if flags.Changed("trace") {
		cfg.TraceLevel = traceLevel
	}
}
