package rosomaxa

import (
	"encoding/json"
	"fmt"
	"os"
)

// RosomaxaPreset names a predefined RosomaxaConfig tuned for a class of
// fleet-sizing problem. Logger is never part of a preset; callers attach
// it after loading.
type RosomaxaPreset string

const (
	// PresetSmallFleet favors a small, tightly-held elite and an eager
	// GSOM grid, suited to instances with few vehicles where diversity
	// matters more than sheer archive depth.
	PresetSmallFleet RosomaxaPreset = "small_fleet"
	// PresetLargeFleet raises the rebalance memory so the grid is
	// allowed to grow substantially before pruning kicks in, trading
	// memory for finer-grained niches across a large search space.
	PresetLargeFleet RosomaxaPreset = "large_fleet"
	// PresetHighChurn raises objective reshuffling and shortens the
	// exploration ratio, for driver setups that regenerate solutions
	// quickly and want to reach exploitation sooner.
	PresetHighChurn RosomaxaPreset = "high_churn"
)

// NewPresetConfig returns a RosomaxaConfig tuned for preset. Callers must
// still validate after setting any further overrides.
func NewPresetConfig(preset RosomaxaPreset) (RosomaxaConfig, error) {
	config := NewDefaultConfig()

	switch preset {
	case PresetSmallFleet:
		config.SelectionSize = 4
		config.EliteSize = 2
		config.NodeSize = 2
		config.SpreadFactor = 0.15
		config.RebalanceMemory = 40

	case PresetLargeFleet:
		config.SelectionSize = 8
		config.EliteSize = 4
		config.NodeSize = 3
		config.SpreadFactor = 0.2
		config.RebalanceMemory = 250
		config.RebalanceCount = 5

	case PresetHighChurn:
		config.ObjectiveReshuffling = 0.05
		config.ExplorationRatio = 0.7

	default:
		return RosomaxaConfig{}, fmt.Errorf("rosomaxa: unknown preset %q", preset)
	}

	return config, nil
}

// ListPresets returns every known preset with a short description.
func ListPresets() map[RosomaxaPreset]string {
	return map[RosomaxaPreset]string{
		PresetSmallFleet: "small, eagerly-growing grid for few-vehicle instances",
		PresetLargeFleet: "large rebalance memory for wide search spaces",
		PresetHighChurn:  "faster handoff to exploitation for high-throughput drivers",
	}
}

// LoadConfigFromFile reads a RosomaxaConfig from a JSON file. Logger is
// never serialized and must be set on the returned value separately.
func LoadConfigFromFile(path string) (RosomaxaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RosomaxaConfig{}, fmt.Errorf("rosomaxa: read config file: %w", err)
	}

	config := NewDefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return RosomaxaConfig{}, fmt.Errorf("rosomaxa: parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return RosomaxaConfig{}, fmt.Errorf("rosomaxa: invalid config: %w", err)
	}

	return config, nil
}

// SaveConfigToFile writes config to path as indented JSON. Logger is
// never serialized.
func SaveConfigToFile(config RosomaxaConfig, path string) error {
	config.Logger = nil
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("rosomaxa: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("rosomaxa: write config file: %w", err)
	}
	return nil
}
