package rosomaxa

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RosomaxaConfig bundles every tunable of the population manager. Zero
// values are not sane defaults; use NewDefaultConfig and override from
// there, or load one of the named presets.
type RosomaxaConfig struct {
	// SelectionSize is the default number of parents select() returns
	// per generation (the "S" of spec.md §4.7); must be >= 2.
	SelectionSize int
	// EliteSize is the capacity of the top-level Elitism archive; must
	// be >= 1. It is independent of SelectionSize: the archive can hold
	// more members than any single select() call returns.
	EliteSize int
	// NodeSize is each GSOM node's local archive capacity and selection
	// size; must be >= 1.
	NodeSize int
	// SpreadFactor controls the growth threshold: smaller values grow
	// the grid more eagerly. Must be in (0, 1).
	SpreadFactor float64
	// DistributionFactor scales how strongly a BMU's cardinal neighbors
	// are nudged relative to the BMU itself during training.
	DistributionFactor float64
	// ObjectiveReshuffling is the per-node-archive probability, at
	// creation time, of shuffling that archive's tie-break order.
	ObjectiveReshuffling float64
	// LearningRate is the BMU weight-update step size.
	LearningRate float64
	// RebalanceMemory is the baseline of optimizeNetwork's keep_size:
	// the grid is pruned once it holds more nodes than a multiple of it
	// (between about 1x and 4x, depending on recent improvement).
	RebalanceMemory int
	// RebalanceCount is how many retrain passes optimizeNetwork runs
	// over the drained solutions once the grid exceeds keep_size.
	RebalanceCount int
	// ExplorationRatio is the termination-estimate threshold (scaled by
	// search speed) at which Exploration hands off to Exploitation.
	ExplorationRatio float64
	// Logger receives Debug-level events for phase transitions, node
	// growth, and retrain passes. Nil means no logging. It is never
	// written to or read from JSON.
	Logger *zerolog.Logger `json:"-"`
}

// NewDefaultConfig returns the reference parameterization carried over
// from the original implementation.
func NewDefaultConfig() RosomaxaConfig {
	return RosomaxaConfig{
		SelectionSize:        4,
		EliteSize:            2,
		NodeSize:             2,
		SpreadFactor:         0.25,
		DistributionFactor:   0.25,
		ObjectiveReshuffling: 0.01,
		LearningRate:         0.1,
		RebalanceMemory:      100,
		RebalanceCount:       2,
		ExplorationRatio:     0.9,
	}
}

// Validate checks the three construction failures spec.md §6 documents.
// Everything else (SpreadFactor/DistributionFactor/LearningRate ranges,
// RebalanceMemory/Count, ExplorationRatio) is not checked; of these only
// a SpreadFactor >= 1 is clamped, when the growth threshold is computed.
func (c RosomaxaConfig) Validate() error {
	if c.EliteSize < 1 {
		return fmt.Errorf("%w: got %d", ErrEliteSizeTooSmall, c.EliteSize)
	}
	if c.NodeSize < 1 {
		return fmt.Errorf("%w: got %d", ErrNodeSizeTooSmall, c.NodeSize)
	}
	if c.SelectionSize < 2 {
		return fmt.Errorf("%w: got %d", ErrSelectionSizeTooSmall, c.SelectionSize)
	}
	return nil
}
