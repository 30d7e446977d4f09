package rosomaxa

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
)

// Population is the adaptive population manager: a top-level Elitism
// archive backed by a phase-driven GSOM grid that widens search during
// Exploration and steps aside once Exploitation begins. A single
// Population instance is safe for concurrent use: mutating calls
// (Add/AddAll/OnGeneration) serialize against each other and against
// every reader; reads may run concurrently with other reads.
type Population struct {
	mu sync.RWMutex

	config    RosomaxaConfig
	objective Objective
	random    Random

	elite *Elitism
	phase *phaseController

	runID uuid.UUID
}

// NewPopulation validates config and constructs a Population. Returns an
// error wrapping ErrEliteSizeTooSmall, ErrNodeSizeTooSmall or
// ErrSelectionSizeTooSmall if config is out of bounds.
func NewPopulation(config RosomaxaConfig, objective Objective, random Random) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	runID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("rosomaxa: generate run id: %w", err)
	}

	return &Population{
		config:    config,
		objective: objective,
		random:    random,
		elite:     newElitism(objective, random, config.EliteSize, config.SelectionSize),
		phase:     newPhaseController(4, config.SelectionSize, config.RebalanceMemory, config.RebalanceCount, config.ExplorationRatio, random),
		runID:     runID,
	}, nil
}

// RunID identifies this Population instance, stable for its lifetime.
func (p *Population) RunID() uuid.UUID {
	return p.runID
}

// Add offers a single solution to both the elite archive and, once
// seeded, the GSOM grid. A solution strictly worse than the current best
// elite member (see IsComparableWithBestKnown) is not offered to the elite
// archive. Returns true iff the elite archive's best-known front changed.
func (p *Population) Add(individual Solution) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addLocked(individual)
}

// AddAll offers a batch; returns true iff any individual improved the
// elite archive.
func (p *Population) AddAll(batch []Solution) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	improved := false
	for _, individual := range batch {
		if p.addLocked(individual) {
			improved = true
		}
	}
	return improved
}

func (p *Population) addLocked(individual Solution) bool {
	improved := false
	if ranked := p.elite.Ranked(); len(ranked) == 0 || p.elite.Cmp(individual, ranked[0].Solution) != Greater {
		improved = p.elite.Add(individual.DeepCopy())
	}
	networkCopy := individual.DeepCopy()

	switch p.phase.kind {
	case phaseInitial:
		if p.phase.offerInitial(networkCopy, p.objective, p.config.NodeSize, p.config.SpreadFactor, p.config.DistributionFactor, p.config.LearningRate, p.config.ObjectiveReshuffling, true, resolveLogger(p.config.Logger)) {
			resolveLogger(p.config.Logger).Debug().Int("nodes", p.phase.network.Size()).Msg("gsom seeded, entering exploration")
		}
	default:
		if p.phase.network != nil {
			p.phase.network.Store(networkCopy, p.phase.network.GetCurrentTime())
		}
	}

	return improved
}

// OnGeneration advances the phase controller with a new generation's
// statistics: Exploration retrains/grows the network and refreshes the
// coordinate list, possibly handing off to Exploitation; Exploitation
// retunes the elite selection size.
func (p *Population) OnGeneration(stats HeuristicStatistics) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase.network != nil {
		p.phase.network.SetCurrentTime(stats.Generation)
	}

	before := p.phase.kind
	switch p.phase.kind {
	case phaseExploration:
		var bestFitness []float64
		if ranked := p.elite.Ranked(); len(ranked) > 0 {
			bestFitness = ranked[0].Solution.Fitness()
		}
		p.phase.onGenerationExploration(stats, bestFitness)
	case phaseExploitation:
		p.phase.onGenerationExploitation(stats)
	}
	if p.phase.kind == phaseExploitation {
		p.elite.SetSelectionSize(p.phase.selectionSize)
	}

	if before != p.phase.kind {
		resolveLogger(p.config.Logger).Debug().Str("from", before.String()).Str("to", p.phase.kind.String()).Msg("phase transition")
	}
}

// Select returns the current selection, capped at selection_size: during
// Exploration it interleaves a handful of elite picks with GSOM-grid
// picks so the search keeps covering niches the elite front doesn't
// represent; in Initial and Exploitation it is the elite archive's own
// selection.
func (p *Population) Select() []Solution {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.phase.kind == phaseExploration {
		return p.phase.selectExploration(p.elite)
	}
	return p.elite.Select()
}

// Ranked returns every elite member, best rank first.
func (p *Population) Ranked() []RankedSolution {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.elite.Ranked()
}

// Cmp compares a and b under the elite archive's current total order.
func (p *Population) Cmp(a, b Solution) Ordering {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.elite.Cmp(a, b)
}

// IsComparableWithBestKnown reports whether individual is not strictly
// worse than the current best-known elite member, under the elite
// archive's total order (which the population never shuffles). Add and
// AddAll apply the same check before offering a solution to the elite
// archive.
func (p *Population) IsComparableWithBestKnown(individual Solution) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ranked := p.elite.Ranked()
	if len(ranked) == 0 {
		return true
	}
	return p.elite.Cmp(individual, ranked[0].Solution) != Greater
}

// Size returns the elite archive's current member count.
func (p *Population) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.elite.Size()
}

// SelectionPhase returns the controller's current phase name: "initial",
// "exploration", or "exploitation".
func (p *Population) SelectionPhase() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.phase.kind.String()
}

// String renders a snapshot of the population: the elite archive's
// contents, preceded by the GSOM node count once a grid has been seeded
// (in Exploration and in Exploitation).
func (p *Population) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.phase.network == nil {
		return fmt.Sprintf("rosomaxa[%s] phase=%s\n%s", p.runID, p.phase.kind, p.elite.String())
	}
	return fmt.Sprintf("rosomaxa[%s] phase=%s nodes=%d\n%s", p.runID, p.phase.kind, p.phase.network.Size(), p.elite.String())
}
