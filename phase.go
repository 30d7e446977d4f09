package rosomaxa

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
)

// phaseKind is the population manager's state machine position.
type phaseKind int

const (
	// phaseInitial buffers incoming solutions until there are enough to
	// seed the GSOM grid.
	phaseInitial phaseKind = iota
	// phaseExploration retrains and grows the network every generation,
	// favoring diversity over convergence.
	phaseExploration
	// phaseExploitation stops retraining the network and only retunes
	// the elite selection size.
	phaseExploitation
)

func (k phaseKind) String() string {
	switch k {
	case phaseInitial:
		return "initial"
	case phaseExploration:
		return "exploration"
	case phaseExploitation:
		return "exploitation"
	default:
		return "unknown"
	}
}

// coordinateInfo is a per-generation snapshot of one GSOM node's standing,
// used to order and sample the grid during Exploration.
type coordinateInfo struct {
	Coord          Coordinate
	DistanceToBest float64
	Age            int
}

// phaseController owns the Initial/Exploration/Exploitation transitions
// and the per-generation bookkeeping (network retraining, coordinate
// refill, selection size retuning) each phase performs.
type phaseController struct {
	kind phaseKind

	initialMinSolutions int
	pending             []Solution

	network     *gsomNetwork
	coordinates []coordinateInfo

	baseSelectionSize int
	selectionSize     int

	// stats is the statistics snapshot stored the last time Exploration
	// recomputed its coordinate list (old_statistics in
	// original_source's update_phase); its Speed governs the effective
	// exploration_ratio for the *next* generation check.
	stats HeuristicStatistics

	rebalanceMemory  int
	rebalanceCount   int
	explorationRatio float64

	random Random
}

func newPhaseController(initialMinSolutions, baseSelectionSize, rebalanceMemory, rebalanceCount int, explorationRatio float64, random Random) *phaseController {
	return &phaseController{
		kind:                phaseInitial,
		initialMinSolutions: initialMinSolutions,
		baseSelectionSize:   baseSelectionSize,
		selectionSize:       baseSelectionSize,
		stats:               HeuristicStatistics{Speed: Speed{Moderate: true}},
		rebalanceMemory:     rebalanceMemory,
		rebalanceCount:      rebalanceCount,
		explorationRatio:    explorationRatio,
		random:              random,
	}
}

// offerInitial buffers individual during the Initial phase. Once at
// least initialMinSolutions have accumulated, it seeds a fresh GSOM
// network from the first four and routes the remainder into it at
// generation 0, then transitions to Exploration. Returns true once the
// transition happens.
func (p *phaseController) offerInitial(individual Solution, objective Objective, nodeSize int, spreadFactor, distributionFactor, learningRate, reshufflingProbability float64, hasInitialError bool, log *zerolog.Logger) bool {
	p.pending = append(p.pending, individual)
	if len(p.pending) < p.initialMinSolutions {
		return false
	}

	var seeds [4]Solution
	copy(seeds[:], p.pending[:4])
	p.network = newGsomNetwork(seeds, objective, p.random, nodeSize, spreadFactor, distributionFactor, learningRate, reshufflingProbability, hasInitialError, log)

	rest := p.pending[4:]
	p.network.StoreBatch(rest, 0)

	p.pending = nil
	p.kind = phaseExploration
	return true
}

// onGenerationExploration implements spec.md §4.4's Exploration branch:
// compute the effective exploration_ratio from the *previously stored*
// statistics' speed, and while termination_estimate stays under it,
// retune the selection size, retrain/prune the network, and refill the
// coordinate list. Once termination_estimate catches up, hand off to
// Exploitation carrying the freshly computed selection size forward.
func (p *phaseController) onGenerationExploration(stats HeuristicStatistics, bestFitness []float64) {
	selectionSize := p.retuneSelectionSize(stats)

	explorationRatio := p.explorationRatio
	if !p.stats.Speed.Moderate {
		explorationRatio *= p.stats.Speed.Ratio
	}

	if stats.TerminationEstimate < explorationRatio {
		p.stats = stats
		p.selectionSize = selectionSize

		p.optimizeNetwork(stats, bestFitness)
		p.refillCoordinates(stats, bestFitness)
		return
	}

	p.selectionSize = selectionSize
	p.kind = phaseExploitation
}

// onGenerationExploitation retunes the selection size; the network is no
// longer retrained once exploitation begins.
func (p *phaseController) onGenerationExploitation(stats HeuristicStatistics) {
	p.selectionSize = p.retuneSelectionSize(stats)
}

// retuneSelectionSize implements spec.md §4.7's speed-driven recompute,
// shared by the Exploration and Exploitation branches: Slow(ratio) scales
// the configured baseline and floors at 1, Moderate leaves it unchanged.
func (p *phaseController) retuneSelectionSize(stats HeuristicStatistics) int {
	if stats.Speed.Moderate {
		return p.baseSelectionSize
	}
	scaled := float64(p.baseSelectionSize) * stats.Speed.Ratio
	if scaled < 1 {
		scaled = 1
	}
	return int(math.Round(scaled))
}

// optimizeNetwork implements spec.md §4.5: prunes the grid down to a
// stats-driven keep_size once it has grown past that size, retraining
// rebalanceCount times against a predicate built from the percentile of
// node-to-best-fitness distances. A no-op before generation 1 or while
// the grid is already at or under keep_size.
func (p *phaseController) optimizeNetwork(stats HeuristicStatistics, bestFitness []float64) {
	net := p.network
	if net == nil {
		return
	}

	keepSize := rosomaxaKeepSize(stats, p.rebalanceMemory)
	if stats.Generation == 0 || net.Size() <= keepSize {
		return
	}

	nodeDistance := func(n *gsomNode) (float64, bool) {
		best := net.nodeBestFitness(n)
		if best == nil {
			return 0, false
		}
		return relativeDistance(bestFitness, best), true
	}

	distances := make([]float64, 0, net.Size())
	net.Iter(func(n *gsomNode) {
		if d, ok := nodeDistance(n); ok {
			distances = append(distances, d)
		}
	})
	sort.Sort(sort.Reverse(sort.Float64Slice(distances)))

	var percentileIdx int
	if len(distances) > keepSize {
		percentileIdx = len(distances) - keepSize
	} else {
		const percentileThreshold = 0.75
		percentileIdx = int(float64(len(distances)) * percentileThreshold)
	}
	if percentileIdx < 0 || percentileIdx >= len(distances) {
		return
	}
	threshold := distances[percentileIdx]

	net.Retrain(p.rebalanceCount, func(n *gsomNode) bool {
		d, ok := nodeDistance(n)
		return ok && d < threshold
	})
}

// rosomaxaKeepSize implements spec.md §4.5 step 1: keep_size scales with
// how much the search has recently improved (improvement_1000_ratio),
// from about 1-2x rebalanceMemory while improvement is high up to 4x
// rebalanceMemory as progress dries up.
func rosomaxaKeepSize(stats HeuristicStatistics, rebalanceMemory int) int {
	r := float64(rebalanceMemory)
	v := stats.Improvement1000Ratio

	var keep float64
	switch {
	case v > 0.2:
		x := stats.TerminationEstimate
		if x < 0 {
			x = 0
		} else if x > 1 {
			x = 1
		}
		sigma := 1 - 1/(1+math.Exp(-10*(x-0.5)))
		keep = r * (1 + sigma)
	case v > 0.1:
		keep = 2 * r
	case v > 0.01:
		keep = 3 * r
	default:
		keep = 4 * r
	}
	return int(keep)
}

// refillCoordinates implements spec.md §4.6: rebuild the coordinate
// snapshot from every node with a non-empty local archive, then apply a
// stats-driven partial (prefix Fisher-Yates) or full shuffle so the grid
// doesn't keep surfacing the same niches every generation.
func (p *phaseController) refillCoordinates(stats HeuristicStatistics, bestFitness []float64) {
	net := p.network
	if net == nil {
		return
	}

	infos := make([]coordinateInfo, 0, net.Size())
	net.Iter(func(n *gsomNode) {
		best := net.nodeBestFitness(n)
		if best == nil {
			return
		}
		infos = append(infos, coordinateInfo{
			Coord:          n.coord,
			DistanceToBest: relativeDistance(bestFitness, best),
			Age:            net.GetCurrentTime() - n.lastHit,
		})
	})

	shuffleAmount := rosomaxaShuffleAmount(stats, len(infos))
	rng := p.random.RNG()
	if shuffleAmount != len(infos) {
		if p.random.IsHeadNotTails() {
			sort.SliceStable(infos, func(i, j int) bool { return infos[i].DistanceToBest < infos[j].DistanceToBest })
		} else {
			sort.SliceStable(infos, func(i, j int) bool { return infos[i].Age < infos[j].Age })
		}
		partialShuffle(infos, shuffleAmount, rng)
	} else {
		rng.Shuffle(len(infos), func(i, j int) { infos[i], infos[j] = infos[j], infos[i] })
	}

	p.coordinates = infos
}

// rosomaxaShuffleAmount implements spec.md §4.6's shuffle_amount formula,
// driven by improvement_1000_ratio and, in its steepest branch,
// termination_estimate through a logistic curve.
func rosomaxaShuffleAmount(stats HeuristicStatistics, length int) int {
	v := stats.Improvement1000Ratio

	var ratio float64
	switch {
	case v > 0.5:
		x := stats.TerminationEstimate
		r := 0.5 * (1 - 1/(1+math.Exp(-10*(x-0.5))))
		if r < 0.1 {
			r = 0.1
		} else if r > 0.5 {
			r = 0.5
		}
		ratio = r
	case v > 0.2:
		ratio = 0.5
	default:
		ratio = 1.0
	}
	return int(math.Round(float64(length) * ratio))
}

// partialShuffle performs a Fisher-Yates shuffle restricted to the first
// n positions of infos: each of the first n slots is swapped with a
// uniformly random element from its own position through the end of the
// slice, mirroring rand::SliceRandom::partial_shuffle.
func partialShuffle(infos []coordinateInfo, n int, rng *rand.Rand) {
	if n > len(infos) {
		n = len(infos)
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(infos)-i)
		infos[i], infos[j] = infos[j], infos[i]
	}
}

// selectExploration implements spec.md §4.7's Exploration selection
// composition: split selectionSize into elite picks and per-coordinate
// node picks, emit the elite picks first, then interleave up to
// uniform_int(1, nodePicks) members from each coordinate's node archive
// (in current coordinate order) until selectionSize total is reached.
func (p *phaseController) selectExploration(elite *Elitism) []Solution {
	net := p.network
	if net == nil {
		return elite.Select()
	}

	s := p.selectionSize
	var elitePicks, nodePicks int
	switch {
	case s > 6:
		elitePicks, nodePicks = p.random.UniformInt(2, 4), 2
	case s > 4:
		elitePicks, nodePicks = 2, 2
	case s > 2:
		elitePicks, nodePicks = 2, 1
	default:
		elitePicks, nodePicks = 1, 1
	}

	out := make([]Solution, 0, s)
	for i, sol := range elite.Select() {
		if len(out) >= s || i >= elitePicks {
			break
		}
		out = append(out, sol)
	}

	for _, info := range p.coordinates {
		if len(out) >= s {
			break
		}
		node, ok := net.Find(info.Coord)
		if !ok {
			continue
		}
		take := p.random.UniformInt(1, nodePicks)
		for _, sol := range node.storage.Select() {
			if len(out) >= s || take <= 0 {
				break
			}
			out = append(out, sol)
			take--
		}
	}

	return out
}
