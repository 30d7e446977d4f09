package rosomaxa

import (
	"fmt"
	"math"

	iradix "github.com/hashicorp/go-immutable-radix"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
)

// gsomNetwork is a growing self-organizing map over Solution weight
// vectors. Nodes are keyed by integer Coordinate; the grid starts as a 2x2
// seed and grows new nodes at the cardinal neighbors of a node whose
// accumulated training error crosses its growth threshold.
type gsomNetwork struct {
	nodes   map[Coordinate]*gsomNode
	objective Objective
	random    Random

	nodeSize               int
	spreadFactor           float64
	distributionFactor     float64
	learningRate           float64
	reshufflingProbability float64
	hasInitialError        bool

	currentTime int

	bestFitnessCache *lru.Cache
	log              *zerolog.Logger
}

// newGsomNetwork creates a 2x2 seed grid from exactly four seed solutions,
// each becoming the initial weight vector (and sole local-archive member)
// of one of the four corner nodes, per original_source's create_network.
func newGsomNetwork(seeds [4]Solution, objective Objective, random Random, nodeSize int, spreadFactor, distributionFactor, learningRate, reshufflingProbability float64, hasInitialError bool, log *zerolog.Logger) *gsomNetwork {
	cache, _ := lru.New(256)
	n := &gsomNetwork{
		nodes:                  make(map[Coordinate]*gsomNode, 4),
		objective:              objective,
		random:                 random,
		nodeSize:               nodeSize,
		spreadFactor:           spreadFactor,
		distributionFactor:     distributionFactor,
		learningRate:           learningRate,
		reshufflingProbability: reshufflingProbability,
		hasInitialError:        hasInitialError,
		bestFitnessCache:       cache,
		log:                    log,
	}

	coords := [4]Coordinate{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, coord := range coords {
		node := newGsomNode(coord, seeds[i].Weights(), objective, random, nodeSize, reshufflingProbability)
		node.storage.Add(seeds[i])
		n.nodes[coord] = node
	}
	return n
}

func (n *gsomNetwork) logEvent() *zerolog.Event {
	if n.log == nil {
		l := zerolog.Nop()
		n.log = &l
	}
	return n.log.Debug()
}

// Size returns the current node count.
func (n *gsomNetwork) Size() int {
	return len(n.nodes)
}

// Find returns the node at coord, if any.
func (n *gsomNetwork) Find(coord Coordinate) (*gsomNode, bool) {
	node, ok := n.nodes[coord]
	return node, ok
}

// Iter calls fn for every node in the grid. Iteration order is
// unspecified.
func (n *gsomNetwork) Iter(fn func(*gsomNode)) {
	for _, node := range n.nodes {
		fn(node)
	}
}

// GetCurrentTime returns the network's generation clock.
func (n *gsomNetwork) GetCurrentTime() int {
	return n.currentTime
}

// SetCurrentTime advances the generation clock, invalidating memoized
// best-fitness lookups from earlier generations.
func (n *gsomNetwork) SetCurrentTime(generation int) {
	n.currentTime = generation
	n.bestFitnessCache.Purge()
}

// bmu returns the node whose weight vector is closest (squared Euclidean)
// to input.
func (n *gsomNetwork) bmu(input []float64) *gsomNode {
	var best *gsomNode
	bestDist := math.Inf(1)
	for _, node := range n.nodes {
		d := node.squaredDistance(input)
		if d < bestDist {
			bestDist = d
			best = node
		}
	}
	return best
}

// growthThreshold is GT = -dim * ln(1 - spreadFactor), the accumulated
// error a node must exceed before it spawns missing cardinal neighbors.
func (n *gsomNetwork) growthThreshold(dim int) float64 {
	sf := n.spreadFactor
	if sf >= 1 {
		sf = 1 - relativeDistanceEpsilon
	}
	return -float64(dim) * math.Log(1-sf)
}

// Store trains the network on a single input, routing it to its best
// matching unit, nudging the BMU and its present cardinal neighbors
// toward the input, and growing new nodes if the BMU's accumulated error
// crosses its growth threshold.
func (n *gsomNetwork) Store(input Solution, generation int) {
	weights := input.Weights()
	node := n.bmu(weights)
	if node == nil {
		return
	}

	nodeErr := node.squaredDistance(weights)
	node.adjust(weights, n.learningRate)

	for _, nc := range node.coord.neighbors() {
		if neighbor, ok := n.nodes[nc]; ok {
			neighbor.adjust(weights, n.learningRate*n.distributionFactor)
		}
	}

	node.storage.Add(input)
	node.lastHit = generation
	node.totalHits++

	node.errorAcc += nodeErr
	gt := n.growthThreshold(len(node.weights))
	if node.errorAcc > gt {
		n.grow(node)
		node.errorAcc = gt / 2
	}
}

// StoreBatch trains the network on every item in items at generation.
func (n *gsomNetwork) StoreBatch(items []Solution, generation int) {
	for _, item := range items {
		n.Store(item, generation)
	}
}

// grow adds a node for each of bmu's missing cardinal neighbors,
// extrapolating its initial weight vector from bmu's existing neighbors.
func (n *gsomNetwork) grow(bmu *gsomNode) {
	for _, dir := range bmu.coord.neighbors() {
		if _, exists := n.nodes[dir]; exists {
			continue
		}
		n.nodes[dir] = newGsomNode(dir, n.extrapolate(bmu, dir), n.objective, n.random, n.nodeSize, n.reshufflingProbability)
		n.logEvent().Int("x", dir.X).Int("y", dir.Y).Msg("gsom node grown")
	}
}

// extrapolate computes the initial weight vector for a new node at dir,
// a missing cardinal neighbor of bmu: mirror across bmu from the opposite
// neighbor if present, else average with any other present neighbor of
// bmu, else copy bmu's weights with a small perturbation.
func (n *gsomNetwork) extrapolate(bmu *gsomNode, dir Coordinate) []float64 {
	if opp, ok := n.nodes[bmu.coord.opposite(dir)]; ok {
		out := make([]float64, len(bmu.weights))
		for i := range out {
			out[i] = 2*bmu.weights[i] - opp.weights[i]
		}
		return out
	}

	for _, nc := range bmu.coord.neighbors() {
		if nc == dir {
			continue
		}
		if other, ok := n.nodes[nc]; ok {
			out := make([]float64, len(bmu.weights))
			for i := range out {
				out[i] = (bmu.weights[i] + other.weights[i]) / 2
			}
			return out
		}
	}

	out := make([]float64, len(bmu.weights))
	for i := range out {
		out[i] = bmu.weights[i] + n.random.UniformReal(-0.01, 0.01)
	}
	return out
}

// Retrain rebalances the network: every node's held solutions are drained
// and set aside, nodes failing keepPredicate (evaluated on each node from a
// pre-retraining snapshot of the grid, before its archive is drained, so
// growth during replay can't change the outcome for an already-judged
// node) are discarded, and the
// drained solutions are replayed count times through Store so membership
// is recomputed against the surviving topology.
func (n *gsomNetwork) Retrain(count int, keepPredicate func(node *gsomNode) bool) {
	snapshot := iradix.New()
	for coord, node := range n.nodes {
		snapshot, _, _ = snapshot.Insert(coord.bytes(), node)
	}

	var replay []Solution
	for coord, node := range n.nodes {
		keep := true
		if raw, ok := snapshot.Get(coord.bytes()); ok {
			keep = keepPredicate(raw.(*gsomNode))
		}

		replay = append(replay, node.storage.Drain(0, node.storage.Size())...)
		if !keep {
			delete(n.nodes, coord)
		}
	}
	n.bestFitnessCache.Purge()

	if len(n.nodes) == 0 {
		return
	}

	for i := 0; i < count; i++ {
		n.StoreBatch(replay, n.currentTime)
	}

	if !n.hasInitialError {
		n.Iter(func(node *gsomNode) { node.errorAcc = 0 })
	}

	n.logEvent().Int("nodes", len(n.nodes)).Int("replayed", len(replay)).Msg("gsom network retrained")
}

// nodeBestFitness returns the fitness vector of node's best-ranked held
// solution, memoized per generation so repeated calls within the same
// generation (e.g. from optimizeNetwork and coordinate refill) avoid
// re-sorting the node's archive. Retrain purges the memo, since replay
// changes what each node holds.
func (n *gsomNetwork) nodeBestFitness(node *gsomNode) []float64 {
	key := fmt.Sprintf("%d:%d:%d", node.coord.X, node.coord.Y, n.currentTime)
	if cached, ok := n.bestFitnessCache.Get(key); ok {
		return cached.([]float64)
	}
	best := node.bestFitness()
	n.bestFitnessCache.Add(key, best)
	return best
}
