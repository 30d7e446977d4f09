package rosomaxa

import (
	"fmt"
	"sort"
	"strings"
)

// RankedSolution pairs a solution with its 0-based rank within an
// Elitism archive (0 = best under the archive's current total order).
type RankedSolution struct {
	Solution Solution
	Rank     int
}

type eliteMember struct {
	solution Solution
	fitness  []float64
}

// Elitism is a bounded, non-dominated set of solutions with a selector.
// Size never exceeds capacity; for every pair of members neither
// strictly (Pareto) dominates the other at time of insertion. Members
// are kept sorted by the archive's current Objective.TotalOrder, which
// may be replaced wholesale (without touching membership) via
// ShuffleObjective.
type Elitism struct {
	objective Objective
	random    Random
	capacity  int
	selection int
	members   []eliteMember
}

// newElitism creates an empty archive. capacity must be >= 1; selection
// (the size select() caps out at) must be >= 1. The stricter selection
// >= 2 bound from spec.md §4.2 is enforced by NewPopulation for the
// top-level archive; node-local archives are sized from node_size, which
// config validation only requires to be >= 1.
func newElitism(objective Objective, random Random, capacity, selection int) *Elitism {
	if capacity < 1 {
		capacity = 1
	}
	if selection < 1 {
		selection = 1
	}
	return &Elitism{
		objective: objective,
		random:    random,
		capacity:  capacity,
		selection: selection,
		members:   make([]eliteMember, 0, capacity),
	}
}

// Add inserts individual, returning true iff it becomes the rank-0
// member or displaces (by Pareto dominance) an existing member.
func (e *Elitism) Add(individual Solution) bool {
	fitness := individual.Fitness()

	for _, m := range e.members {
		if dominates(m.fitness, fitness) {
			return false
		}
	}

	displaced := false
	kept := e.members[:0]
	for _, m := range e.members {
		if dominates(fitness, m.fitness) {
			displaced = true
			continue
		}
		kept = append(kept, m)
	}
	e.members = append(kept, eliteMember{solution: individual, fitness: fitness})
	e.rerank()

	isBest := e.members[0].solution == individual

	if len(e.members) > e.capacity {
		e.members = e.members[:e.capacity]
	}

	return isBest || displaced
}

// AddAll is logically a repeated Add; it returns true if any individual
// improved the archive.
func (e *Elitism) AddAll(batch []Solution) bool {
	improved := false
	for _, s := range batch {
		if e.Add(s) {
			improved = true
		}
	}
	return improved
}

// Select yields up to the archive's selection size, best rank first.
func (e *Elitism) Select() []Solution {
	n := e.selection
	if n > len(e.members) {
		n = len(e.members)
	}
	out := make([]Solution, n)
	for i := 0; i < n; i++ {
		out[i] = e.members[i].solution
	}
	return out
}

// Ranked yields every member, best rank first.
func (e *Elitism) Ranked() []RankedSolution {
	out := make([]RankedSolution, len(e.members))
	for i, m := range e.members {
		out[i] = RankedSolution{Solution: m.solution, Rank: i}
	}
	return out
}

// Cmp exposes the archive's current total order.
func (e *Elitism) Cmp(a, b Solution) Ordering {
	return e.objective.TotalOrder(a, b)
}

// ShuffleObjective swaps in a freshly shuffled total order and re-ranks
// members accordingly. Membership is unchanged.
func (e *Elitism) ShuffleObjective() {
	e.objective = e.objective.Shuffled(e.random)
	e.rerank()
}

// Drain removes and returns members with rank in [lo, hi).
func (e *Elitism) Drain(lo, hi int) []Solution {
	if lo < 0 {
		lo = 0
	}
	if hi > len(e.members) {
		hi = len(e.members)
	}
	if lo >= hi {
		return nil
	}

	drained := make([]Solution, hi-lo)
	for i := lo; i < hi; i++ {
		drained[i-lo] = e.members[i].solution
	}
	e.members = append(e.members[:lo], e.members[hi:]...)
	return drained
}

// Size returns the current member count.
func (e *Elitism) Size() int {
	return len(e.members)
}

// SetSelectionSize retunes how many members Select returns. Membership
// and ranking are unaffected; n < 1 is clamped to 1.
func (e *Elitism) SetSelectionSize(n int) {
	if n < 1 {
		n = 1
	}
	e.selection = n
}

func (e *Elitism) rerank() {
	sort.SliceStable(e.members, func(i, j int) bool {
		return e.objective.TotalOrder(e.members[i].solution, e.members[j].solution) == Less
	})
}

func (e *Elitism) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "elitism(size=%d/%d):\n", len(e.members), e.capacity)
	for i, m := range e.members {
		fmt.Fprintf(&b, "  [%d] fitness=%v\n", i, m.fitness)
	}
	return b.String()
}
