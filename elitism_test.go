package rosomaxa

import "testing"

func TestElitismRejectsDominatedSolution(t *testing.T) {
	e := newElitism(newSphereObjective(1), NewRandom(1), 4, 4)

	if !e.Add(newVectorSolution(1, 8)) {
		t.Fatal("first add should report improvement")
	}
	if e.Add(newVectorSolution(2, 10)) {
		t.Fatal("dominated solution [10] should not improve over [8]")
	}
	if e.Size() != 1 {
		t.Fatalf("dominated solution should not be admitted, size=%d", e.Size())
	}
}

func TestElitismEvictsDominatedOnInsertion(t *testing.T) {
	e := newElitism(newSphereObjective(2), NewRandom(1), 4, 4)

	e.Add(newVectorSolution(1, 5, 5))
	if !e.Add(newVectorSolution(2, 1, 1)) {
		t.Fatal("strictly dominating solution should report improvement")
	}

	if e.Size() != 1 {
		t.Fatalf("dominated member should have been evicted, size=%d", e.Size())
	}
}

func TestElitismKeepsNonDominatedPair(t *testing.T) {
	e := newElitism(newSphereObjective(2), NewRandom(1), 4, 4)

	e.Add(newVectorSolution(1, 1, 5))
	e.Add(newVectorSolution(2, 5, 1))

	if e.Size() != 2 {
		t.Fatalf("neither solution dominates the other, both should be kept, size=%d", e.Size())
	}
}

func TestElitismCapacityTrim(t *testing.T) {
	e := newElitism(newSphereObjective(2), NewRandom(1), 2, 2)

	e.Add(newVectorSolution(1, 1, 9))
	e.Add(newVectorSolution(2, 5, 5))
	e.Add(newVectorSolution(3, 9, 1))

	if e.Size() > 2 {
		t.Fatalf("archive should never exceed capacity 2, got size=%d", e.Size())
	}
}

func TestElitismRankedOrderMatchesElitRankedExample(t *testing.T) {
	e := newElitism(newSphereObjective(1), NewRandom(1), 4, 4)
	e.Add(newVectorSolution(1, 10))
	e.Add(newVectorSolution(2, 8))

	ranked := e.Ranked()
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked members, got %d", len(ranked))
	}
	if ranked[0].Solution.Fitness()[0] != 8 || ranked[1].Solution.Fitness()[0] != 10 {
		t.Fatalf("expected ranked order [8, 10], got [%v, %v]",
			ranked[0].Solution.Fitness(), ranked[1].Solution.Fitness())
	}
	if ranked[0].Rank != 0 || ranked[1].Rank != 1 {
		t.Fatalf("expected ranks 0 and 1, got %d and %d", ranked[0].Rank, ranked[1].Rank)
	}
}

func TestElitismSelectCapsAtSelectionSize(t *testing.T) {
	e := newElitism(newSphereObjective(2), NewRandom(1), 4, 1)
	e.Add(newVectorSolution(1, 1, 9))
	e.Add(newVectorSolution(2, 9, 1))

	if got := len(e.Select()); got != 1 {
		t.Fatalf("Select() should cap at selection size 1, got %d", got)
	}
}

func TestElitismDrainRemovesRankRange(t *testing.T) {
	e := newElitism(newSphereObjective(1), NewRandom(1), 4, 4)
	e.Add(newVectorSolution(1, 1))
	e.Add(newVectorSolution(2, 2))
	e.Add(newVectorSolution(3, 3))

	drained := e.Drain(0, 1)
	if len(drained) != 1 || drained[0].Fitness()[0] != 1 {
		t.Fatalf("expected to drain the best member [1], got %v", drained)
	}
	if e.Size() != 2 {
		t.Fatalf("expected 2 remaining members, got %d", e.Size())
	}
}
