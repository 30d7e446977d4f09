package rosomaxa

import "testing"

func seedNetwork(t *testing.T) *gsomNetwork {
	t.Helper()
	seeds := [4]Solution{
		newVectorSolution(1, 0, 0),
		newVectorSolution(2, 0, 1),
		newVectorSolution(3, 1, 0),
		newVectorSolution(4, 1, 1),
	}
	return newGsomNetwork(seeds, newSphereObjective(2), NewRandom(7), 2, 0.25, 0.25, 0.1, 0, true, nil)
}

func TestNewGsomNetworkSeedsFourCornerNodes(t *testing.T) {
	net := seedNetwork(t)
	if net.Size() != 4 {
		t.Fatalf("expected a 2x2 seed grid (4 nodes), got %d", net.Size())
	}
	for _, c := range []Coordinate{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		if _, ok := net.Find(c); !ok {
			t.Errorf("expected seed node at %v", c)
		}
	}
}

func TestStoreMovesBmuWeightsTowardInput(t *testing.T) {
	net := seedNetwork(t)
	node, _ := net.Find(Coordinate{0, 0})
	before := append([]float64(nil), node.weights...)

	net.Store(newVectorSolution(5, -1, -1), 1)

	after := node.weights
	for i := range before {
		if after[i] >= before[i] {
			t.Fatalf("expected weight[%d] to move toward -1 from %v, got %v", i, before[i], after[i])
		}
	}
}

func TestStoreGrowsNetworkOnceErrorCrossesThreshold(t *testing.T) {
	net := seedNetwork(t)
	sizeBefore := net.Size()

	for i := 0; i < 50; i++ {
		net.Store(newVectorSolution(100+i, -5, -5), i)
	}

	if net.Size() <= sizeBefore {
		t.Fatalf("expected network to grow past %d nodes feeding it far-away input, got %d", sizeBefore, net.Size())
	}
}

func TestRetrainKeepingNothingEmptiesTheGrid(t *testing.T) {
	net := seedNetwork(t)
	net.Retrain(1, func(*gsomNode) bool { return false })

	if net.Size() != 0 {
		t.Fatalf("keep predicate rejecting every node should empty the grid, got size=%d", net.Size())
	}
}

func TestRetrainPreservesSolutionsAcrossReplay(t *testing.T) {
	net := seedNetwork(t)
	net.Retrain(2, func(*gsomNode) bool { return true })

	total := 0
	net.Iter(func(n *gsomNode) { total += n.storage.Size() })
	if total == 0 {
		t.Fatal("expected replayed solutions to repopulate node archives")
	}
}
