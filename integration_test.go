package rosomaxa

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
)

// integrationTestContext holds state shared between godog steps, adapted
// from the teacher's integration_test.go context-struct pattern.
type integrationTestContext struct {
	population *Population
	err        error

	lastAddImproved bool
	buffered        int
}

func (c *integrationTestContext) reset() {
	c.population = nil
	c.err = nil
	c.lastAddImproved = false
	c.buffered = 0
}

func (c *integrationTestContext) aFreshPopulationWithEliteSize(eliteSize int) error {
	config := NewDefaultConfig()
	config.EliteSize = eliteSize
	pop, err := NewPopulation(config, newSphereObjective(1), NewRandom(1))
	if err != nil {
		return err
	}
	c.population = pop
	return nil
}

func (c *integrationTestContext) iAddSolutionsWithFitness(count int, fitness float64) error {
	for i := 0; i < count; i++ {
		c.lastAddImproved = c.population.Add(newVectorSolution(c.buffered, fitness))
		c.buffered++
	}
	return nil
}

func (c *integrationTestContext) theSelectionPhaseShouldBe(phase string) error {
	if got := c.population.SelectionPhase(); got != phase {
		return fmt.Errorf("expected phase %q, got %q", phase, got)
	}
	return nil
}

func (c *integrationTestContext) theEliteSizeShouldBe(size int) error {
	if got := c.population.Size(); got != size {
		return fmt.Errorf("expected elite size %d, got %d", size, got)
	}
	return nil
}

func (c *integrationTestContext) iRunGenerationsWithTerminationEstimate(generations int, estimate float64) error {
	for i := 0; i < generations; i++ {
		c.population.OnGeneration(HeuristicStatistics{
			Generation:          i,
			TerminationEstimate: estimate,
			Speed:               Speed{Moderate: true},
		})
	}
	return nil
}

func (c *integrationTestContext) theSelectionShouldContainAtMostSolutions(max int) error {
	if got := len(c.population.Select()); got > max {
		return fmt.Errorf("expected at most %d selected solutions, got %d", max, got)
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	ctx := &integrationTestContext{}

	sc.Before(func(goCtx context.Context, _ *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return goCtx, nil
	})

	sc.Step(`^a fresh population with elite size (\d+)$`, ctx.aFreshPopulationWithEliteSize)
	sc.Step(`^I add (\d+) solutions with fitness (-?[\d.]+)$`, ctx.iAddSolutionsWithFitness)
	sc.Step(`^the selection phase should be "([^"]*)"$`, ctx.theSelectionPhaseShouldBe)
	sc.Step(`^the elite size should be (\d+)$`, ctx.theEliteSizeShouldBe)
	sc.Step(`^I run (\d+) generations with termination estimate (-?[\d.]+)$`, ctx.iRunGenerationsWithTerminationEstimate)
	sc.Step(`^the selection should contain at most (\d+) solutions$`, ctx.theSelectionShouldContainAtMostSolutions)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
