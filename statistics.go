package rosomaxa

// Speed classifies how quickly the search is converging, as judged by the
// outer evolutionary driver and fed in via HeuristicStatistics.
type Speed struct {
	// Moderate is true when progress is neither stalling nor loafing.
	Moderate bool
	// Ratio is only meaningful when Moderate is false: values below 1
	// indicate the search is slower than the driver's baseline.
	Ratio float64
}

// HeuristicStatistics is the per-generation snapshot the outer driver
// feeds into OnGeneration. None of these fields are computed by this
// package; they describe the state of a larger search this package has
// no visibility into.
type HeuristicStatistics struct {
	Generation             int
	TerminationEstimate    float64
	Improvement1000Ratio   float64
	Speed                  Speed
}
