package rosomaxa

import "math"

// relativeDistanceEpsilon guards against division by zero when both
// components of a pair being compared are zero.
const relativeDistanceEpsilon = 1e-9

// relativeDistance computes the scale-normalized Euclidean distance
// between two fitness (or weight) vectors. For each matched component i,
// d_i = |a_i - b_i| / max(|a_i|, |b_i|, epsilon); the result is
// sqrt(sum(d_i^2)). Mismatched lengths compare only the shared prefix.
// Two empty vectors, or a zero vector against itself, yield 0 rather than
// NaN or a division error.
func relativeDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	sumSq := 0.0
	for i := 0; i < n; i++ {
		denom := math.Max(math.Abs(a[i]), math.Abs(b[i]))
		if denom < relativeDistanceEpsilon {
			denom = relativeDistanceEpsilon
		}
		d := (a[i] - b[i]) / denom
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// dominates reports whether fitness vector a Pareto-dominates b under
// minimization: a is no worse than b in every component and strictly
// better in at least one. Mismatched lengths, or either vector empty,
// never dominate (defined as false, never surfaced as an error per
// spec.md §7).
func dominates(a, b []float64) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}

	strictlyBetter := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}
