package rosomaxa

import "errors"

// Construction-time configuration failures. NewPopulation returns one of
// these (wrapped with additional context) when RosomaxaConfig violates a
// documented lower bound; no partial population is created.
var (
	ErrEliteSizeTooSmall     = errors.New("rosomaxa: elite_size must be >= 1")
	ErrNodeSizeTooSmall      = errors.New("rosomaxa: node_size must be >= 1")
	ErrSelectionSizeTooSmall = errors.New("rosomaxa: selection_size must be >= 2")
)
