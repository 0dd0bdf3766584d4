package matching

import (
	"errors"
	"fmt"
	"strings"

	"entity-match/internal/domain/entity"
)

// Canonical algorithm selectors. The underscore/hyphen variants of the
// historical names are accepted as aliases by ForAlgorithm.
const (
	AlgorithmOptimalAssignment = "optimal-assignment"
	AlgorithmStableMatching    = "stable-matching"
)

var ErrUnknownAlgorithm = errors.New("unknown matching algorithm")

// Matcher produces a one-to-one pairing between two entity sets. Both
// implementations are pure and safe for concurrent use across independent
// calls; they never mutate their inputs.
type Matcher interface {
	Match(entitiesA, entitiesB []entity.Entity, criteria entity.Criteria) entity.MatchingResult
}

// ForAlgorithm resolves a selector string to the matcher implementing it.
func ForAlgorithm(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AlgorithmOptimalAssignment, "hungarian":
		return NewOptimalAssignment(), nil
	case AlgorithmStableMatching, "gale_shapley", "gale-shapley":
		return NewStableMatching(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
