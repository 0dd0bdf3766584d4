package matching

import (
	"math"
	"time"

	"entity-match/internal/domain/entity"
)

// OptimalAssignment pairs the two sides so that the total similarity score
// is globally maximal among all one-to-one assignments whose pairs clear the
// criteria's minimum score. Score maximization is reduced to cost
// minimization by negating scores; size mismatch is handled by padding the
// matrix to square with +Inf cells, which the solver can never prefer over a
// real pairing.
type OptimalAssignment struct{}

func NewOptimalAssignment() *OptimalAssignment {
	return &OptimalAssignment{}
}

func (m *OptimalAssignment) Match(entitiesA, entitiesB []entity.Entity, criteria entity.Criteria) entity.MatchingResult {
	start := time.Now()

	if len(entitiesA) == 0 || len(entitiesB) == 0 {
		return emptyResult(entitiesA, entitiesB, start)
	}

	n := len(entitiesA)
	mSize := len(entitiesB)
	dim := n
	if mSize > dim {
		dim = mSize
	}

	// Sub-threshold pairs are zeroed here so the matrix only ever carries
	// acceptable scores or exactly 0.
	cost := make([][]float64, dim)
	for i := range cost {
		cost[i] = make([]float64, dim)
		for j := range cost[i] {
			if i >= n || j >= mSize {
				cost[i][j] = math.Inf(1)
				continue
			}
			s := Score(entitiesA[i], entitiesB[j], criteria)
			if s < criteria.MinScore {
				s = 0
			}
			cost[i][j] = -s
		}
	}

	assignment := solveAssignment(cost)

	matchedAt := time.Now().UTC()
	var matches []entity.Match
	for i, j := range assignment {
		if i >= n || j >= mSize {
			continue
		}
		score := -cost[i][j]
		if score > 0 && score >= criteria.MinScore {
			matches = append(matches, entity.Match{
				EntityA: entitiesA[i].ID,
				EntityB: entitiesB[j].ID,
				Score:   score,
				Details: map[string]any{
					"algorithm":     AlgorithmOptimalAssignment,
					"entity_a_type": entitiesA[i].Type.String(),
					"entity_b_type": entitiesB[j].Type.String(),
				},
				MatchedAt: matchedAt,
			})
		}
	}

	return BuildResult(matches, entityIDs(entitiesA), entityIDs(entitiesB), time.Since(start))
}
