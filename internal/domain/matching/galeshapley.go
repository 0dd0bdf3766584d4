package matching

import (
	"sort"
	"time"

	"entity-match/internal/domain/entity"
)

// StableMatching runs deferred acceptance (Gale-Shapley) over preference
// rankings derived from raw similarity scores. Side A proposes, side B
// accepts; an acceptor's engagement only ever improves by its own ranking.
// The converged engagements are stable: no proposer/acceptor pair prefer
// each other over their current partners.
//
// The criteria's minimum score is applied only after convergence, as a
// business overlay on the classical algorithm: converged pairs below the
// threshold are dropped and both members reported unmatched. Rankings
// themselves are built from raw scores so relative order survives below the
// threshold.
type StableMatching struct{}

func NewStableMatching() *StableMatching {
	return &StableMatching{}
}

func (m *StableMatching) Match(entitiesA, entitiesB []entity.Entity, criteria entity.Criteria) entity.MatchingResult {
	start := time.Now()

	if len(entitiesA) == 0 || len(entitiesB) == 0 {
		return emptyResult(entitiesA, entitiesB, start)
	}

	acceptorOf := deferredAcceptance(entitiesA, entitiesB, criteria)

	matchedAt := time.Now().UTC()
	var matches []entity.Match
	for i := range entitiesA {
		j := acceptorOf[i]
		if j < 0 {
			continue
		}
		score := Score(entitiesA[i], entitiesB[j], criteria)
		if score < criteria.MinScore {
			continue
		}
		matches = append(matches, entity.Match{
			EntityA: entitiesA[i].ID,
			EntityB: entitiesB[j].ID,
			Score:   score,
			Details: map[string]any{
				"algorithm": AlgorithmStableMatching,
				"stable":    true,
			},
			MatchedAt: matchedAt,
		})
	}

	return BuildResult(matches, entityIDs(entitiesA), entityIDs(entitiesB), time.Since(start))
}

// buildPreferences ranks every entity of `other` for each entity of `side`:
// descending raw score, ties broken by ascending counterpart ID so results
// do not depend on input ordering.
func buildPreferences(side, other []entity.Entity, criteria entity.Criteria) [][]int {
	prefs := make([][]int, len(side))
	for i := range side {
		order := make([]int, len(other))
		scores := make([]float64, len(other))
		for j := range other {
			order[j] = j
			scores[j] = Score(side[i], other[j], criteria)
		}
		sort.SliceStable(order, func(x, y int) bool {
			jx, jy := order[x], order[y]
			if scores[jx] != scores[jy] {
				return scores[jx] > scores[jy]
			}
			return other[jx].ID < other[jy].ID
		})
		prefs[i] = order
	}
	return prefs
}

// deferredAcceptance returns, per proposer index, the index of the acceptor
// it converged with, or -1 if it exhausted its list unmatched. Each
// proposer's pointer into its own list only advances, so the loop ends in at
// most n·m proposals.
func deferredAcceptance(entitiesA, entitiesB []entity.Entity, criteria entity.Criteria) []int {
	prefsA := buildPreferences(entitiesA, entitiesB, criteria)
	prefsB := buildPreferences(entitiesB, entitiesA, criteria)

	// rank[j][i] = position of proposer i in acceptor j's list.
	rank := make([][]int, len(entitiesB))
	for j := range prefsB {
		rank[j] = make([]int, len(entitiesA))
		for pos, i := range prefsB[j] {
			rank[j][i] = pos
		}
	}

	proposerOf := make([]int, len(entitiesB))
	for j := range proposerOf {
		proposerOf[j] = -1
	}
	next := make([]int, len(entitiesA))

	free := make([]int, 0, len(entitiesA))
	for i := range entitiesA {
		free = append(free, i)
	}

	for len(free) > 0 {
		p := free[0]

		if next[p] >= len(prefsA[p]) {
			// Exhausted: permanently unmatched.
			free = free[1:]
			continue
		}

		q := prefsA[p][next[p]]
		next[p]++

		current := proposerOf[q]
		switch {
		case current == -1:
			proposerOf[q] = p
			free = free[1:]
		case rank[q][p] < rank[q][current]:
			proposerOf[q] = p
			free = append(free[1:], current)
		}
		// Otherwise p stays free and tries its next preference.
	}

	acceptorOf := make([]int, len(entitiesA))
	for i := range acceptorOf {
		acceptorOf[i] = -1
	}
	for j, p := range proposerOf {
		if p >= 0 {
			acceptorOf[p] = j
		}
	}
	return acceptorOf
}
