package matching

import (
	"time"

	"entity-match/internal/domain/entity"
)

// BuildResult assembles the final MatchingResult: unmatched is the full id
// universe minus every id appearing in a match, preserving side-A order
// first, then side-B.
func BuildResult(matches []entity.Match, idsA, idsB []string, elapsed time.Duration) entity.MatchingResult {
	matched := make(map[string]bool, len(matches)*2)
	total := 0.0
	for _, m := range matches {
		matched[m.EntityA] = true
		matched[m.EntityB] = true
		total += m.Score
	}

	unmatched := make([]string, 0, len(idsA)+len(idsB))
	for _, id := range idsA {
		if !matched[id] {
			unmatched = append(unmatched, id)
		}
	}
	for _, id := range idsB {
		if !matched[id] {
			unmatched = append(unmatched, id)
		}
	}

	if matches == nil {
		matches = []entity.Match{}
	}
	return entity.MatchingResult{
		Matches:           matches,
		UnmatchedEntities: unmatched,
		TotalScore:        total,
		ExecutionTime:     elapsed,
	}
}

func entityIDs(es []entity.Entity) []string {
	ids := make([]string, 0, len(es))
	for _, e := range es {
		ids = append(ids, e.ID)
	}
	return ids
}

func emptyResult(as, bs []entity.Entity, start time.Time) entity.MatchingResult {
	return BuildResult(nil, entityIDs(as), entityIDs(bs), time.Since(start))
}
