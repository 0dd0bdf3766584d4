package matching

import (
	"testing"

	"entity-match/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func yearsEntity(id string, years float64) entity.Entity {
	return testEntity(id, map[string]entity.AttrValue{
		"experience_years": entity.Number(years),
	})
}

func yearsCriteria(t *testing.T, minScore float64) entity.Criteria {
	return testCriteria(t, entity.CriteriaParams{
		Weights:  map[string]float64{"experience_years": 1},
		MinScore: minScore,
	})
}

func TestOptimalAssignment_SymmetricObviousCase(t *testing.T) {
	m := NewOptimalAssignment()
	res := m.Match(
		[]entity.Entity{yearsEntity("X", 5)},
		[]entity.Entity{yearsEntity("Y", 5)},
		yearsCriteria(t, 0.5),
	)

	require.Len(t, res.Matches, 1)
	require.Equal(t, "X", res.Matches[0].EntityA)
	require.Equal(t, "Y", res.Matches[0].EntityB)
	require.InDelta(t, 1.0, res.Matches[0].Score, 1e-9)
	require.Empty(t, res.UnmatchedEntities)
	require.InDelta(t, 1.0, res.TotalScore, 1e-9)
	require.Equal(t, AlgorithmOptimalAssignment, res.Matches[0].Details["algorithm"])
}

func TestOptimalAssignment_EmptySide(t *testing.T) {
	m := NewOptimalAssignment()
	res := m.Match(nil, []entity.Entity{yearsEntity("Y", 5)}, yearsCriteria(t, 0))

	require.Empty(t, res.Matches)
	require.Equal(t, []string{"Y"}, res.UnmatchedEntities)
	require.Equal(t, 0.0, res.TotalScore)
}

func TestOptimalAssignment_SizeMismatch(t *testing.T) {
	m := NewOptimalAssignment()
	res := m.Match(
		[]entity.Entity{yearsEntity("a1", 50), yearsEntity("a2", 10), yearsEntity("a3", 11)},
		[]entity.Entity{yearsEntity("b1", 10)},
		yearsCriteria(t, 0.5),
	)

	require.Len(t, res.Matches, 1)
	require.Equal(t, "a2", res.Matches[0].EntityA)
	require.Equal(t, "b1", res.Matches[0].EntityB)
	require.ElementsMatch(t, []string{"a1", "a3"}, res.UnmatchedEntities)
}

func TestOptimalAssignment_MinScoreExcludesPairs(t *testing.T) {
	m := NewOptimalAssignment()
	// Scores: a1-b1 = 0.9, a2-b2 = 0.3 (below threshold).
	res := m.Match(
		[]entity.Entity{yearsEntity("a1", 10), yearsEntity("a2", 100)},
		[]entity.Entity{yearsEntity("b1", 20), yearsEntity("b2", 170)},
		yearsCriteria(t, 0.5),
	)

	require.Len(t, res.Matches, 1)
	require.Equal(t, "a1", res.Matches[0].EntityA)
	require.ElementsMatch(t, []string{"a2", "b2"}, res.UnmatchedEntities)
}

func TestOptimalAssignment_ZeroScorePairsNeverMatch(t *testing.T) {
	m := NewOptimalAssignment()
	res := m.Match(
		[]entity.Entity{yearsEntity("a1", 0)},
		[]entity.Entity{yearsEntity("b1", 200)},
		yearsCriteria(t, 0),
	)

	require.Empty(t, res.Matches)
	require.ElementsMatch(t, []string{"a1", "b1"}, res.UnmatchedEntities)
}

func TestOptimalAssignment_TotalScoreIsOptimal(t *testing.T) {
	as := []entity.Entity{
		yearsEntity("a1", 10),
		yearsEntity("a2", 35),
		yearsEntity("a3", 60),
	}
	bs := []entity.Entity{
		yearsEntity("b1", 20),
		yearsEntity("b2", 50),
		yearsEntity("b3", 90),
	}
	c := yearsCriteria(t, 0.5)

	res := NewOptimalAssignment().Match(as, bs, c)

	best := 0.0
	for _, perm := range permutations([]int{0, 1, 2}) {
		total := 0.0
		for i, j := range perm {
			s := Score(as[i], bs[j], c)
			if s > 0 && s >= c.MinScore {
				total += s
			}
		}
		if total > best {
			best = total
		}
	}

	require.InDelta(t, best, res.TotalScore, 1e-9)
}

func TestOptimalAssignment_Deterministic(t *testing.T) {
	as := []entity.Entity{yearsEntity("a1", 10), yearsEntity("a2", 30)}
	bs := []entity.Entity{yearsEntity("b1", 25), yearsEntity("b2", 12)}
	c := yearsCriteria(t, 0)

	m := NewOptimalAssignment()
	first := m.Match(as, bs, c)
	second := m.Match(as, bs, c)

	require.Equal(t, len(first.Matches), len(second.Matches))
	for i := range first.Matches {
		require.Equal(t, first.Matches[i].EntityA, second.Matches[i].EntityA)
		require.Equal(t, first.Matches[i].EntityB, second.Matches[i].EntityB)
		require.Equal(t, first.Matches[i].Score, second.Matches[i].Score)
	}
	require.Equal(t, first.UnmatchedEntities, second.UnmatchedEntities)
	require.Equal(t, first.TotalScore, second.TotalScore)
}

func TestOptimalAssignment_DetailsCarryTypes(t *testing.T) {
	a := entity.NewEntity("c1", entity.TypeCandidate, map[string]entity.AttrValue{
		"experience_years": entity.Number(3),
	}, nil, nil)
	b := entity.NewEntity("j1", entity.TypeJob, map[string]entity.AttrValue{
		"experience_years": entity.Number(3),
	}, nil, nil)

	res := NewOptimalAssignment().Match([]entity.Entity{a}, []entity.Entity{b}, yearsCriteria(t, 0))
	require.Len(t, res.Matches, 1)
	require.Equal(t, "candidate", res.Matches[0].Details["entity_a_type"])
	require.Equal(t, "job", res.Matches[0].Details["entity_b_type"])
}
