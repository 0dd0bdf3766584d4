package matching

import (
	"testing"

	"entity-match/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func TestStableMatching_SymmetricObviousCase(t *testing.T) {
	m := NewStableMatching()
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
	require.Equal(t, AlgorithmStableMatching, res.Matches[0].Details["algorithm"])
	require.Equal(t, true, res.Matches[0].Details["stable"])
}

func TestStableMatching_EmptySide(t *testing.T) {
	m := NewStableMatching()
	res := m.Match([]entity.Entity{yearsEntity("X", 5)}, nil, yearsCriteria(t, 0))

	require.Empty(t, res.Matches)
	require.Equal(t, []string{"X"}, res.UnmatchedEntities)
}

func TestStableMatching_NoBlockingPair(t *testing.T) {
	as := []entity.Entity{
		yearsEntity("a1", 10),
		yearsEntity("a2", 40),
		yearsEntity("a3", 75),
	}
	bs := []entity.Entity{
		yearsEntity("b1", 15),
		yearsEntity("b2", 55),
		yearsEntity("b3", 70),
	}
	c := yearsCriteria(t, 0)

	acceptorOf := deferredAcceptance(as, bs, c)

	proposerOf := make([]int, len(bs))
	for j := range proposerOf {
		proposerOf[j] = -1
	}
	for i, j := range acceptorOf {
		if j >= 0 {
			proposerOf[j] = i
		}
	}

	prefsA := buildPreferences(as, bs, c)
	prefsB := buildPreferences(bs, as, c)
	rankA := rankTable(prefsA, len(bs))
	rankB := rankTable(prefsB, len(as))

	for i := range as {
		for j := range bs {
			if acceptorOf[i] == j {
				continue
			}
			proposerPrefers := acceptorOf[i] == -1 || rankA[i][j] < rankA[i][acceptorOf[i]]
			acceptorPrefers := proposerOf[j] == -1 || rankB[j][i] < rankB[j][proposerOf[j]]
			require.False(t, proposerPrefers && acceptorPrefers,
				"blocking pair: %s and %s", as[i].ID, bs[j].ID)
		}
	}
}

func rankTable(prefs [][]int, width int) [][]int {
	rank := make([][]int, len(prefs))
	for i, list := range prefs {
		rank[i] = make([]int, width)
		for pos, j := range list {
			rank[i][j] = pos
		}
	}
	return rank
}

func TestStableMatching_PostFilterDropsLowScorePairs(t *testing.T) {
	// The only stable pairing scores 0.3, below the threshold: it converges
	// but is dropped, leaving both sides unmatched.
	m := NewStableMatching()
	res := m.Match(
		[]entity.Entity{yearsEntity("a1", 10)},
		[]entity.Entity{yearsEntity("b1", 80)},
		yearsCriteria(t, 0.5),
	)

	require.Empty(t, res.Matches)
	require.ElementsMatch(t, []string{"a1", "b1"}, res.UnmatchedEntities)
	require.Equal(t, 0.0, res.TotalScore)
}

func TestStableMatching_ExhaustedProposerStaysUnmatched(t *testing.T) {
	m := NewStableMatching()
	res := m.Match(
		[]entity.Entity{yearsEntity("a1", 10), yearsEntity("a2", 12), yearsEntity("a3", 90)},
		[]entity.Entity{yearsEntity("b1", 11)},
		yearsCriteria(t, 0),
	)

	require.Len(t, res.Matches, 1)
	require.Equal(t, "b1", res.Matches[0].EntityB)
	require.Len(t, res.UnmatchedEntities, 2)
}

func TestStableMatching_TieBreakIsInputOrderIndependent(t *testing.T) {
	// All pairs score identically, so ordering falls entirely to the
	// lexicographic tie-break.
	c := yearsCriteria(t, 0)
	as := []entity.Entity{yearsEntity("a1", 5), yearsEntity("a2", 5)}
	bs := []entity.Entity{yearsEntity("b1", 5), yearsEntity("b2", 5)}
	bsReversed := []entity.Entity{bs[1], bs[0]}

	m := NewStableMatching()
	res1 := m.Match(as, bs, c)
	res2 := m.Match(as, bsReversed, c)

	pairs := func(r entity.MatchingResult) map[string]string {
		out := map[string]string{}
		for _, mt := range r.Matches {
			out[mt.EntityA] = mt.EntityB
		}
		return out
	}
	require.Equal(t, pairs(res1), pairs(res2))
	require.Equal(t, "b1", pairs(res1)["a1"])
	require.Equal(t, "b2", pairs(res1)["a2"])
}

func TestStableMatching_AgreesWithOptimalOnDominantDiagonal(t *testing.T) {
	// Each entity's top choice is mutual and strictly better than any cross
	// pairing, so both strategies must land on the diagonal.
	as := []entity.Entity{
		yearsEntity("a1", 10),
		yearsEntity("a2", 50),
		yearsEntity("a3", 90),
	}
	bs := []entity.Entity{
		yearsEntity("b1", 10),
		yearsEntity("b2", 50),
		yearsEntity("b3", 90),
	}
	c := yearsCriteria(t, 0.5)

	stable := NewStableMatching().Match(as, bs, c)
	optimal := NewOptimalAssignment().Match(as, bs, c)

	toPairs := func(r entity.MatchingResult) map[string]string {
		out := map[string]string{}
		for _, mt := range r.Matches {
			out[mt.EntityA] = mt.EntityB
		}
		return out
	}
	require.Equal(t, toPairs(optimal), toPairs(stable))
	require.Equal(t, map[string]string{"a1": "b1", "a2": "b2", "a3": "b3"}, toPairs(stable))
}

func TestStableMatching_Deterministic(t *testing.T) {
	as := []entity.Entity{yearsEntity("a1", 10), yearsEntity("a2", 30), yearsEntity("a3", 45)}
	bs := []entity.Entity{yearsEntity("b1", 25), yearsEntity("b2", 12)}
	c := yearsCriteria(t, 0)

	m := NewStableMatching()
	first := m.Match(as, bs, c)
	second := m.Match(as, bs, c)

	require.Equal(t, len(first.Matches), len(second.Matches))
	for i := range first.Matches {
		require.Equal(t, first.Matches[i].EntityA, second.Matches[i].EntityA)
		require.Equal(t, first.Matches[i].EntityB, second.Matches[i].EntityB)
	}
	require.Equal(t, first.UnmatchedEntities, second.UnmatchedEntities)
}
