package matching

import (
	"math"
	"strings"

	"entity-match/internal/domain/entity"
)

// Score computes the bounded compatibility of two entities under a criteria
// configuration. The result is in [0,1] and no threshold is applied here:
// the optimal matcher thresholds at matrix-fill time, the stable matcher
// only after convergence.
//
// Required attributes are an all-or-nothing gate. A name listed in
// RequiredAttributes that is absent on either side zeroes the pair outright,
// regardless of weights.
func Score(a, b entity.Entity, c entity.Criteria) float64 {
	for _, req := range c.RequiredAttributes {
		if _, ok := a.Attribute(req); !ok {
			return 0
		}
		if _, ok := b.Attribute(req); !ok {
			return 0
		}
	}

	scores := make(map[string]float64, len(c.Weights))
	for attr := range c.Weights {
		va, okA := a.Attribute(attr)
		vb, okB := b.Attribute(attr)
		if !okA || !okB {
			scores[attr] = 0
			continue
		}
		scores[attr] = compareAttr(va, vb, c.NumericScale)
	}

	return c.WeightedScore(scores)
}

// compareAttr scores one attribute pair in [0,1]. Mismatched kinds fall back
// to strict equality.
func compareAttr(a, b entity.AttrValue, scale float64) float64 {
	switch {
	case a.Kind() == entity.KindNumber && b.Kind() == entity.KindNumber:
		diff := math.Abs(a.Number() - b.Number())
		return math.Max(0, 1-diff/scale)

	case a.Kind() == entity.KindText && b.Kind() == entity.KindText:
		la := strings.ToLower(a.Text())
		lb := strings.ToLower(b.Text())
		if la == lb {
			return 1
		}
		if strings.Contains(la, lb) || strings.Contains(lb, la) {
			return 0.5
		}
		return 0

	case a.Kind() == entity.KindTextList && b.Kind() == entity.KindTextList:
		return jaccard(a.LowerSet(), b.LowerSet())

	default:
		if a.Equal(b) {
			return 1
		}
		return 0
	}
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for it := range a {
		if b[it] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
