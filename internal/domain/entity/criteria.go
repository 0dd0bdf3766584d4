package entity

import (
	"errors"
	"fmt"
)

// DefaultNumericScale is the divisor applied to numeric attribute
// differences when a Criteria does not override it.
const DefaultNumericScale = 100.0

var (
	ErrNegativeWeight  = errors.New("criteria weight must be non-negative")
	ErrMinScoreRange   = errors.New("criteria min_score must be in [0,1]")
	ErrMaxMatchesRange = errors.New("criteria max_matches must be positive")
)

// CriteriaParams is the caller-facing shape before normalization.
type CriteriaParams struct {
	Weights            map[string]float64
	RequiredAttributes []string
	OptionalAttributes []string
	MinScore           float64
	MaxMatches         int
	NumericScale       float64
}

// Criteria is a normalized matching configuration. Construct it with
// NewCriteria: weights always sum to 1.0 afterwards, unless the supplied
// weights summed to 0, in which case they stay all-zero and only the
// required-attribute gate can force a zero score.
type Criteria struct {
	Weights            map[string]float64
	RequiredAttributes []string
	OptionalAttributes []string
	MinScore           float64
	MaxMatches         int
	NumericScale       float64
}

func NewCriteria(p CriteriaParams) (Criteria, error) {
	total := 0.0
	for name, w := range p.Weights {
		if w < 0 {
			return Criteria{}, fmt.Errorf("%w: %s=%v", ErrNegativeWeight, name, w)
		}
		total += w
	}
	if p.MinScore < 0 || p.MinScore > 1 {
		return Criteria{}, fmt.Errorf("%w: got %v", ErrMinScoreRange, p.MinScore)
	}
	if p.MaxMatches < 0 {
		return Criteria{}, fmt.Errorf("%w: got %d", ErrMaxMatchesRange, p.MaxMatches)
	}

	weights := make(map[string]float64, len(p.Weights))
	for name, w := range p.Weights {
		if total > 0 {
			weights[name] = w / total
		} else {
			weights[name] = 0
		}
	}

	required := append([]string{}, p.RequiredAttributes...)
	optional := append([]string{}, p.OptionalAttributes...)

	maxMatches := p.MaxMatches
	if maxMatches == 0 {
		maxMatches = 1
	}
	scale := p.NumericScale
	if scale <= 0 {
		scale = DefaultNumericScale
	}

	return Criteria{
		Weights:            weights,
		RequiredAttributes: required,
		OptionalAttributes: optional,
		MinScore:           p.MinScore,
		MaxMatches:         maxMatches,
		NumericScale:       scale,
	}, nil
}

// WeightedScore folds per-attribute scores with the normalized weights.
func (c Criteria) WeightedScore(scores map[string]float64) float64 {
	total := 0.0
	for attr, s := range scores {
		total += c.Weights[attr] * s
	}
	return total
}
