package dto

import (
	"entity-match/internal/domain/entity"
)

// EntityPayload mirrors the wire shape of one matchable entity. Attribute
// values are native JSON: numbers, strings, string arrays, or null.
type EntityPayload struct {
	ID          string                      `json:"id"`
	EntityType  string                      `json:"entity_type"`
	Attributes  map[string]entity.AttrValue `json:"attributes"`
	Preferences []string                    `json:"preferences"`
	Constraints map[string]entity.AttrValue `json:"constraints"`
}

func (p EntityPayload) ToEntity() (entity.Entity, error) {
	typ, err := entity.ParseEntityType(p.EntityType)
	if err != nil {
		return entity.Entity{}, err
	}
	return entity.NewEntity(p.ID, typ, p.Attributes, p.Preferences, p.Constraints), nil
}

func FromEntity(e entity.Entity) EntityPayload {
	return EntityPayload{
		ID:          e.ID,
		EntityType:  e.Type.String(),
		Attributes:  e.Attributes,
		Preferences: e.Preferences,
		Constraints: e.Constraints,
	}
}

type CriteriaPayload struct {
	Weights            map[string]float64 `json:"weights"`
	RequiredAttributes []string           `json:"required_attributes"`
	OptionalAttributes []string           `json:"optional_attributes"`
	MinScore           float64            `json:"min_score"`
	MaxMatches         int                `json:"max_matches"`
	NumericScale       float64            `json:"numeric_scale"`
}

func (p CriteriaPayload) ToCriteria() (entity.Criteria, error) {
	return entity.NewCriteria(entity.CriteriaParams{
		Weights:            p.Weights,
		RequiredAttributes: p.RequiredAttributes,
		OptionalAttributes: p.OptionalAttributes,
		MinScore:           p.MinScore,
		MaxMatches:         p.MaxMatches,
		NumericScale:       p.NumericScale,
	})
}

// MatchRequest is the body of POST /api/v1/match. Each side is either
// inline entities or a stored pool name; inline wins when both are set.
type MatchRequest struct {
	EntitiesA []EntityPayload `json:"entities_a"`
	EntitiesB []EntityPayload `json:"entities_b"`
	PoolA     string          `json:"pool_a"`
	PoolB     string          `json:"pool_b"`
	Criteria  CriteriaPayload `json:"criteria"`
	Algorithm string          `json:"algorithm"`
}
