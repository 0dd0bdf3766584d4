package entity

import (
	"fmt"
	"strings"
	"time"
)

// EntityType is the closed set of categories a matchable entity can carry.
type EntityType string

const (
	TypeUser      EntityType = "user"
	TypeItem      EntityType = "item"
	TypeJob       EntityType = "job"
	TypeCandidate EntityType = "candidate"
	TypeMentor    EntityType = "mentor"
	TypeMentee    EntityType = "mentee"
)

var entityTypes = map[EntityType]bool{
	TypeUser:      true,
	TypeItem:      true,
	TypeJob:       true,
	TypeCandidate: true,
	TypeMentor:    true,
	TypeMentee:    true,
}

// ParseEntityType maps a wire tag onto the closed enumeration.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if !entityTypes[t] {
		return "", fmt.Errorf("unknown entity type: %q", s)
	}
	return t, nil
}

func (t EntityType) Valid() bool {
	return entityTypes[t]
}

func (t EntityType) String() string {
	return string(t)
}

// Entity is one matchable item. IDs are expected to be unique within each
// side of a match call; containers are always non-nil after NewEntity.
type Entity struct {
	ID          string
	Type        EntityType
	Attributes  map[string]AttrValue
	Preferences []string
	Constraints map[string]AttrValue
}

func NewEntity(id string, typ EntityType, attrs map[string]AttrValue, prefs []string, constraints map[string]AttrValue) Entity {
	if attrs == nil {
		attrs = map[string]AttrValue{}
	}
	if prefs == nil {
		prefs = []string{}
	}
	if constraints == nil {
		constraints = map[string]AttrValue{}
	}
	return Entity{
		ID:          id,
		Type:        typ,
		Attributes:  attrs,
		Preferences: prefs,
		Constraints: constraints,
	}
}

// Attribute returns the named attribute and whether it is present.
func (e Entity) Attribute(name string) (AttrValue, bool) {
	v, ok := e.Attributes[name]
	if !ok || v.Kind() == KindAbsent {
		return AttrValue{}, false
	}
	return v, true
}

func (e Entity) HasPreference(id string) bool {
	for _, p := range e.Preferences {
		if p == id {
			return true
		}
	}
	return false
}

// Match is one produced pairing. Immutable once built.
type Match struct {
	EntityA   string
	EntityB   string
	Score     float64
	Details   map[string]any
	MatchedAt time.Time
}

// Statistics is the derived summary view of a MatchingResult.
type Statistics struct {
	TotalMatches   int     `json:"total_matches"`
	UnmatchedCount int     `json:"unmatched_count"`
	AverageScore   float64 `json:"average_score"`
	TotalScore     float64 `json:"total_score"`
	ExecutionTime  float64 `json:"execution_time_seconds"`
}

// MatchingResult is produced once per call and never mutated afterwards.
type MatchingResult struct {
	Matches           []Match
	UnmatchedEntities []string
	TotalScore        float64
	ExecutionTime     time.Duration
}

// MatchFor returns the match a given entity participates in, if any.
func (r MatchingResult) MatchFor(id string) (Match, bool) {
	for _, m := range r.Matches {
		if m.EntityA == id || m.EntityB == id {
			return m, true
		}
	}
	return Match{}, false
}

func (r MatchingResult) Statistics() Statistics {
	avg := 0.0
	if len(r.Matches) > 0 {
		sum := 0.0
		for _, m := range r.Matches {
			sum += m.Score
		}
		avg = sum / float64(len(r.Matches))
	}
	return Statistics{
		TotalMatches:   len(r.Matches),
		UnmatchedCount: len(r.UnmatchedEntities),
		AverageScore:   avg,
		TotalScore:     r.TotalScore,
		ExecutionTime:  r.ExecutionTime.Seconds(),
	}
}
