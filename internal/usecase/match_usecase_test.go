package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"entity-match/internal/domain/entity"
)

type mockPoolRepo struct {
	pools map[string][]entity.Entity
	err   error

	replaced map[string][]entity.Entity
}

func (m *mockPoolRepo) EnsureSchema(context.Context) error { return nil }

func (m *mockPoolRepo) ReplacePool(_ context.Context, name string, entities []entity.Entity) error {
	if m.err != nil {
		return m.err
	}
	if m.replaced == nil {
		m.replaced = map[string][]entity.Entity{}
	}
	m.replaced[name] = entities
	return nil
}

func (m *mockPoolRepo) GetPool(_ context.Context, name string) ([]entity.Entity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pools[name], nil
}

type mockCache struct {
	store map[string][]byte
	sets  int
	gets  int
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	if m.store == nil {
		m.store = map[string][]byte{}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func yearsEntity(id string, years float64) entity.Entity {
	return entity.NewEntity(id, entity.TypeUser, map[string]entity.AttrValue{
		"experience_years": entity.Number(years),
	}, nil, nil)
}

func yearsCriteria(t *testing.T) entity.Criteria {
	t.Helper()
	c, err := entity.NewCriteria(entity.CriteriaParams{
		Weights:  map[string]float64{"experience_years": 1},
		MinScore: 0.5,
	})
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	return c
}

func TestMatchingUsecase_UnknownAlgorithm(t *testing.T) {
	uc := NewMatchingUsecase(nil, nil, 0, nil)
	_, err := uc.MatchEntities(context.Background(), MatchRequest{Algorithm: "simulated-annealing"})
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestMatchingUsecase_InlineMatch(t *testing.T) {
	uc := NewMatchingUsecase(nil, nil, 0, nil)
	out, err := uc.MatchEntities(context.Background(), MatchRequest{
		EntitiesA: []entity.Entity{yearsEntity("X", 5)},
		EntitiesB: []entity.Entity{yearsEntity("Y", 5)},
		Criteria:  yearsCriteria(t),
		Algorithm: "optimal-assignment",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CacheHit {
		t.Fatalf("expected CacheHit=false")
	}
	if out.RunID == "" {
		t.Fatalf("expected a run id")
	}
	if len(out.Result.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(out.Result.Matches))
	}
	if out.Result.Matches[0].EntityA != "X" || out.Result.Matches[0].EntityB != "Y" {
		t.Fatalf("unexpected pairing: %+v", out.Result.Matches[0])
	}
}

func TestMatchingUsecase_DuplicateIDsRejected(t *testing.T) {
	uc := NewMatchingUsecase(nil, nil, 0, nil)
	_, err := uc.MatchEntities(context.Background(), MatchRequest{
		EntitiesA: []entity.Entity{yearsEntity("X", 5), yearsEntity("X", 6)},
		EntitiesB: []entity.Entity{yearsEntity("Y", 5)},
		Criteria:  yearsCriteria(t),
		Algorithm: "stable-matching",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchingUsecase_PoolSideResolution(t *testing.T) {
	repo := &mockPoolRepo{pools: map[string][]entity.Entity{
		"mentors": {yearsEntity("m1", 5)},
	}}
	uc := NewMatchingUsecase(repo, nil, 0, nil)

	out, err := uc.MatchEntities(context.Background(), MatchRequest{
		EntitiesA: []entity.Entity{yearsEntity("X", 5)},
		PoolB:     "mentors",
		Criteria:  yearsCriteria(t),
		Algorithm: "stable-matching",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Result.Matches) != 1 || out.Result.Matches[0].EntityB != "m1" {
		t.Fatalf("expected X-m1 match, got %+v", out.Result.Matches)
	}
}

func TestMatchingUsecase_PoolStoreDisabled(t *testing.T) {
	uc := NewMatchingUsecase(nil, nil, 0, nil)
	_, err := uc.MatchEntities(context.Background(), MatchRequest{
		PoolA:     "mentors",
		EntitiesB: []entity.Entity{yearsEntity("Y", 5)},
		Criteria:  yearsCriteria(t),
		Algorithm: "optimal-assignment",
	})
	if !errors.Is(err, ErrPoolStoreDisabled) {
		t.Fatalf("expected ErrPoolStoreDisabled, got %v", err)
	}
}

func TestMatchingUsecase_PoolNotFound(t *testing.T) {
	repo := &mockPoolRepo{pools: map[string][]entity.Entity{}}
	uc := NewMatchingUsecase(repo, nil, 0, nil)
	_, err := uc.MatchEntities(context.Background(), MatchRequest{
		PoolA:     "missing",
		EntitiesB: []entity.Entity{yearsEntity("Y", 5)},
		Criteria:  yearsCriteria(t),
		Algorithm: "optimal-assignment",
	})
	if !errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestMatchingUsecase_CacheRoundTrip(t *testing.T) {
	cache := &mockCache{}
	uc := NewMatchingUsecase(nil, cache, time.Minute, nil)
	req := MatchRequest{
		EntitiesA: []entity.Entity{yearsEntity("X", 5)},
		EntitiesB: []entity.Entity{yearsEntity("Y", 5)},
		Criteria:  yearsCriteria(t),
		Algorithm: "optimal-assignment",
	}

	first, err := uc.MatchEntities(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.CacheHit {
		t.Fatalf("first call must be a miss")
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache set, got %d", cache.sets)
	}

	second, err := uc.MatchEntities(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !second.CacheHit {
		t.Fatalf("second call must be a hit")
	}
	if len(second.Result.Matches) != 1 || second.Result.Matches[0].EntityA != "X" {
		t.Fatalf("cached result mismatch: %+v", second.Result)
	}
	if second.Result.TotalScore != first.Result.TotalScore {
		t.Fatalf("cached total score mismatch")
	}
}
