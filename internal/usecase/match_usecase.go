package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"entity-match/internal/domain/entity"
	"entity-match/internal/domain/matching"
	"entity-match/internal/repository"
	"entity-match/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrUnknownAlgorithm  = errors.New("unknown algorithm")
	ErrInvalidInput      = errors.New("invalid input")
	ErrPoolNotFound      = errors.New("entity pool not found")
	ErrPoolStoreDisabled = errors.New("entity pool store disabled")
	ErrInternal          = errors.New("internal error")
)

// MatchRequest carries one matching call. Either side may be inline entities
// or a pool reference; inline wins when both are present.
type MatchRequest struct {
	EntitiesA []entity.Entity
	EntitiesB []entity.Entity
	PoolA     string
	PoolB     string
	Criteria  entity.Criteria
	Algorithm string
}

type MatchOutcome struct {
	Result    entity.MatchingResult
	Algorithm string
	RunID     string
	CacheHit  bool
}

type MatchingUsecase interface {
	MatchEntities(ctx context.Context, req MatchRequest) (MatchOutcome, error)
}

type Matching struct {
	pools    repository.EntityPoolRepository
	cache    ResultCache
	cacheTTL time.Duration
	logger   *log.Logger
}

// NewMatchingUsecase wires the engine with its optional collaborators; pools
// and cache may both be nil.
func NewMatchingUsecase(pools repository.EntityPoolRepository, cache ResultCache, cacheTTL time.Duration, logger *log.Logger) *Matching {
	return &Matching{pools: pools, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (u *Matching) MatchEntities(ctx context.Context, req MatchRequest) (MatchOutcome, error) {
	matcher, err := matching.ForAlgorithm(req.Algorithm)
	if err != nil {
		return MatchOutcome{}, ErrUnknownAlgorithm
	}

	entitiesA, err := u.resolveSide(ctx, req.EntitiesA, req.PoolA)
	if err != nil {
		return MatchOutcome{}, err
	}
	entitiesB, err := u.resolveSide(ctx, req.EntitiesB, req.PoolB)
	if err != nil {
		return MatchOutcome{}, err
	}

	if err := checkUniqueIDs(entitiesA); err != nil {
		return MatchOutcome{}, err
	}
	if err := checkUniqueIDs(entitiesB); err != nil {
		return MatchOutcome{}, err
	}

	runID := uuid.NewString()
	key := matchResultCacheKey(entitiesA, entitiesB, req.Criteria, req.Algorithm)

	if u.cache != nil {
		var cached entity.MatchingResult
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Match] Cache HIT: %s run=%s", key, runID)
			}
			return MatchOutcome{Result: cached, Algorithm: req.Algorithm, RunID: runID, CacheHit: true}, nil
		}
		if u.logger != nil {
			u.logger.Printf("[Match] Cache MISS: %s run=%s", key, runID)
		}
	}

	result := matcher.Match(entitiesA, entitiesB, req.Criteria)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, result, u.cacheTTL); err == nil && u.logger != nil {
			u.logger.Printf("[Match] Cache SET: %s", key)
		}
	}

	st := result.Statistics()
	if u.logger != nil {
		u.logger.Printf("[Match] run=%s algorithm=%s matches=%d unmatched=%d total_score=%.4f",
			runID, req.Algorithm, st.TotalMatches, st.UnmatchedCount, st.TotalScore)
	}
	ws.NotifyMatchCompleted(req.Algorithm, st.TotalMatches, st.UnmatchedCount, st.TotalScore)

	return MatchOutcome{Result: result, Algorithm: req.Algorithm, RunID: runID}, nil
}

func (u *Matching) resolveSide(ctx context.Context, inline []entity.Entity, pool string) ([]entity.Entity, error) {
	if len(inline) > 0 || pool == "" {
		return inline, nil
	}
	if u.pools == nil {
		return nil, ErrPoolStoreDisabled
	}
	entities, err := u.pools.GetPool(ctx, pool)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Match] pool load failed | pool=%s error=%v", pool, err)
		}
		return nil, ErrInternal
	}
	if len(entities) == 0 {
		return nil, ErrPoolNotFound
	}
	return entities, nil
}

func checkUniqueIDs(entities []entity.Entity) error {
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if e.ID == "" || seen[e.ID] {
			return ErrInvalidInput
		}
		seen[e.ID] = true
	}
	return nil
}
