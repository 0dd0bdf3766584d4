package usecase

import (
	"context"
	"log"
	"strings"

	"entity-match/internal/domain/entity"
	"entity-match/internal/repository"
)

type PoolUsecase interface {
	ReplacePool(ctx context.Context, name string, entities []entity.Entity) error
	GetPool(ctx context.Context, name string) ([]entity.Entity, error)
}

type Pools struct {
	repo   repository.EntityPoolRepository
	logger *log.Logger
}

func NewPoolUsecase(repo repository.EntityPoolRepository, logger *log.Logger) *Pools {
	return &Pools{repo: repo, logger: logger}
}

func (u *Pools) ReplacePool(ctx context.Context, name string, entities []entity.Entity) error {
	if u.repo == nil {
		return ErrPoolStoreDisabled
	}
	name = strings.TrimSpace(name)
	if name == "" || len(entities) == 0 {
		return ErrInvalidInput
	}
	if err := checkUniqueIDs(entities); err != nil {
		return err
	}

	if err := u.repo.ReplacePool(ctx, name, entities); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Pools] replace failed | pool=%s error=%v", name, err)
		}
		return ErrInternal
	}
	return nil
}

func (u *Pools) GetPool(ctx context.Context, name string) ([]entity.Entity, error) {
	if u.repo == nil {
		return nil, ErrPoolStoreDisabled
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	entities, err := u.repo.GetPool(ctx, name)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Pools] load failed | pool=%s error=%v", name, err)
		}
		return nil, ErrInternal
	}
	if len(entities) == 0 {
		return nil, ErrPoolNotFound
	}
	return entities, nil
}
