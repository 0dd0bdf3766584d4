package routes

import (
	"entity-match/internal/delivery/http/handler"
	"entity-match/internal/repository"
	"entity-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, deps Deps) {
	var poolRepo repository.EntityPoolRepository
	if deps.DB != nil {
		poolRepo = repository.NewPostgresEntityPoolRepository(deps.DB)
	}

	matchUC := usecase.NewMatchingUsecase(poolRepo, deps.Cache, deps.CacheTTL, deps.Logger)
	poolUC := usecase.NewPoolUsecase(poolRepo, deps.Logger)

	handler.NewMatchHandler(matchUC).RegisterRoutes(r)
	handler.NewPoolHandler(poolUC).RegisterRoutes(r)
}
