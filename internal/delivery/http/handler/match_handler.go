package handler

import (
	"errors"

	"entity-match/internal/delivery/http/dto"
	"entity-match/internal/delivery/http/middleware"
	"entity-match/internal/domain/entity"
	"entity-match/internal/pkg/response"
	"entity-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Match)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entitiesA, err := toEntities(req.EntitiesA)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid entities_a", nil, err)
	}
	entitiesB, err := toEntities(req.EntitiesB)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid entities_b", nil, err)
	}
	criteria, err := req.Criteria.ToCriteria()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid criteria", nil, err)
	}

	out, err := h.uc.MatchEntities(c.Context(), usecase.MatchRequest{
		EntitiesA: entitiesA,
		EntitiesB: entitiesB,
		PoolA:     req.PoolA,
		PoolB:     req.PoolB,
		Criteria:  criteria,
		Algorithm: req.Algorithm,
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	resp := dto.FromMatchingResult(out.Result, out.CacheHit)
	resp.RunID = out.RunID
	return response.Success(c, fiber.StatusOK, response.MessageOK, resp)
}

func toEntities(payloads []dto.EntityPayload) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(payloads))
	for _, p := range payloads {
		e, err := p.ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownAlgorithm):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown algorithm", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrPoolNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Entity pool not found", nil, err)
	case errors.Is(err, usecase.ErrPoolStoreDisabled):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Entity pool store disabled", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
