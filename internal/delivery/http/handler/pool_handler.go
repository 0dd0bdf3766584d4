package handler

import (
	"errors"

	"entity-match/internal/delivery/http/dto"
	"entity-match/internal/delivery/http/middleware"
	"entity-match/internal/pkg/response"
	"entity-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PoolHandler struct {
	uc usecase.PoolUsecase
}

func NewPoolHandler(uc usecase.PoolUsecase) *PoolHandler {
	return &PoolHandler{uc: uc}
}

func (h *PoolHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/pools")
	grp.Put("/:name", h.Replace)
	grp.Get("/:name", h.Get)
}

func (h *PoolHandler) Replace(c fiber.Ctx) error {
	var req dto.PoolReplaceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entities, err := toEntities(req.Entities)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid entities", nil, err)
	}

	name := c.Params("name")
	if err := h.uc.ReplacePool(c.Context(), name, entities); err != nil {
		return mapPoolUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PoolResponse{
		Name:     name,
		Entities: req.Entities,
	})
}

func (h *PoolHandler) Get(c fiber.Ctx) error {
	name := c.Params("name")

	entities, err := h.uc.GetPool(c.Context(), name)
	if err != nil {
		return mapPoolUsecaseError(err)
	}

	payloads := make([]dto.EntityPayload, 0, len(entities))
	for _, e := range entities {
		payloads = append(payloads, dto.FromEntity(e))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PoolResponse{
		Name:     name,
		Entities: payloads,
	})
}

func mapPoolUsecaseError(err error) error {
	switch {
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
