package handler

import (
	"context"
	"time"

	"entity-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache pinger
}

// NewHealthHandler reports liveness plus the state of the optional backing
// services; either pinger may be nil when the service runs without it.
func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	type healthData struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		Cache    string `json:"cache"`
	}

	data := healthData{Status: "healthy", Database: "disabled", Cache: "disabled"}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			data.Database = "error"
		} else {
			data.Database = "ok"
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			data.Cache = "error"
		} else {
			data.Cache = "ok"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
