package routes

import (
	"log"
	"time"

	"entity-match/internal/database"
	"entity-match/internal/delivery/http/handler"
	"entity-match/internal/usecase"
	"entity-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything route registration needs; DB and Cache may be nil
// when the optional backing services are not configured.
type Deps struct {
	DB       database.DB
	Cache    usecase.ResultCache
	CacheTTL time.Duration
	Hub      *ws.Hub
	Health   *handler.HealthHandler
	Logger   *log.Logger
}

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.deps.Health != nil {
		r.deps.Health.RegisterRoutes(app)
	}

	if r.deps.Hub != nil {
		wsHandler := ws.NewHandler(r.deps.Hub, r.deps.Logger)
		app.Get("/ws/matches", wsHandler.HandleMatchesWS)
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
