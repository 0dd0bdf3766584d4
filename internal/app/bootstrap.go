package app

import (
	"context"
	"fmt"
	"strings"

	"entity-match/internal/config"
	"entity-match/internal/delivery/http/handler"
	"entity-match/internal/delivery/http/middleware"
	"entity-match/internal/delivery/http/routes"
	"entity-match/internal/usecase"
	"entity-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

type pinger interface {
	Ping(ctx context.Context) error
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the websocket hub, and returns the
// assembled app together with a cleanup function for process shutdown.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()
	ws.SetDefaultHub(c.Hub)

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	var dbPinger, cachePinger pinger
	if c.DB != nil {
		dbPinger = c.DB
	}
	var resultCache usecase.ResultCache
	if c.Cache != nil {
		cachePinger = c.Cache
		resultCache = c.Cache
	}

	registry := routes.NewRegistry(routes.Deps{
		DB:       c.DB,
		Cache:    resultCache,
		CacheTTL: c.Config.Cache.TTL,
		Hub:      c.Hub,
		Health:   handler.NewHealthHandler(dbPinger, cachePinger),
		Logger:   c.Logger,
	})
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
