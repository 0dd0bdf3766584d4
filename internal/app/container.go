package app

import (
	"context"
	"log"
	"time"

	"entity-match/internal/config"
	"entity-match/internal/database"
	dbpostgres "entity-match/internal/database/postgres"
	"entity-match/internal/infrastructure/cache"
	"entity-match/internal/repository"
	"entity-match/internal/ws"
)

// Container holds the long-lived collaborators of the process. DB and Cache
// stay nil when the corresponding backing service is not configured, and the
// rest of the app degrades to in-request-only behavior.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := repository.NewPostgresEntityPoolRepository(db).EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		c.DB = db
		logger.Printf("Container | database=connected host=%s", cfg.Database.DBHost)
	} else {
		logger.Printf("Container | database=disabled")
	}

	if cfg.Cache.Enabled() {
		c.Cache = cache.NewRedis(cfg.Cache, logger)
	} else {
		logger.Printf("Container | cache=disabled")
	}

	c.Hub = ws.NewHub(logger)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
