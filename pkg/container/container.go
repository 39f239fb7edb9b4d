package container

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"shopping-backend/internal/config"
	infraCache "shopping-backend/internal/infrastructure/cache"
	"shopping-backend/internal/infrastructure/database"

	astroHandler "shopping-backend/internal/domains/astro/handler"
	astroService "shopping-backend/internal/domains/astro/service"
	jokeHandler "shopping-backend/internal/domains/joke/handler"
	jokeService "shopping-backend/internal/domains/joke/service"
	officerHandler "shopping-backend/internal/domains/officer/handler"
	officerRepo "shopping-backend/internal/domains/officer/repository"
	officerService "shopping-backend/internal/domains/officer/service"
	productHandler "shopping-backend/internal/domains/product/handler"
	productRepo "shopping-backend/internal/domains/product/repository"
	productService "shopping-backend/internal/domains/product/service"
)

// Container holds the whole dependency graph, assembled by explicit
// constructor injection in dependency order: config, infrastructure,
// repositories, services, handlers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB     *database.PostgresDB
	SQLite *sql.DB
	Cache  infraCache.Cache

	// Repositories
	ProductRepo productRepo.RepositoryInterface
	OfficerRepo officerRepo.RepositoryInterface

	// Services
	ProductService productService.ServiceInterface
	OfficerService officerService.ServiceInterface
	AstroService   astroService.ServiceInterface
	JokeService    jokeService.ServiceInterface

	// Handlers
	ProductHandler *productHandler.Handler
	OfficerHandler *officerHandler.Handler
	AstroHandler   *astroHandler.Handler
	JokeHandler    *jokeHandler.Handler
}

// NewContainer initializes everything the API needs. Failure of a required
// dependency aborts startup; the cache is optional and only degrades the
// outbound clients to uncached calls.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbCfg)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, err
	}

	if cfg.Officers.Backend == officerRepo.BackendSQLite {
		sqliteDB, err := database.OpenSQLite(ctx, cfg.Officers.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.SQLite = sqliteDB
	}

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, outbound clients run uncached")
	} else {
		c.Cache = redisClient
	}

	// Repositories
	c.ProductRepo = productRepo.NewRepository(c.DB.Pool)

	c.OfficerRepo, err = officerRepo.NewRepository(cfg.Officers.Backend, c.DB.Pool, c.SQLite)
	if err != nil {
		return nil, err
	}

	// Services
	c.ProductService = productService.NewService(c.ProductRepo)
	c.OfficerService = officerService.NewService(c.OfficerRepo)

	httpClient := &http.Client{Timeout: cfg.Clients.Timeout}
	c.AstroService = astroService.NewService(cfg.Clients.AstroURL, httpClient, c.Cache, cfg.Clients.CacheTTL)
	c.JokeService = jokeService.NewService(cfg.Clients.JokeURL, httpClient, c.Cache, cfg.Clients.CacheTTL)

	// Handlers
	c.ProductHandler = productHandler.NewHandler(c.ProductService)
	c.OfficerHandler = officerHandler.NewHandler(c.OfficerService)
	c.AstroHandler = astroHandler.NewHandler(c.AstroService)
	c.JokeHandler = jokeHandler.NewHandler(c.JokeService)

	log.Info().
		Str("officers_backend", cfg.Officers.Backend).
		Msg("Container initialized")

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}

	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close sqlite database")
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}
}

// Healthy pings the required backends; used by the health endpoint.
func (c *Container) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return c.DB.Ping(ctx)
}
