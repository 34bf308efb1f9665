package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"detector-backend/internal/cache"
	"detector-backend/internal/detect"
	"detector-backend/internal/history"
	"detector-backend/internal/patterns"
	"detector-backend/internal/reasoning"
	"detector-backend/internal/search"
	"detector-backend/internal/services/health"
	"detector-backend/internal/shared/config"
	"detector-backend/internal/shared/server"
	"detector-backend/internal/shared/storage/db"
)

// App holds shared dependencies wired for the API server.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Cache          cache.Cache
	HistoryRepo    history.Repo
	HistoryService *history.Service
	DetectService  *detect.Service
	DetectHandler  *detect.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cacheBackend, err := buildCache(cfg)
	if err != nil {
		return nil, err
	}

	tunables := buildTunables(cfg)

	var historyRepo history.Repo
	if sqlDB != nil {
		historyRepo = &history.PGRepo{DB: sqlDB}
	} else {
		historyRepo = history.NewMemoryRepo()
	}
	historySvc := &history.Service{Repo: historyRepo}

	detectSvc := &detect.Service{
		Reasoner: buildReasoner(cfg),
		Patterns: buildPatterns(cfg),
		Searcher: buildSearcher(cfg),
		Cache:    cacheBackend,
		History:  historySvc,
		Tunables: tunables,
	}
	detectHandler := detect.NewHandler(detectSvc, historySvc)

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		Cache:          cacheBackend,
		HistoryRepo:    historyRepo,
		HistoryService: historySvc,
		DetectService:  detectSvc,
		DetectHandler:  detectHandler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		DetectHandler: detectHandler,
		Health:        health.NewService(),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory history")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory history: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory history: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildCache(cfg config.Config) (cache.Cache, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return cache.NewMemory(), nil
	}
	redisCache, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis unavailable; using in-memory cache: %v", err)
			return cache.NewMemory(), nil
		}
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return redisCache, nil
}

func buildTunables(cfg config.Config) detect.Tunables {
	if strings.TrimSpace(cfg.TunablesFile) == "" {
		return detect.DefaultTunables()
	}
	tunables, err := detect.LoadTunables(cfg.TunablesFile)
	if err != nil {
		log.Printf("bootstrap: tunables file %q not loaded; using defaults: %v", cfg.TunablesFile, err)
		return detect.DefaultTunables()
	}
	return tunables
}

func buildReasoner(cfg config.Config) reasoning.Client {
	if strings.TrimSpace(cfg.ReasoningAPIKey) == "" {
		log.Printf("bootstrap: no reasoning API key; heuristic classifier will substitute")
		return nil
	}
	client, err := reasoning.NewOpenAIClient(cfg.ReasoningAPIKey, cfg.ReasoningModel, cfg.ReasoningBaseURL)
	if err != nil {
		log.Printf("bootstrap: reasoning client not built; heuristic classifier will substitute: %v", err)
		return nil
	}
	return reasoning.WithRetry(client)
}

func buildPatterns(cfg config.Config) patterns.Client {
	if strings.TrimSpace(cfg.PatternsEndpoint) == "" {
		log.Printf("bootstrap: no patterns endpoint; pattern stage disabled")
		return nil
	}
	return patterns.NewHTTPClient(cfg.PatternsEndpoint, cfg.PatternsAPIKey)
}

func buildSearcher(cfg config.Config) search.Client {
	if strings.TrimSpace(cfg.SearchAPIKey) == "" || strings.TrimSpace(cfg.SearchEngineID) == "" {
		log.Printf("bootstrap: search credentials missing; web-search stage disabled")
		return nil
	}
	return search.NewHTTPClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.SearchEngineID)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
