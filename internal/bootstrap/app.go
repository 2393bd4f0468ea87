package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/applications"
	"leasing-backend/internal/contracts"
	"leasing-backend/internal/documents"
	"leasing-backend/internal/flags"
	"leasing-backend/internal/services/health"
	"leasing-backend/internal/shared/config"
	"leasing-backend/internal/shared/server"
	"leasing-backend/internal/shared/storage/db"
	"leasing-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Flags               *flags.Store
	DocumentsRepo       documents.Repo
	ApplicationsRepo    applications.Repo
	ContractsRepo       contracts.Repo
	DocumentsService    *documents.Service
	ApplicationsService *applications.Service
	ContractsService    *contracts.Service
}

// Build connects storage, loads feature flags and wires services and routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	kv, err := buildFlagKV(ctx, cfg, sqlDB)
	if err != nil {
		return nil, err
	}
	store, err := flags.Load(ctx, flags.Options{Env: cfg.FeatureOverrides, Persist: kv})
	if err != nil {
		return nil, fmt.Errorf("load feature flags: %w", err)
	}

	app := &App{Config: cfg, DB: sqlDB, Flags: store}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		DocumentHandler:    documents.NewHandler(app.DocumentsService),
		ApplicationHandler: applications.NewHandler(app.ApplicationsService),
		ContractHandler:    contracts.NewHandler(app.ContractsService),
		FlagHandler:        flags.NewHandler(store),
		Health:             health.NewService(sqlDB),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildFlagKV(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (flags.KVStore, error) {
	switch cfg.FlagStore {
	case "dynamodb":
		kv, err := flags.NewDynamoKV(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint, cfg.FlagsTable, cfg.FlagsScope)
		if err != nil {
			return nil, fmt.Errorf("flag store dynamodb: %w", err)
		}
		return kv, nil
	case "memory":
		return flags.NewMemoryKV(), nil
	case "postgres":
		if sqlDB == nil {
			return nil, fmt.Errorf("FLAG_STORE=postgres requires a database")
		}
		return &flags.PGKV{DB: sqlDB, Scope: cfg.FlagsScope}, nil
	default:
		if sqlDB != nil {
			return &flags.PGKV{DB: sqlDB, Scope: cfg.FlagsScope}, nil
		}
		return flags.NewMemoryKV(), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.ContractsRepo = &contracts.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.ContractsRepo = contracts.NewMemoryRepo()
	}

	now := func() time.Time { return time.Now().UTC() }

	app.DocumentsService = &documents.Service{Repo: app.DocumentsRepo, Flags: app.Flags, Now: now}
	app.ContractsService = &contracts.Service{Repo: app.ContractsRepo, Flags: app.Flags, Now: now}
	app.ApplicationsService = &applications.Service{
		Repo:  app.ApplicationsRepo,
		Flags: app.Flags,
		Now:   now,
		OnApproved: func(ctx context.Context, a applications.Application) error {
			return app.ContractsService.DraftForApprovedApplication(ctx, a.ID, a.PropertyID)
		},
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
