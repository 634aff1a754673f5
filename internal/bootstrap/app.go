// Package bootstrap wires repositories, services and handlers into a
// runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ecosystem-backend/internal/integrations"
	"resume-ecosystem-backend/internal/integrations/platform"
	"resume-ecosystem-backend/internal/records"
	"resume-ecosystem-backend/internal/resumes"
	"resume-ecosystem-backend/internal/scoring"
	"resume-ecosystem-backend/internal/shared/config"
	"resume-ecosystem-backend/internal/shared/server"
	"resume-ecosystem-backend/internal/shared/storage/db"
	"resume-ecosystem-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo        users.Repo
	RecordsRepo      records.Repo
	ResumesRepo      resumes.Repo
	IntegrationsRepo integrations.Repo

	UsersService       *users.Service
	RecordsService     *records.Service
	ResumesService     *resumes.Service
	ScoringService     *scoring.Service
	IntegrationService *integrations.Service
}

// Build prepares dependencies and the router. With no database configured
// in a dev-like environment, everything runs on in-memory repositories.
func Build(cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.RecordsRepo = &records.PGRepo{DB: sqlDB}
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
		app.IntegrationsRepo = &integrations.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.RecordsRepo = records.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.IntegrationsRepo = integrations.NewMemoryRepo()
	}

	app.ScoringService = scoring.NewService(app.RecordsRepo, app.UsersRepo)
	app.UsersService = users.NewService(app.UsersRepo, cfg.JWTTTL, app.RecordsRepo, app.ResumesRepo, app.IntegrationsRepo)
	app.ResumesService = resumes.NewService(app.ResumesRepo, app.RecordsRepo, app.UsersService)
	app.RecordsService = records.NewService(app.RecordsRepo, app.ScoringService, app.ResumesService)

	registry := platform.NewRegistry(
		platform.NewGitHubAdapter(cfg.GitHubAPIBase),
		platform.NewLinkedInAdapter(cfg.LinkedInAPIBase),
		platform.NewCourseraAdapter(cfg.CourseraAPIBase),
		platform.NewUdemyAdapter(),
		platform.NewDevfolioAdapter(cfg.DevfolioAPIBase),
		platform.NewHackerRankAdapter(cfg.HackerRankAPIBase),
	)
	app.IntegrationService = integrations.NewService(
		app.IntegrationsRepo,
		registry,
		app.RecordsRepo,
		app.ScoringService,
		app.ResumesService,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		UsersHandler:       users.NewHandler(app.UsersService, cfg.Env),
		RecordsHandler:     records.NewHandler(app.RecordsService),
		ResumesHandler:     resumes.NewHandler(app.ResumesService),
		IntegrationHandler: integrations.NewHandler(app.IntegrationService, cfg.WebhookSecret),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
