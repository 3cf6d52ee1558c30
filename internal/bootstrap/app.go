package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/analyses"
	googleauth "agriboost-backend/internal/auth"
	"agriboost-backend/internal/i18n"
	"agriboost-backend/internal/results"
	"agriboost-backend/internal/services/health"
	"agriboost-backend/internal/session"
	"agriboost-backend/internal/shared/config"
	"agriboost-backend/internal/shared/server"
	"agriboost-backend/internal/shared/storage/db"
	"agriboost-backend/internal/shared/storage/object"
	localstore "agriboost-backend/internal/shared/storage/object/local"
	s3store "agriboost-backend/internal/shared/storage/object/s3"
	"agriboost-backend/internal/tray"
	"agriboost-backend/internal/vision"
	"agriboost-backend/internal/vision/gemini"
)

// App holds shared dependencies so tests can reach into any layer.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Sessions *session.Store
	I18n     *i18n.Bundle
	Vision   vision.Analyzer

	AnalysesRepo analyses.Repo

	TraySvc     *tray.Service
	AnalysisSvc *analyses.Service
	HealthSvc   *health.Service

	TrayHandler     *tray.Handler
	AnalysisHandler *analyses.Handler
	ResultsHandler  *results.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Sessions: session.NewStore(session.DefaultTTL),
		I18n:     bundle,
		Vision:   buildVision(cfg),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Health:          app.HealthSvc,
		TrayHandler:     app.TrayHandler,
		AnalysisHandler: app.AnalysisHandler,
		ResultsHandler:  app.ResultsHandler,
		GoogleAuth:      app.GoogleAuth,
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
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildVision(cfg config.Config) vision.Analyzer {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; crop image analysis disabled")
		return vision.Disabled{}
	}
	return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
}

func buildServices(app *App) error {
	var analysisRepo analyses.Repo
	if app.DB != nil {
		analysisRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		analysisRepo = analyses.NewMemoryRepo()
	}

	traySvc := &tray.Service{
		Store: app.Store,
		Tray:  tray.NewStore(),
	}

	analysisSvc := &analyses.Service{
		Repo:     analysisRepo,
		Store:    app.Store,
		Tray:     traySvc,
		Vision:   app.Vision,
		Sessions: app.Sessions,
	}

	resultsHandler, err := results.NewHandler(app.Sessions, app.I18n, app.Config.UploadRoute)
	if err != nil {
		return err
	}

	app.AnalysesRepo = analysisRepo
	app.TraySvc = traySvc
	app.AnalysisSvc = analysisSvc
	app.HealthSvc = health.NewService(app.DB)
	app.TrayHandler = tray.NewHandler(traySvc)
	app.AnalysisHandler = analyses.NewHandler(analysisSvc)
	app.ResultsHandler = resultsHandler
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
