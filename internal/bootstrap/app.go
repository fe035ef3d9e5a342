package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/coverletters"
	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/llm/gemini"
	"coverletter-backend/internal/llm/ollama"
	openai "coverletter-backend/internal/llm/openai"
	"coverletter-backend/internal/render"
	"coverletter-backend/internal/resumes"
	"coverletter-backend/internal/services/health"
	"coverletter-backend/internal/shared/config"
	"coverletter-backend/internal/shared/server"
	"coverletter-backend/internal/shared/server/middleware"
	"coverletter-backend/internal/shared/storage/db"
	"coverletter-backend/internal/shared/storage/object"
	localstore "coverletter-backend/internal/shared/storage/object/local"
	s3store "coverletter-backend/internal/shared/storage/object/s3"
	"coverletter-backend/internal/uploads"
)

// App holds shared dependencies and the HTTP router built from them.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Store               object.ObjectStore
	ResumesRepo         resumes.Repo
	CoverLettersRepo    coverletters.Repo
	ResumesService      *resumes.Service
	CoverLettersService *coverletters.Service
	ResumeHandler       *resumes.Handler
	CoverLetterHandler  *coverletters.Handler
	UploadsHandler      *uploads.Handler
	Health              *health.Service
}

type buildOptions struct {
	generator llm.Generator
	engine    render.Engine
	store     object.ObjectStore
}

// Option overrides a dependency Build would otherwise construct from config.
type Option func(*buildOptions)

// WithGenerator replaces the configured letter generator.
func WithGenerator(g llm.Generator) Option {
	return func(o *buildOptions) { o.generator = g }
}

// WithEngine replaces the configured document layout engine.
func WithEngine(e render.Engine) Option {
	return func(o *buildOptions) { o.engine = e }
}

// WithStore replaces the configured object store.
func WithStore(s object.ObjectStore) Option {
	return func(o *buildOptions) { o.store = s }
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := o.store
	if store == nil {
		store, err = buildStore(ctx, cfg)
		if err != nil {
			closeDB(sqlDB)
			return nil, err
		}
	}

	generator := o.generator
	if generator == nil {
		generator, err = NewGenerator(cfg)
		if err != nil {
			closeDB(sqlDB)
			return nil, err
		}
	}

	engine := o.engine
	if engine == nil {
		engine = buildEngine(cfg)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app, generator, engine)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		ResumeHandler:      app.ResumeHandler,
		CoverLetterHandler: app.CoverLetterHandler,
		UploadsHandler:     app.UploadsHandler,
		Health:             app.Health,
		RateLimiter:        middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	// Lambda cold starts skip migrations; cmd/migrate runs them at deploy time.
	if !db.IsLambdaRuntime() {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
				closeDB(sqlDB)
				return nil, nil
			}
			closeDB(sqlDB)
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// NewGenerator picks the completion backend. A provider that cannot be configured
// falls back to the placeholder in dev, so generation fails with 502 instead of the
// process refusing to start.
func NewGenerator(cfg config.Config) (llm.Generator, error) {
	timeout := time.Duration(cfg.GenerationTimeout) * time.Second

	var (
		completer llm.Completer
		err       error
	)
	switch cfg.LLMProvider {
	case "gemini":
		completer, err = gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.LLMModel, timeout)
	case "openai":
		completer, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMBaseURL, timeout)
	case "ollama":
		completer, err = ollama.NewClient(cfg.LLMModel, cfg.LLMBaseURL, timeout)
	default:
		log.Printf("bootstrap: LLM provider %q not configured; generation will fail", cfg.LLMProvider)
		return llm.NewService(llm.PlaceholderClient{}, "none"), nil
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: %s client unavailable; generation will fail: %v", cfg.LLMProvider, err)
			return llm.NewService(llm.PlaceholderClient{}, cfg.LLMProvider), nil
		}
		return nil, fmt.Errorf("configure %s: %w", cfg.LLMProvider, err)
	}
	return llm.NewService(completer, cfg.LLMProvider), nil
}

func buildEngine(cfg config.Config) render.Engine {
	if cfg.Renderer == "chromedp" {
		return render.NewChromeEngine()
	}
	return render.NewPDFEngine()
}

func buildServices(app *App, generator llm.Generator, engine render.Engine) {
	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.CoverLettersRepo = &coverletters.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.CoverLettersRepo = coverletters.NewMemoryRepo()
	}

	app.ResumesService = resumes.NewService(app.Store, app.ResumesRepo)
	app.CoverLettersService = &coverletters.Service{
		Resumes:   app.ResumesService,
		Generator: generator,
		Renderer:  render.New(engine, app.Store),
		Store:     app.Store,
		Repo:      app.CoverLettersRepo,
	}

	app.ResumeHandler = resumes.NewHandler(app.ResumesService)
	app.CoverLetterHandler = coverletters.NewHandler(app.CoverLettersService)
	app.UploadsHandler = uploads.NewHandler(app.Store)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Health = health.NewService(pinger, app.Config.ObjectStoreType)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
