package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/config"
	"resumegen-backend/internal/generate"
	"resumegen-backend/internal/llm"
	"resumegen-backend/internal/llm/gemini"
	"resumegen-backend/internal/llm/openai"
	"resumegen-backend/internal/mail"
	"resumegen-backend/internal/server"
	"resumegen-backend/internal/storage/db"
	"resumegen-backend/internal/storage/object"
	localstore "resumegen-backend/internal/storage/object/local"
	s3store "resumegen-backend/internal/storage/object/s3"
	"resumegen-backend/internal/users"
)

// App holds shared dependencies, built once at process start and passed by
// reference into handlers.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Redis           *redis.Client
	Store           object.ObjectStore
	Sessions        auth.SessionStore
	Signer          *auth.Signer
	LLM             llm.Client
	UsersRepo       users.Repo
	UsersService    *users.Service
	UsersHandler    *users.Handler
	GenerateService *generate.Service
	GenerateHandler *generate.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisClient, sessions := buildSessions(ctx, cfg)

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Redis:    redisClient,
		Store:    store,
		Sessions: sessions,
		Signer:   auth.NewSigner(cfg.SecretKey),
		LLM:      llmClient,
	}

	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
	}

	var mailer users.Mailer
	if cfg.ResendAPIKey != "" {
		client, err := mail.NewClient(cfg.ResendAPIKey, cfg.ResendSenderEmail)
		if err != nil {
			return nil, err
		}
		mailer = client
	} else {
		log.Printf("bootstrap: RESEND_API_KEY empty; activation emails disabled")
	}

	app.GenerateService = generate.NewService(app.LLM)
	app.GenerateHandler = generate.NewHandler(app.GenerateService)

	app.UsersService = users.NewService(app.UsersRepo, app.Sessions, app.Signer, mailer, app.Store, app.GenerateService, cfg.FrontendURL)
	app.UsersHandler = users.NewHandler(app.UsersService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Sessions:        app.Sessions,
		UsersHandler:    app.UsersHandler,
		GenerateHandler: app.GenerateHandler,
	})
	return app, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
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
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildSessions(ctx context.Context, cfg config.Config) (*redis.Client, auth.SessionStore) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Printf("bootstrap: REDIS_ADDR empty; using in-memory sessions")
		return nil, auth.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis ping failed; using in-memory sessions: %v", err)
			_ = client.Close()
			return nil, auth.NewMemoryStore()
		}
		// Keep the client; redis may come up after us.
		log.Printf("bootstrap: redis ping failed: %v", err)
	}
	return client, auth.NewRedisStore(client)
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.ModelAPIKey, cfg.ModelName)
	case "gemini":
		if strings.TrimSpace(cfg.ModelAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: MODEL_API empty; generation endpoints will fail until configured")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("MODEL_API is required")
		}
		return gemini.NewClient(ctx, cfg.ModelAPIKey, cfg.ModelName)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
