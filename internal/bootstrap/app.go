package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	authpkg "document-backend/internal/auth"
	"document-backend/internal/documents"
	"document-backend/internal/ingestion"
	"document-backend/internal/queue"
	"document-backend/internal/shared/config"
	"document-backend/internal/shared/server"
	"document-backend/internal/shared/storage/db"
	"document-backend/internal/shared/storage/object"
	localstore "document-backend/internal/shared/storage/object/local"
	s3store "document-backend/internal/shared/storage/object/s3"
	"document-backend/internal/users"
	"document-backend/internal/workerproc"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	IngestionRepo ingestion.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	IngestionService *ingestion.Service
	Processor        *workerproc.Processor

	AuthHandler      *authpkg.Handler
	GoogleAuth       *authpkg.GoogleService
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	IngestionHandler *ingestion.Handler
}

// Build prepares shared dependencies and wires the router.
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

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		AuthHandler:      app.AuthHandler,
		GoogleAuth:       app.GoogleAuth,
		UserHandler:      app.UsersHandler,
		DocumentHandler:  app.DocumentsHandler,
		IngestionHandler: app.IngestionHandler,
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
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildServices(app *App) {
	var (
		userRepo users.Repo
		docRepo  documents.Repo
		ingRepo  ingestion.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
		ingRepo = &ingestion.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		ingRepo = ingestion.NewMemoryRepo(docRepo)
	}

	userSvc := users.NewService(userRepo)
	docSvc := documents.NewService(docRepo, app.Store)
	ingSvc := ingestion.NewService(ingRepo, docRepo, app.Queue)

	app.UsersRepo = userRepo
	app.DocumentsRepo = docRepo
	app.IngestionRepo = ingRepo
	app.UsersService = userSvc
	app.DocumentsService = docSvc
	app.IngestionService = ingSvc
	app.Processor = &workerproc.Processor{
		Ingestions: ingSvc,
		Docs:       docRepo,
		Store:      app.Store,
	}

	app.AuthHandler = authpkg.NewHandler(userSvc)
	app.GoogleAuth = authpkg.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
	app.UsersHandler = users.NewHandler(userSvc)
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.IngestionHandler = ingestion.NewHandler(ingSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
