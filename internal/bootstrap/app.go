package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"wealth-backend/internal/analyses"
	"wealth-backend/internal/analyzer"
	"wealth-backend/internal/documents"
	"wealth-backend/internal/llm"
	openai "wealth-backend/internal/llm/openai"
	"wealth-backend/internal/llm/vertex"
	"wealth-backend/internal/networth"
	"wealth-backend/internal/queue"
	"wealth-backend/internal/services/health"
	"wealth-backend/internal/shared/config"
	"wealth-backend/internal/shared/server"
	"wealth-backend/internal/shared/storage/db"
	"wealth-backend/internal/shared/storage/object"
	gcsstore "wealth-backend/internal/shared/storage/object/gcs"
	localstore "wealth-backend/internal/shared/storage/object/local"
	s3store "wealth-backend/internal/shared/storage/object/s3"
	"wealth-backend/internal/shared/telemetry"
	"wealth-backend/internal/workerproc"
)

const defaultOpenAIModel = "gpt-4o-mini"

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	// LocalQueue is set when jobs run in-process; it must be drained on shutdown.
	LocalQueue *queue.LocalQueue

	DocumentsRepo    documents.DocumentsRepo
	NetWorthRepo     networth.Repo
	DocumentsService *documents.Service
	NetWorthService  *networth.Service
	AnalysisService  *analyses.Service
	Health           *health.Service

	closers []io.Closer
}

type buildOptions struct {
	worker bool
}

// Option adjusts Build.
type Option func(*buildOptions)

// ForWorker sizes the DB pool for queue consumers and skips the producer queue.
func ForWorker() Option {
	return func(o *buildOptions) { o.worker = true }
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	return BuildContext(context.Background(), cfg, opts...)
}

// BuildContext is Build with a caller-supplied context for client construction.
func BuildContext(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var bo buildOptions
	for _, o := range opts {
		o(&bo)
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg, bo.worker)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.closeAll()
		return nil, err
	}
	app.Store = store
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	llmClient, err := app.buildLLM(ctx)
	if err != nil {
		app.closeAll()
		return nil, err
	}

	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.NetWorthRepo = &networth.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.NetWorthRepo = networth.NewMemoryRepo()
	}

	app.NetWorthService = networth.NewService(app.NetWorthRepo)
	app.AnalysisService = &analyses.Service{
		Docs:     app.DocumentsRepo,
		Store:    app.Store,
		Analyzer: analyzer.New(llmClient),
		NetWorth: app.NetWorthService,
		Timeout:  cfg.AnalysisTimeout,
	}

	if !bo.worker {
		if err := app.buildQueue(ctx); err != nil {
			app.closeAll()
			return nil, err
		}
	}

	app.DocumentsService = &documents.Service{
		Store:            app.Store,
		Repo:             app.DocumentsRepo,
		Queue:            app.Queue,
		URLs:             buildURLBuilder(cfg, app.Store),
		InlineContentMax: cfg.InlineContentMax,
	}
	app.Health = health.NewService(app.DB)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		DocumentHandler: documents.NewHandler(app.DocumentsService),
		NetWorthHandler: networth.NewHandler(app.NetWorthService),
		Health:          app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"queue":        cfg.QueueType,
		"llm_provider": cfg.LLMProvider,
		"database":     app.DB != nil,
	})
	return app, nil
}

// Close drains the in-process queue and releases clients.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.LocalQueue != nil {
		if err := a.LocalQueue.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain local queue: %w", err))
		}
	}
	errs = append(errs, a.closeAll())
	return errors.Join(errs...)
}

func (a *App) closeAll() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	// The Lambda singleton outlives a single invocation.
	if a.DB != nil && !db.IsLambdaRuntime() {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, err)
		}
		a.DB = nil
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config, worker bool) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, db.ErrNoDatabaseURL
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else if worker {
		opts := db.OptionsFromEnv(db.DefaultWorkerOptions(cfg.WorkerConcurrency))
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			if !db.IsLambdaRuntime() {
				_ = sqlDB.Close()
			}
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:       cfg.AWSRegion,
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Endpoint:     cfg.S3Endpoint,
			UsePathStyle: cfg.S3ForcePathStyle,
			KMSKeyID:     cfg.SSEKMSKeyID,
		})
	case "gcs":
		return gcsstore.New(ctx, cfg.GCSBucket, cfg.GCSPrefix, cfg.GCSEndpoint)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildURLBuilder(cfg config.Config, store object.ObjectStore) documents.URLBuilder {
	b := documents.URLBuilder{
		Expiry:  cfg.DocumentURLExpiry,
		BaseURL: cfg.PublicBaseURL,
		Mode:    cfg.DocumentURLMode,
	}
	if b.BaseURL == "" && isDevLike(cfg.Env) {
		b.BaseURL = "http://localhost" + server.Addr(cfg.Port)
	}
	if signer, ok := store.(object.URLSigner); ok {
		b.Signer = signer
	}
	return b
}

func (a *App) buildLLM(ctx context.Context) (llm.Client, error) {
	cfg := a.Config
	switch cfg.LLMProvider {
	case "openai", "":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			if isDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.llm.placeholder", map[string]any{"reason": "OPENAI_API_KEY empty"})
				return llm.PlaceholderClient{}, nil
			}
			return nil, errors.New("OPENAI_API_KEY is required for LLM_PROVIDER=openai")
		}
		model := cfg.LLMModel
		if model == "" {
			model = defaultOpenAIModel
		}
		return openai.NewClient(cfg.OpenAIAPIKey, model)
	case "vertex":
		client, err := vertex.NewClient(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		return client, nil
	case "none", "placeholder":
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func (a *App) buildQueue(ctx context.Context) error {
	switch a.Config.QueueType {
	case "sqs":
		client, err := queue.NewSQSClient(ctx, a.Config.AWSRegion, a.Config.SQSQueueURL, a.Config.SQSEndpoint)
		if err != nil {
			return err
		}
		a.Queue = client
	case "none":
		telemetry.Warn("bootstrap.queue.disabled", map[string]any{"reason": "QUEUE=none"})
	default:
		processor := a.AnalysisService
		lq := queue.NewLocalQueue(func(ctx context.Context, msg queue.Message) error {
			return workerproc.Process(ctx, processor, msg)
		},
			queue.WithWorkers(a.Config.WorkerConcurrency),
			queue.WithQueueSize(a.Config.WorkerQueueSize),
		)
		a.LocalQueue = lq
		a.Queue = lq
	}
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
