package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/authentika/go-backend/internal/cfg"
	v1Http "github.com/authentika/go-backend/internal/delivery/v1/http"
	"github.com/authentika/go-backend/internal/embedding"
	"github.com/authentika/go-backend/internal/infrastructure/kafka"
	"github.com/authentika/go-backend/internal/infrastructure/narrative"
	"github.com/authentika/go-backend/internal/infrastructure/reports"
	s3Repo "github.com/authentika/go-backend/internal/repository/minio"
	"github.com/authentika/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/authentika/go-backend/internal/repository/pgdb/converter"
	qdrantRepo "github.com/authentika/go-backend/internal/repository/qdrant"
	"github.com/authentika/go-backend/internal/repository/redis"
	redisConv "github.com/authentika/go-backend/internal/repository/redis/converter"
	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/clients"
	"github.com/authentika/go-backend/pkg/closer"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/authentika/go-backend/pkg/logger"
	"github.com/authentika/go-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout      = 10 * time.Second
	shutdownTimeout  = 10 * time.Second
	forcedTimeout    = 2 * time.Second
	ensureTopicLimit = 10 * time.Second
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	// Контекст жизни приложения: отменяется при начале shutdown,
	// останавливает фоновые архивации и worker'ов
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	cl := closer.NewCloser(forcedTimeout)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		logger.Infof("PostgreSQL pool closed")
		return nil
	})

	prConv := pgdbConv.NewProductConverter()
	outboxConv := pgdbConv.NewOutboxEventConverter()
	infoConv := redisConv.NewProductInfoConverter()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		os.Exit(1)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		os.Exit(1)
	}
	minioCancel()

	reportRepo := s3Repo.NewReportRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		logger.Errorf(err, "failed to initialize qdrant")
		os.Exit(1)
	}
	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := clients.EnsureCollection(qdrantCtx, qdrantClient, uint64(cfg.Analysis.Dimension)); err != nil {
		qdrantCancel()
		logger.Errorf(err, "failed to initialize qdrant collection")
		os.Exit(1)
	}
	qdrantCancel()
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	embRepo := qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant, cfg.Analysis.Dimension)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, logger)

	embedder := embedding.NewHashEmbedder(cfg.Analysis.Dimension)
	narrativeInfra := narrative.NewAdapter(newGenerator(cfg.Narrative, logger), logger)

	reportArchive := reports.NewReportArchive(reportRepo, logger, appCtx)
	cl.Add(func(ctx context.Context) error {
		return reportArchive.WaitForArchive(ctx)
	})

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	if err := producer.EnsureTopic(ensureTopicLimit); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		outboxWorker.Stop()
		logger.Infof("Outbox worker stopped")
		return nil
	})

	analysisUC := usecase.NewAnalysisUC(
		productRepo,
		embRepo,
		outboxRepo,
		cacheRepo,
		db.Pool,
		embedder,
		narrativeInfra,
		reportArchive,
		logger,
		cfg.Analysis.FakeThreshold,
		cfg.Analysis.TopK,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(analysisUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("Resource cleanup finished with errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

// newGenerator выбирает источник текстового анализа: внешний endpoint
// или встроенный симулятор, если endpoint не задан.
func newGenerator(cfg *config.NarrativeCfg, logger logger.Logger) narrative.Generator {
	if cfg.Endpoint == "" {
		logger.Warnf("NARRATIVE_ENDPOINT is not set, using built-in narrative simulator")
		return narrative.NewSimulator(time.Now().UnixNano())
	}

	return narrative.NewHTTPGenerator(cfg)
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
