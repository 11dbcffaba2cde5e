package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/adapters/httpapi"
	kafkaadapter "inkwell/internal/adapters/kafka"
	"inkwell/internal/adapters/objectstore"
	redisadapter "inkwell/internal/adapters/redis"
	"inkwell/internal/config"
	categoryapp "inkwell/internal/core/category/service"
	commentapp "inkwell/internal/core/comment/service"
	feedapp "inkwell/internal/core/feed/service"
	followerapp "inkwell/internal/core/follower/service"
	likeapp "inkwell/internal/core/like/service"
	postapp "inkwell/internal/core/post/service"
	"inkwell/internal/core/projection"
	searchapp "inkwell/internal/core/search/service"
	timelineapp "inkwell/internal/core/timeline/service"
	userapp "inkwell/internal/core/user/service"
	"inkwell/internal/ports/events"
	"inkwell/internal/ports/storage"
	"inkwell/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	config.InitLogger(envOf(cfg))
	defer config.SyncLogger()
	if err != nil {
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := config.InitTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Env)
	if err != nil {
		config.Logger.Fatal("Error initializing tracing", zap.Error(err))
	}

	config.InitDB(cfg.DBDSN)
	if err := dbadapter.AutoMigrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		config.Logger.Fatal("Error creating object store client", zap.Error(err))
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaAsync)
		defer func() {
			if err := kp.Close(); err != nil {
				config.Logger.Error("Error closing kafka writer", zap.Error(err))
			}
		}()
		publisher = kp
		config.Logger.Info("Publishing interaction events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic), zap.Bool("async", cfg.KafkaAsync))
	}

	defer closeResources(config.Logger)

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	linkRepo := dbadapter.NewSocialLinkRepositoryDatabase(config.DB)
	categoryRepo := dbadapter.NewCategoryRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	likeRepo := dbadapter.NewLikeRepositoryDatabase(config.DB)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB)
	fanoutRepo := dbadapter.NewFanoutRepositoryDatabase(config.DB)
	feedRepo := dbadapter.NewFeedRepositoryDatabase(config.DB)
	searchRepo := dbadapter.NewSearchRepositoryDatabase(config.DB)
	timelineStore := redisadapter.NewTimelineRepositoryRedis(config.RedisClient, cfg.TimelineMaxLen)
	blacklist := redisadapter.NewTokenBlacklistRedis(config.RedisClient)
	projector := projection.NewProjector(likeRepo, commentRepo)

	useCases := httpapi.UseCases{
		Users: userapp.NewUserService(userRepo, linkRepo, followerRepo, blacklist, store, userapp.TokenConfig{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		}),
		Categories: categoryapp.NewCategoryService(categoryRepo),
		Posts:      postapp.NewPostService(postRepo, categoryRepo, commentRepo, fanoutRepo, projector, store),
		Feed:       feedapp.NewFeedService(feedRepo, projector),
		Comments:   commentapp.NewCommentService(commentRepo, postRepo, projector, publisher),
		Likes:      likeapp.NewLikeService(likeRepo, postRepo, commentRepo, publisher),
		Followers:  followerapp.NewFollowerService(followerRepo, userRepo, publisher),
		Search:     searchapp.NewSearchService(searchRepo, projector),
		Timeline:   timelineapp.NewTimelineService(timelineStore, postRepo, projector),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpapi.SetupRoutes(useCases, httpapi.RouterOptions{Logger: config.Logger, Registry: registry})

	fanoutWorker := workers.NewFanoutWorker(fanoutRepo, followerRepo, postRepo, timelineStore,
		cfg.BatchSize, cfg.FanoutInterval, config.Logger.Named("fanout"))
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		fanoutWorker.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		config.Logger.Info("App is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
	<-workerDone
	if err := shutdownTracing(shutdownCtx); err != nil {
		config.Logger.Error("Error flushing traces", zap.Error(err))
	}
	config.Logger.Info("Server exited")
}

// newObjectStore returns the MinIO store, or a store that rejects uploads when MINIO_ENDPOINT is
// unset.
func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.MinioEndpoint == "" {
		config.Logger.Warn("MINIO_ENDPOINT is empty, uploads are disabled")
		return objectstore.Disabled{}, nil
	}
	store, err := objectstore.NewMinioStore(objectstore.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		// uploads fail until the bucket exists; everything else keeps working
		config.Logger.Error("Could not ensure bucket", zap.String("bucket", cfg.MinioBucket), zap.Error(err))
	}
	return store, nil
}

func envOf(cfg *config.Config) string {
	if cfg == nil {
		return "development"
	}
	return cfg.Env
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
