package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisadapter "github.com/ammarmusa/travel-app-backend/internal/adapter/cache/redis"
	"github.com/ammarmusa/travel-app-backend/internal/adapter/geo"
	mongoadapter "github.com/ammarmusa/travel-app-backend/internal/adapter/mongo"
	natsadapter "github.com/ammarmusa/travel-app-backend/internal/adapter/nats"
	"github.com/ammarmusa/travel-app-backend/internal/config"
	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/handler"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/platform/metrics"
	"github.com/ammarmusa/travel-app-backend/internal/port/cache"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"github.com/ammarmusa/travel-app-backend/internal/router"
	"github.com/ammarmusa/travel-app-backend/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	server      *http.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
	publisher   *natsadapter.Publisher
	metrics     *metrics.Manager
}

func New(cfg *config.Config) (*App, error) {
	appLogger := logger.NewLogger()
	appLogger.Info("Configuration loaded",
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("mongo_database", cfg.Mongo.Database),
	)

	mongoClient, err := mongoadapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	appLogger.Info("Successfully connected to MongoDB")

	userRepo := mongoadapter.NewUserMongoRepository(mongoClient, cfg.Mongo.Database, appLogger)
	wishlistRepo := mongoadapter.NewWishlistMongoRepository(mongoClient, cfg.Mongo.Database)

	// The cache and the event publisher are optional; a missing backend only
	// costs the feature, never startup.
	var redisClient *redis.Client
	var cacheRepo cache.CacheRepository
	if cfg.Redis.Address != "" {
		redisClient, err = redisadapter.NewRedisClient(&cfg.Redis, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			cacheRepo = redisadapter.NewRedisCacheRepository(redisClient, appLogger)
		}
	}

	var publisher *natsadapter.Publisher
	var eventPublisher usecase.EventPublisher
	if cfg.NATS.URL != "" {
		publisher, err = natsadapter.NewNATSPublisher(&cfg.NATS, appLogger)
		if err != nil {
			appLogger.Warn("NATS unavailable, continuing without event publishing", zap.Error(err))
		} else {
			eventPublisher = publisher
		}
	}

	metricsManager := metrics.NewManager("travel_wishlist")
	extractor := geo.NewExtractor(cfg.Geo.HTTPTimeout, appLogger)

	authUC := usecase.NewAuthUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.Bootstrap.MaxUsers, appLogger)
	wishlistUC := usecase.NewWishlistUseCase(wishlistRepo, extractor, eventPublisher, cacheRepo, metricsManager, appLogger)
	activityUC := usecase.NewActivityUseCase(wishlistRepo, eventPublisher, cacheRepo, metricsManager, appLogger)

	if err := seedDefaultUser(context.Background(), userRepo, &cfg.Bootstrap, appLogger); err != nil {
		appLogger.Warn("Failed to seed default user", zap.Error(err))
	}

	authHandler := handler.NewAuthHandler(authUC, appLogger)
	wishlistHandler := handler.NewWishlistHandler(wishlistUC, appLogger)
	activityHandler := handler.NewActivityHandler(activityUC, appLogger)

	mux := router.New(authHandler, wishlistHandler, activityHandler, cfg, metricsManager, appLogger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		mongoClient: mongoClient,
		redisClient: redisClient,
		publisher:   publisher,
		metrics:     metricsManager,
	}, nil
}

// seedDefaultUser creates the configured admin account when the users
// collection is empty, so a fresh deployment is immediately usable.
func seedDefaultUser(ctx context.Context, users repository.UserRepository, cfg *config.BootstrapConfig, log *logger.Logger) error {
	if cfg.DefaultUserEmail == "" || cfg.DefaultUserPassword == "" {
		return nil
	}

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("Users collection exists", zap.Int64("count", count))
		return nil
	}

	role := cfg.DefaultUserRole
	if role == "" {
		role = "admin"
	}
	user := &entity.User{
		FullName:  cfg.DefaultUserName,
		Email:     cfg.DefaultUserEmail,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := users.Create(ctx, user, cfg.DefaultUserPassword); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return err
	}
	log.Info("Default admin user created", zap.String("email", cfg.DefaultUserEmail))
	return nil
}

func (a *App) Run() {
	go func() {
		if err := metrics.StartMetricsServer(a.cfg.Metrics.Port, a.log, a.metrics.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		a.log.Info("Starting HTTP server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Info("Received shutdown signal, shutting down application", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Error during HTTP server graceful shutdown", zap.Error(err))
	} else {
		a.log.Info("HTTP server stopped")
	}

	if a.publisher != nil {
		a.publisher.Close()
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis client", zap.Error(err))
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Error("Error disconnecting from MongoDB", zap.Error(err))
		} else {
			a.log.Info("MongoDB connection closed")
		}
	}

	if err := a.log.Sync(); err != nil {
		// Sync on stdout can fail on some platforms; nothing to do about it.
		_ = err
	}
}
