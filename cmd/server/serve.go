package main

import (
	"alcyxob/swimcoach/internal/api"
	"alcyxob/swimcoach/internal/config"
	"alcyxob/swimcoach/internal/generation"
	"alcyxob/swimcoach/internal/logger"
	"alcyxob/swimcoach/internal/repository"
	"alcyxob/swimcoach/internal/repository/memory"
	"alcyxob/swimcoach/internal/repository/mongo"
	"alcyxob/swimcoach/internal/service"
	"alcyxob/swimcoach/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// repositories groups the stores chosen by store.backend.
type repositories struct {
	plans    repository.TrainingPlanRepository
	schedule repository.ScheduleRepository
	users    repository.UserRepository
	close    func()
}

// loadConfig reads and validates configuration and builds the logger.
func loadConfig(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func openRepositories(cfg config.Config, log *zap.Logger) (*repositories, error) {
	if cfg.Store.Backend != config.StoreMongo {
		log.Info("using in-memory store")
		return &repositories{
			plans:    memory.NewTrainingPlanRepository(),
			schedule: memory.NewScheduleRepository(),
			users:    memory.NewUserRepository(),
			close:    func() {},
		}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established", zap.String("database", cfg.Database.Name))

	go func() { // Index creation runs in the background
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB, log)
	}()

	return &repositories{
		plans:    mongo.NewMongoTrainingPlanRepository(appDB),
		schedule: mongo.NewMongoScheduleRepository(appDB),
		users:    mongo.NewMongoUserRepository(appDB),
		close: func() {
			log.Info("disconnecting MongoDB")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Error("failed to disconnect MongoDB", zap.Error(err))
			}
		},
	}, nil
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting swim coach server")

	repos, err := openRepositories(cfg, log)
	if err != nil {
		return err
	}
	defer repos.close()

	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	} else {
		log.Info("plan export disabled, s3.bucket_name is empty")
	}

	generator, err := generation.NewClientFromConfig(ctx, cfg.Generation, log)
	if err != nil {
		return fmt.Errorf("failed to initialize generation client: %w", err)
	}
	log.Info("generation client ready", zap.String("provider", generator.ProviderName()))

	trainingService := service.NewTrainingService(repos.plans, repos.schedule, generator, fileStorage, cfg.S3.PresignExpiry, log)
	scheduleService := service.NewScheduleService(repos.plans, repos.schedule)

	var authService service.AuthService
	if cfg.JWT.Secret != "" {
		authService, err = service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration)
		if err != nil {
			return err
		}
	} else {
		log.Warn("jwt.secret is empty, auth endpoints are disabled")
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(api.RequestLogger(log.Named("http")), gin.Recovery())
	api.SetupRoutes(router, api.Options{
		JWTSecret:    cfg.JWT.Secret,
		AuthRequired: cfg.Auth.Required,
		ExposeErrors: cfg.Server.Mode != gin.ReleaseMode,
	}, log, trainingService, scheduleService, authService)

	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// Generation may take the whole provider timeout
		WriteTimeout: generationWriteTimeout(cfg),
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exiting")
	return nil
}

func generationWriteTimeout(cfg config.Config) time.Duration {
	timeout := cfg.Generation.Timeout
	if timeout <= 0 {
		timeout = generation.DefaultTimeout
	}
	return timeout + 10*time.Second
}
