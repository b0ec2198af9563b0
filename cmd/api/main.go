// @title           DemandHub Consultancy API
// @version         1.0
// @description     Team, campaign and task management for a marketing consultancy.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/demandhub/consultancy-api/internal/api"
	"github.com/demandhub/consultancy-api/internal/core/service"
	mongodb "github.com/demandhub/consultancy-api/internal/infrastructure/db/mongo"
	redisdb "github.com/demandhub/consultancy-api/internal/infrastructure/db/redis"
	"github.com/demandhub/consultancy-api/internal/infrastructure/http/handlers"
	"github.com/demandhub/consultancy-api/internal/pkg/config"
	"github.com/demandhub/consultancy-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		l := logger.Init(logger.Options{Service: api.ServiceName})
		l.Fatal().Err(err).Msg("server exited")
	}
}

// run wires the service and serves until ctx is cancelled or the server fails.
func run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: api.ServiceName,
	})
	if cfg.UsingDevSecret {
		log.Warn().Msg("JWT_SECRET_KEY not set, signing tokens with the development secret")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	users := mongodb.NewUserRepository(db, logger.Component("user_repository"))
	campaigns := mongodb.NewCampaignRepository(db, logger.Component("campaign_repository"))
	tasks := mongodb.NewTaskRepository(db, logger.Component("task_repository"))
	for name, ensure := range map[string]func(context.Context) error{
		"users":     users.EnsureIndexes,
		"campaigns": campaigns.EnsureIndexes,
		"tasks":     tasks.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	checks := map[string]handlers.CheckFunc{"mongodb": handlers.MongoCheck(db)}

	var throttle service.LoginThrottle
	if cfg.Throttle.Limit > 0 {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Throttle.Limit, cfg.Throttle.Window)
		checks["redis"] = handlers.RedisCheck(rdb)
	} else {
		log.Info().Msg("login throttling disabled")
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(users, tokens, throttle, logger.Component("auth"))

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		Identity:    authService,
		Campaigns:   service.NewCampaignService(campaigns, logger.Component("campaigns")),
		Tasks:       service.NewTaskService(tasks, campaigns, logger.Component("tasks")),
		Team:        service.NewTeamService(users, tasks, logger.Component("team")),
		Dashboard:   service.NewDashboardService(mongodb.NewStatsRepository(db), logger.Component("dashboard")),
		Checks:      checks,
		Logger:      logger.Component("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	default:
		return nil
	}
}
