package app

import (
	"context"
	"fmt"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/handler/http"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/logger"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/pelotonapi"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/prometheus"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/adapter/redis"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/config"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/services"

	"github.com/go-playground/validator/v10"
	redisClient "github.com/redis/go-redis/v9"
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Peloton API client: live or the in-memory seed
	var api ports.PelotonAPI
	if cfg.Peloton.Mock {
		loggerAdapter.Warn("Running against the mock peloton API", nil)
		api = pelotonapi.NewMock(cfg.Token.Secret)
	} else {
		api = pelotonapi.NewClient(cfg.Peloton.BaseURL, cfg.Peloton.TimeoutDuration(), loggerAdapter)
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Token verification
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, loggerAdapter)

	// Services
	sessionService := services.NewSessionService(api, tokenService, cacheAdapter, loggerAdapter, validate)
	leagueService := services.NewLeagueService(api, loggerAdapter, validate)
	raceService := services.NewRaceService(api, cacheAdapter, loggerAdapter)
	predictionService := services.NewPredictionService(api, raceService, loggerAdapter)
	fantasyService := services.NewFantasyService(api, raceService, loggerAdapter)

	// HTTP Handlers
	authHandler := http.NewAuthHandler(sessionService, loggerAdapter, metrics, cfg.HTTP.SecureCookie)
	leagueHandler := http.NewLeagueHandler(leagueService, loggerAdapter, metrics)
	raceHandler := http.NewRaceHandler(raceService, loggerAdapter, metrics)
	predictionHandler := http.NewPredictionHandler(predictionService, loggerAdapter, metrics)
	fantasyHandler := http.NewFantasyHandler(fantasyService, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		authHandler,
		leagueHandler,
		raceHandler,
		predictionHandler,
		fantasyHandler,
	)
	if err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
