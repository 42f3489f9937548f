package http

import (
	"net/http"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/config"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	authHandler *AuthHandler,
	leagueHandler *LeagueHandler,
	raceHandler *RaceHandler,
	predictionHandler *PredictionHandler,
	fantasyHandler *FantasyHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.Use(RequestIDMiddleware())
	router.Use(RouteGuard())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes. Login and register stay open, the rest of the session
	// surface reads its own token so an expired session can be purged
	// instead of rejected.
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", authHandler.Me)
		auth.POST("/logout", authHandler.Logout)
	}

	// Leagues routes
	leagues := router.Group("/leagues")
	leagues.Use(AuthMiddleware(tokenService))
	{
		leagues.GET("", leagueHandler.Directory)
		leagues.POST("", leagueHandler.Create)
		leagues.POST("/join", leagueHandler.Join)
		leagues.GET("/:id", leagueHandler.Detail)
	}

	// Races routes
	races := router.Group("/races")
	races.Use(AuthMiddleware(tokenService))
	{
		races.GET("", raceHandler.Races)
		races.GET("/:id", raceHandler.Race)
		races.GET("/:id/startlist", raceHandler.Startlist)
		races.POST("/import/:slug", raceHandler.Import)

		races.GET("/:id/bet", predictionHandler.BetPage)
		races.POST("/:id/bet/toggle", predictionHandler.Toggle)
		races.GET("/:id/predictions", predictionHandler.Leaderboard)
		races.POST("/:id/predictions", predictionHandler.Submit)
		races.POST("/:id/score-predictions", predictionHandler.Score)

		races.GET("/:id/fantasy-bet", fantasyHandler.FantasyPage)
		races.POST("/:id/fantasy-bet/toggle", fantasyHandler.Toggle)
		races.GET("/:id/fantasy-teams", fantasyHandler.Leaderboard)
		races.POST("/:id/fantasy-teams", fantasyHandler.Submit)
		races.POST("/:id/score-fantasy-teams", fantasyHandler.Score)
	}

	// Deletions live outside the race group, the upstream keys them by
	// bet ID rather than race ID.
	predictions := router.Group("/predictions")
	predictions.Use(AuthMiddleware(tokenService))
	{
		predictions.DELETE("/:id", predictionHandler.Delete)
	}
	fantasyTeams := router.Group("/fantasy-teams")
	fantasyTeams.Use(AuthMiddleware(tokenService))
	{
		fantasyTeams.DELETE("/:id", fantasyHandler.Delete)
	}

	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
