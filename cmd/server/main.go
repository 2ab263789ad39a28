package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/config"
	"github.com/yukikurage/job-board-api/internal/database"
	"github.com/yukikurage/job-board-api/internal/handlers"
	"github.com/yukikurage/job-board-api/internal/logger"
	"github.com/yukikurage/job-board-api/internal/metrics"
	"github.com/yukikurage/job-board-api/internal/middleware"
	"github.com/yukikurage/job-board-api/internal/repository"
	"github.com/yukikurage/job-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.MigrateDatabase(db, log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Token revocation needs Redis; without it logout only discards the token client side
	var revoker auth.TokenRevoker
	if cfg.RedisHost != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()
		revoker = auth.NewRedisRevoker(redisClient)
	} else {
		log.Warn("REDIS_HOST not set, logout will not revoke tokens")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, revoker)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	authService := services.NewAuthService(userRepo, companyRepo, tokens, log)
	profileService := services.NewProfileService(userRepo, companyRepo, log)
	jobService := services.NewJobService(jobRepo, companyRepo, log)
	applicationService := services.NewApplicationService(appRepo, jobRepo, userRepo, aiService, log)

	stop := make(chan struct{})
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, log)
	authLimiter.StartCleanup(time.Minute, stop)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), metrics.Middleware())

	healthCheck := func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"message": "Database is unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Job Board API is running",
		})
	}

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Profile:     handlers.NewProfileHandler(profileService, jobService),
		Job:         handlers.NewJobHandler(jobService),
		Application: handlers.NewApplicationHandler(applicationService),
		HealthCheck: healthCheck,
		AuthLimiter: authLimiter.Handler(),
		Tokens:      tokens,
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	close(stop)

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}
