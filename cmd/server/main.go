package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aviato-app/aviato-backend/docs"
	"github.com/aviato-app/aviato-backend/internal/common/auth"
	"github.com/aviato-app/aviato-backend/internal/common/logger"
	"github.com/aviato-app/aviato-backend/internal/common/middleware"
	"github.com/aviato-app/aviato-backend/internal/config"
	chathttp "github.com/aviato-app/aviato-backend/internal/features/chat/delivery/http"
	chatredis "github.com/aviato-app/aviato-backend/internal/features/chat/repository/redis"
	chatservice "github.com/aviato-app/aviato-backend/internal/features/chat/service"
	"github.com/aviato-app/aviato-backend/internal/features/reputation"
	userhttp "github.com/aviato-app/aviato-backend/internal/features/user/delivery/http"
	userredis "github.com/aviato-app/aviato-backend/internal/features/user/repository/redis"
	userservice "github.com/aviato-app/aviato-backend/internal/features/user/service"
	redisplatform "github.com/aviato-app/aviato-backend/internal/platform/redis"
)

// @title Aviato API
// @version 1.0
// @description Availability-aware messaging backend
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger.Init("aviato-backend", cfg.Debug)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb, err := redisplatform.New(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	userRepo := userredis.NewUserRepository(rdb)
	chatRepo := chatredis.NewChatRepository(rdb)
	ledger := reputation.NewLedger(userRepo, reputation.NewRedisEventStore(rdb))

	userSvc := userservice.NewUserService(userRepo, chatRepo, tokens)
	chatSvc := chatservice.NewChatService(
		chatRepo,
		userRepo,
		ledger,
		time.Duration(cfg.Timers.RoundSeconds)*time.Second,
		time.Duration(cfg.Timers.GhostingSeconds)*time.Second,
	)

	if cfg.SeedDemoData {
		if err := userSvc.SeedDemoData(ctx); err != nil {
			logger.Warn().Err(err).Msg("Demo data seeding failed")
		}
	}

	sweeper := chatservice.NewRoundSweeper(
		chatRepo,
		time.Duration(cfg.Timers.RoundSeconds)*time.Second,
		time.Duration(cfg.Timers.SweepIntervalSeconds)*time.Second,
	)
	sweeper.Start()
	defer sweeper.Stop()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api/v1")
	userhttp.NewUserHandler(userSvc, ledger, tokens).RegisterRoutes(api)
	chathttp.NewChatHandler(chatSvc, tokens).RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}
