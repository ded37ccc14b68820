package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/glucocare/glucocare-api/internal/config"
	"github.com/glucocare/glucocare-api/internal/email"
	appointmentHandler "github.com/glucocare/glucocare-api/internal/handler/appointment"
	authHandler "github.com/glucocare/glucocare-api/internal/handler/auth"
	chatHandler "github.com/glucocare/glucocare-api/internal/handler/chat"
	demoHandler "github.com/glucocare/glucocare-api/internal/handler/demo"
	dietHandler "github.com/glucocare/glucocare-api/internal/handler/diet"
	healthHandler "github.com/glucocare/glucocare-api/internal/handler/health"
	recordHandler "github.com/glucocare/glucocare-api/internal/handler/record"
	settingsHandler "github.com/glucocare/glucocare-api/internal/handler/settings"
	userHandler "github.com/glucocare/glucocare-api/internal/handler/user"
	"github.com/glucocare/glucocare-api/internal/middleware"
	"github.com/glucocare/glucocare-api/internal/repository/postgres"
	"github.com/glucocare/glucocare-api/internal/router"
	appointmentService "github.com/glucocare/glucocare-api/internal/service/appointment"
	authService "github.com/glucocare/glucocare-api/internal/service/auth"
	chatService "github.com/glucocare/glucocare-api/internal/service/chat"
	dietService "github.com/glucocare/glucocare-api/internal/service/diet"
	recordService "github.com/glucocare/glucocare-api/internal/service/record"
	userService "github.com/glucocare/glucocare-api/internal/service/user"
	"github.com/glucocare/glucocare-api/pkg/auth"
	"github.com/glucocare/glucocare-api/pkg/i18n"
	"github.com/glucocare/glucocare-api/pkg/messaging/redis"
	"github.com/glucocare/glucocare-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	brokerLogger := log.With().Str("component", "broker").Logger()
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &brokerLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	localeStore, err := i18n.NewStore(context.Background(), i18n.NewRedisPersistence(broker.Client()))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load locale store")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	dietRepo := postgres.NewDietPlanRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	emailSvc := email.NewService(cfg.Email)
	m := metrics.NewMetrics("glucocare", "api")

	// Services
	accessTTL := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, emailSvc, accessTTL)
	userSvc := userService.NewService(userRepo, outboxRepo)
	recordSvc := recordService.NewService(recordRepo, outboxRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, outboxRepo, emailSvc)
	dietSvc := dietService.NewService(dietRepo, userRepo, outboxRepo)
	chatSvc := chatService.NewService(messageRepo, userRepo, broker, m)

	// Middleware and handlers
	authMW := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMW,
		authHandler.NewHandler(authSvc),
		userHandler.NewHandler(userSvc, authMW),
		recordHandler.NewHandler(recordSvc, userSvc),
		appointmentHandler.NewHandler(appointmentSvc, authMW),
		dietHandler.NewHandler(dietSvc, userSvc, authMW),
		chatHandler.NewHandler(chatSvc, m),
		settingsHandler.NewHandler(localeStore),
		demoHandler.NewHandler(),
		healthHandler.NewHandler(db, broker.Client()),
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RPS),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "glucocare",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
