package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/config"
	"github.com/ziptechlabs/cohort-server-go/internal/database"
	"github.com/ziptechlabs/cohort-server-go/internal/handler"
	"github.com/ziptechlabs/cohort-server-go/internal/jobs"
	"github.com/ziptechlabs/cohort-server-go/internal/mail"
	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/realtime"
	"github.com/ziptechlabs/cohort-server-go/internal/redis"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("APP_ENV") == "production"
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	cohortRepo := repository.NewCohortRepository(db.DB)
	goalRepo := repository.NewGoalRepository(db.DB)
	checkInRepo := repository.NewCheckInRepository(db.DB)
	sessionRepo := repository.NewCheckInSessionRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)
	meetingRepo := repository.NewMeetingRepository(db.DB)
	supportRepo := repository.NewSupportRepository(db.DB)
	analyticsRepo := repository.NewAnalyticsRepository(db.DB)

	presence := realtime.NewPresence()
	router := realtime.NewRouter()
	bridge := realtime.NewBridge(router, redisClient)
	defer bridge.Close()
	relay := realtime.NewRelay(presence, bridge)

	var mailer mail.Mailer = mail.DisabledMailer{}
	if cfg.MailEnabled() {
		mailer, err = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
			BaseURL:  cfg.AppBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure smtp")
		}
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry())
	verificationService := service.NewVerificationService(userRepo, mailer)
	cohortService := service.NewCohortService(cohortRepo)
	goalService := service.NewGoalService(goalRepo, cohortRepo)
	sessionService := service.NewCheckInSessionService(sessionRepo, relay)
	checkInService := service.NewCheckInService(checkInRepo, goalRepo, sessionService)
	messageService := service.NewMessageService(
		messageRepo, cohortRepo, sessionRepo, relay,
		cfg.CheckInWeekday(), cfg.MessageTTL(),
	)
	meetingService := service.NewMeetingService(meetingRepo, cohortRepo)
	supportService := service.NewSupportService(supportRepo, goalRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo, cohortRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)
	rateLimitMiddleware := middleware.NewRedisRateLimitMiddleware(redisClient.Client)

	authHandler := handler.NewAuthHandler(authService, verificationService)
	cohortHandler := handler.NewCohortHandler(cohortService, messageService, sessionService, meetingService)
	goalHandler := handler.NewGoalHandler(goalService, checkInService)
	checkInHandler := handler.NewCheckInHandler(checkInService)
	messageHandler := handler.NewMessageHandler(messageService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	supportHandler := handler.NewSupportHandler(supportService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	wsHandler := handler.NewWSHandler(relay)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Get("/ws", wsHandler.Serve)

	// The websocket route stays outside the request timeout; sockets are
	// long-lived by design.
	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
		r.Mount("/auth", authHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Handler)
			r.Use(rateLimitMiddleware.Handler)

			r.Get("/me", authHandler.Me)
			r.Put("/me", authHandler.UpdateMe)
			r.Post("/auth/send-verification", authHandler.SendVerification)
			r.Mount("/cohorts", cohortHandler.Routes())
			r.Mount("/goals", goalHandler.Routes())
			r.Mount("/checkins", checkInHandler.Routes())
			r.Mount("/messages", messageHandler.Routes())
			r.Mount("/meetings", meetingHandler.Routes())

			// Peer support and analytics require a verified email.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireVerified)
				r.Mount("/support", supportHandler.Routes())
				r.Mount("/analytics", analyticsHandler.Routes())
			})
		})
	})

	cleanupJob := jobs.NewCleanupJob(messageRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
