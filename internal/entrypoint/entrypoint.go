package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/houseofplants/houseofplants/internal/auth"
	"github.com/houseofplants/houseofplants/internal/config"
	"github.com/houseofplants/houseofplants/internal/database"
	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/database/plants"
	"github.com/houseofplants/houseofplants/internal/database/users"
	http_controllers "github.com/houseofplants/houseofplants/internal/http"
	"github.com/houseofplants/houseofplants/internal/logutil"
	"github.com/houseofplants/houseofplants/internal/mailer"
	"github.com/houseofplants/houseofplants/internal/scheduler"
	"github.com/houseofplants/houseofplants/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("host", cfg.HTTP.Host).Int32("port", cfg.HTTP.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Shutdown callback first, so in-flight tasks drain before the DB goes
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger := logutil.Setup("houseofplants")
	log.Info().Str("version", version).Msg("starting House of Plants")

	// Background work carries the service logger through its context.
	backgroundCtx := logutil.WithLogger(context.Background(), logger)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	userRepo := users.NewRepository(db.DB)
	plantRepo := plants.NewRepository(db.DB)
	eventRepo := events.NewRepository(db.DB)

	outgoingMail := mailer.New(cfg.Mail)
	if !outgoingMail.Enabled() {
		log.Warn().Msg("MAIL_HOST is not set, welcome emails will be skipped")
	}

	// Task queue for background sends
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:           cfg.Tasks.Workers,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewWelcomeEmailQueue(outgoingMail, outgoingMail.Enabled()),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(backgroundCtx)
		go taskClient.Start(taskCtx)
	}

	// Authentication
	authService := auth.NewService(userRepo, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get SQL DB for sessions")
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session manager")
	}

	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to generate CSRF secret")
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Info().Msg("generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	// Event archival scheduler
	var archiver *scheduler.EventArchiver
	if cfg.Scheduler.EventArchiveEnabled {
		archiver = scheduler.NewEventArchiver(eventRepo, cfg.Scheduler.EventArchiveSchedule)
		if err := archiver.Start(backgroundCtx); err != nil {
			log.Fatal().Err(err).Msg("failed to start event archiver")
		}
	}

	var notifier auth.Notifier
	if taskClient != nil {
		notifier = taskClient
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Users:          userRepo,
		Plants:         plantRepo,
		Events:         eventRepo,
		AuthService:    authService,
		SessionManager: sessionManager,
		Notifier:       notifier,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
	})

	onShutdown := func(ctx context.Context) {
		if archiver != nil {
			archiver.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
