package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localnerve/singletea-api/internal/config"
	"github.com/localnerve/singletea-api/internal/database"
	"github.com/localnerve/singletea-api/internal/logger"
	"github.com/localnerve/singletea-api/internal/mail"
	"github.com/localnerve/singletea-api/internal/server"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/storage"
	"go.uber.org/zap"
)

// @title Single Tea API
// @version 1.0.0
// @description Content, media and enquiry service for the Single Tea India website

// @contact.name API Support
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zapLog.Sync() }()
	zapLog.Info("configuration loaded", zap.Stringer("config", cfg))

	db, err := database.Connect(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		zapLog.Fatal("failed to run migrations", zap.Error(err))
	}

	media := storage.NewOsMediaStore(cfg.Media.Root, cfg.ServerURL, cfg.Media.MaxFileBytes, zapLog)
	if err := os.MkdirAll(cfg.Media.Root, 0o755); err != nil {
		zapLog.Fatal("failed to create upload root", zap.Error(err))
	}
	if err := media.EnsureFolders(); err != nil {
		zapLog.Fatal("failed to create upload folders", zap.Error(err))
	}

	var revocations services.Revocations
	var redisPinger services.Pinger
	if cfg.RedisURL != "" {
		redisRevocations, err := services.NewRedisRevocations(cfg.RedisURL)
		if err != nil {
			zapLog.Fatal("failed to configure redis", zap.Error(err))
		}
		defer redisRevocations.Close()
		revocations = redisRevocations
		redisPinger = redisRevocations
		zapLog.Info("session revocation enabled")
	}

	ctx := context.Background()
	mailer, err := mail.New(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to configure mail transport", zap.Error(err))
	}
	var smtpAddr string
	if m, ok := mailer.(*mail.SMTPMailer); ok {
		smtpAddr = m.Addr()
	}

	users := services.NewUserStore(db)
	app := server.New(server.Deps{
		Config:           cfg,
		Log:              zapLog,
		Media:            media,
		Users:            users,
		Sessions:         services.NewSessionIssuer(users, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, revocations, zapLog),
		Menus:            &services.MenuService{DB: db, Media: media, Log: zapLog},
		Franchises:       &services.FranchiseService{DB: db, Media: media, Log: zapLog},
		Gallery:          &services.GalleryService{DB: db, Media: media, Log: zapLog},
		FranchiseGallery: &services.FranchiseGalleryService{DB: db, Media: media, Log: zapLog},
		Enquiries:        services.NewEnquiryNotifier(mailer, cfg.Mail.From, cfg.Mail.AdminEmail, zapLog),
		Health: &services.HealthChecker{
			DB:       db,
			DBType:   cfg.Database.Type,
			Media:    media,
			Redis:    redisPinger,
			SMTPAddr: smtpAddr,
			Log:      zapLog,
		},
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		zapLog.Info("gracefully shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLog.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLog.Fatal("failed to start server", zap.Error(err))
	}

	zapLog.Info("server stopped")
}
