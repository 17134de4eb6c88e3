package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hirewire/hirewire/internal/config"
	"github.com/hirewire/hirewire/internal/db"
	"github.com/hirewire/hirewire/internal/handlers"
	"github.com/hirewire/hirewire/internal/mailer"
	"github.com/hirewire/hirewire/internal/storage"
	"github.com/hirewire/hirewire/internal/store"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	dbConn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		logger.Fatal().Err(err).Msg("db migrate")
	}

	uploads, err := storage.New(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("upload dir")
	}

	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	h := handlers.New(store.NewPostgres(dbConn), uploads, mail, handlers.Options{
		Secret:     cfg.SecretKey,
		SessionTTL: cfg.SessionTTL,
		BaseURL:    cfg.BaseURL,
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Routes(),
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
