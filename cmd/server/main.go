package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/animo-meet/backend/internal/adapter/driven/gateway/ws"
	"github.com/animo-meet/backend/internal/adapter/driven/persistence/badgerdb"
	"github.com/animo-meet/backend/internal/adapter/driven/persistence/memory"
	handler "github.com/animo-meet/backend/internal/adapter/driving/http"
	"github.com/animo-meet/backend/internal/auth"
	"github.com/animo-meet/backend/internal/config"
	"github.com/animo-meet/backend/internal/core/service"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	zlog.Logger = l

	cfg, err := config.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerFilepath))
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	hub := ws.NewHub()
	directory := memory.NewRoomDirectory()

	rooms := service.NewRoomService(directory, hub)
	signals := service.NewSignalService(hub)
	accounts := service.NewAccountService(
		badgerdb.NewUserRepository(db),
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.AuthTokenDuration),
	)
	meetings := service.NewMeetingService(badgerdb.NewMeetingRepository(db))

	h := handler.NewHandler(cfg, rooms, signals, accounts, meetings, hub)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.Addr()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	hub.CloseAll()
	l.Info().Msg("Server exited")
}
