package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rdsmusic/spotify-backend/internal/config"
	"github.com/rdsmusic/spotify-backend/internal/metrics"
	"github.com/rdsmusic/spotify-backend/server"
	"github.com/rdsmusic/spotify-backend/server/statestore"
	"github.com/rdsmusic/spotify-backend/sessions"
	"github.com/rdsmusic/spotify-backend/spotify"
	"github.com/rdsmusic/spotify-backend/token"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	setupLogging(cfg)
	displayAppname(cfg.AppName)

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Warn().Msg("SPOTIFY_CLIENT_ID/SPOTIFY_CLIENT_SECRET not set; provider operations will fail")
	}

	collector := metrics.NewCollector()
	signer := token.NewHMACSigner(cfg.SecretKey)

	srv := server.New(cfg, server.Deps{
		Flow:         spotify.NewAuthFlow(cfg.Spotify),
		API:          spotify.NewClient(cfg.Spotify.APIBaseURL),
		ClientTokens: spotify.NewClientTokenCache(cfg.Spotify, collector),
		Sessions:     sessions.NewInMemoryRepo(),
		States:       statestore.NewInMemoryRepo(),
		Issuer:       token.NewIssuer(signer, cfg.SessionTokenTTL),
		Verifier:     token.NewVerifier(signer),
		Metrics:      collector,
	})

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func setupLogging(cfg *config.Config) {
	if cfg.Env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
