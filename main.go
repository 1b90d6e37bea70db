package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"restaurant-booking-server/config"
	"restaurant-booking-server/db"
	"restaurant-booking-server/externals"
	"restaurant-booking-server/handlers"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/mockservers"
	"restaurant-booking-server/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Error loading configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// init db
	database, err := db.InitDB(cfg.Database, cfg.Server.Mode)
	if err != nil || database == nil {
		logging.Fatal().Err(err).Msg("Error initializing database")
	}
	defer db.CloseDBConnection()

	// start mock servers in new go routines
	if cfg.MockServers.Enabled {
		go mockservers.StartTranslationApiServer(cfg.MockServers.TranslationPort)
		go mockservers.StartSentimentApiServer(cfg.MockServers.SentimentPort)
	}

	// initialize firebase
	externals.InitializeFirebase(cfg.Server.Mode, cfg.Server.FirebaseCredentials)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub()
	go hub.Run(ctx)

	h := handlers.NewHandler(handlers.Dependencies{
		DB:         database,
		Translator: externals.NewTranslationClient(cfg.Translation),
		Scorer:     externals.NewSentimentClient(cfg.Sentiment),
		Hub:        hub,
		Config:     *cfg,
	})
	server := SetupServer(*cfg, h)

	go func() {
		logging.Info().Str("port", cfg.Server.Port).Str("mode", cfg.Server.Mode).Msg("Server starting")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logging.Error().Err(err).Msg("Server forced to shutdown")
	}
}
