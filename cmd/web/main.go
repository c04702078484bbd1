package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/web"
)

type Config struct {
	Port            string
	APIURL          string
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		Port:            getEnv("WEB_PORT", "3000"),
		APIURL:          getEnv("API_URL", "http://localhost:5000"),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := loadConfig()

	api := web.NewAPIClient(cfg.APIURL)
	cart := web.NewCartState(api, logger)

	// Load the aggregate cart once at startup; the app still comes up with
	// an empty local cart if the backend is unreachable.
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := cart.Refresh(startupCtx); err != nil {
		logger.Warn().Err(err).Msg("initial cart load failed")
	}
	cancel()

	server, err := web.NewServer(api, cart, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build web server")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("api", cfg.APIURL).Msg("web app listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down web app...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("web app exited")
}
