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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/catalog"
	apihttp "github.com/ayush735bahuguna/fake-store-api-cart/internal/http"
	"github.com/ayush735bahuguna/fake-store-api-cart/internal/repository"
	"github.com/ayush735bahuguna/fake-store-api-cart/internal/service"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDBName     string
	FakeStoreURL    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "5000"),
		MongoURI:        getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "cartdb"),
		FakeStoreURL:    getEnv("FAKESTORE_URL", catalog.DefaultBaseURL),
		RequestTimeout:  30 * time.Second,
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
	ctx := context.Background()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	logger.Info().Str("uri", cfg.MongoURI).Msg("connected to MongoDB")

	repo := repository.NewMongoRepository(mongoDB)
	catalogClient := catalog.NewClient(cfg.FakeStoreURL, logger)
	carts := service.NewCartService(repo, catalogClient, logger)

	router := apihttp.NewRouter(
		apihttp.NewProductHandler(catalogClient, logger),
		apihttp.NewCartHandler(repo, carts, logger),
		apihttp.NewCheckoutHandler(),
		logger,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(router, "server"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect failed")
	}

	logger.Info().Msg("server exited")
}
