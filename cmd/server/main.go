// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockcast/backend-go/internal/api"
	"github.com/stockcast/backend-go/internal/cache"
	"github.com/stockcast/backend-go/internal/config"
	"github.com/stockcast/backend-go/internal/forecast"
	"github.com/stockcast/backend-go/internal/recommend"
	"github.com/stockcast/backend-go/internal/repository/postgres"
	"github.com/stockcast/backend-go/internal/storage"
	"github.com/stockcast/backend-go/pkg/logger"
)

const artifactObjectKey = "demand_model.json"

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	inventoryRepo := postgres.NewInventoryRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	recommendationRepo := postgres.NewRecommendationRepository(db)

	statsCache, err := cache.NewStatsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("stats cache unavailable, continuing without caching")
		statsCache = cache.NewNoopStatsCache()
	}

	artifactStore := buildArtifactStore(cfg)
	model := forecast.NewModel(artifactStore,
		forecast.WithMaxTrainingRows(cfg.Model.MaxTrainingRows))
	if model.Load(context.Background()) {
		logger.Log.Info().Msg("restored demand model from artifact")
	}

	recommender := recommend.NewService(model, cfg.Model.AutoTrain)

	router := api.NewRouter(&api.Services{
		Recommender:     recommender,
		Inventory:       inventoryRepo,
		Sales:           salesRepo,
		Recommendations: recommendationRepo,
		StatsCache:      statsCache,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// buildArtifactStore always persists locally; when object storage is
// configured the local artifact is mirrored to the bucket as well.
func buildArtifactStore(cfg *config.Config) forecast.ArtifactStore {
	fileStore := forecast.NewFileStore(cfg.Model.ArtifactPath)
	if !cfg.Storage.Enabled {
		return fileStore
	}

	client, err := storage.NewMinioClient(context.Background(), cfg.Storage)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("object storage unavailable, using local artifact only")
		return fileStore
	}

	return forecast.NewMirrorStore(fileStore, storage.NewArtifactStore(client, artifactObjectKey))
}
