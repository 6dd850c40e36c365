// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stockcast/backend-go/internal/api/handlers"
	"github.com/stockcast/backend-go/internal/api/middleware"
	"github.com/stockcast/backend-go/internal/cache"
	"github.com/stockcast/backend-go/internal/recommend"
	"github.com/stockcast/backend-go/internal/repository"
)

type Services struct {
	Recommender     *recommend.Service
	Inventory       repository.InventoryRepository
	Sales           repository.SalesRepository
	Recommendations repository.RecommendationRepository
	StatsCache      cache.StatsCache
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		apiGroup.GET("/inventory", inventoryHandler.ListItems)
		apiGroup.POST("/inventory", inventoryHandler.CreateItem)
		apiGroup.GET("/inventory/:id", inventoryHandler.GetItem)

		salesHandler := handlers.NewSalesHandler(services.Sales, services.Inventory, services.StatsCache)
		apiGroup.GET("/sales", salesHandler.ListSales)
		apiGroup.POST("/sales", salesHandler.RecordSale)

		dashboardHandler := handlers.NewDashboardHandler(services.Inventory, services.Sales, services.StatsCache)
		apiGroup.GET("/dashboard/stats", dashboardHandler.GetStats)

		recHandler := handlers.NewRecommendationHandler(
			services.Recommender, services.Inventory, services.Sales, services.Recommendations)
		recGroup := apiGroup.Group("/recommendations")
		{
			recGroup.GET("", recHandler.List)
			recGroup.POST("/generate", recHandler.Generate)
		}

		modelHandler := handlers.NewModelHandler(services.Recommender.Model(), services.Inventory, services.Sales)
		modelGroup := apiGroup.Group("/model")
		{
			modelGroup.POST("/train", modelHandler.Train)
			modelGroup.GET("/status", modelHandler.Status)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
