package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/catalog"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/planner"
	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/plans"
	"github.com/FACorreiaa/go-wayfarer/internal/app/middleware"
	"github.com/FACorreiaa/go-wayfarer/internal/pkg/config"
)

// AppHandlers groups the HTTP handlers of every domain.
type AppHandlers struct {
	Catalog *catalog.Handler
	Planner *planner.Handler
	Plans   *plans.Handler
}

// Setup wires repositories, services and handlers onto the router.
func Setup(r *gin.Engine, dbPool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) {
	handlers := setupDependencies(dbPool, cfg, log)
	setupRouter(r, handlers, cfg)
}

func setupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) *AppHandlers {
	offerCatalog := catalog.NewCachedCatalog(
		catalog.NewStaticCatalog(log),
		cfg.Catalog.CacheTTL,
		log,
	)

	synthesizer := planner.NewSynthesizer(log)

	plansRepo := plans.NewRepositoryImpl(dbPool, log)
	plansService := plans.NewService(plansRepo, log)

	return &AppHandlers{
		Catalog: catalog.NewHandler(offerCatalog, log),
		Planner: planner.NewHandler(synthesizer, offerCatalog, log),
		Plans:   plans.NewHandler(plansService, log),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	offers := v1.Group("/offers")
	{
		offers.GET("/flights", h.Catalog.GetFlights)
		offers.GET("/lodging", h.Catalog.GetLodging)
		offers.GET("/activities", h.Catalog.GetActivities)
	}

	v1.POST("/itineraries", middleware.OptionalAuthMiddleware(cfg.JWTSecret), h.Planner.Synthesize)

	saved := v1.Group("/plans", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		saved.POST("", h.Plans.Save)
		saved.GET("", h.Plans.List)
		saved.GET("/:id", h.Plans.Get)
		saved.DELETE("/:id", h.Plans.Delete)
	}
}
