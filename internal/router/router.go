package router

import (
	"github.com/gin-gonic/gin"

	"inscan/internal/config"
	"inscan/internal/handler"
	"inscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analysisH *handler.AnalysisHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Analyze)
	analyses.POST("/compare", analysisH.Compare)
	analyses.GET("", analysisH.List)
	analyses.GET("/:id", analysisH.Get)
	analyses.GET("/:id/raw", analysisH.GetRawText)
	analyses.GET("/:id/export", reportH.Export)
	analyses.DELETE("/:id", analysisH.Delete)

	v1.POST("/assemble", analysisH.Assemble)

	return r
}
