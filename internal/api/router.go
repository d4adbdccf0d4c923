// Package api assembles the HTTP surface.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anshc022/suraksha-ai-service/internal/handler"
	"github.com/anshc022/suraksha-ai-service/internal/middleware"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// Services are the request handlers' dependencies.
type Services struct {
	Risk    *service.RiskService
	Anomaly *service.AnomalyService
	Pattern *service.PatternService
	Threat  *service.ThreatService
}

// Options toggles optional middleware. A nil Limiter disables rate limiting.
type Options struct {
	Limiter *middleware.RateLimiter
}

// NewRouter sets up routes and middleware
func NewRouter(svc Services, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Endpoint not found")
	})

	r.GET("/health", handler.NewHealthHandler().Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter))
	}
	{
		riskHandler := handler.NewRiskHandler(svc.Risk)
		risk := api.Group("/risk")
		{
			risk.POST("/predict", riskHandler.PredictRoute)
			risk.GET("/area", riskHandler.AreaSummary)
		}

		anomalyHandler := handler.NewAnomalyHandler(svc.Anomaly)
		api.POST("/anomaly/detect", anomalyHandler.Detect)

		patternHandler := handler.NewPatternHandler(svc.Pattern)
		api.POST("/patterns/analyze", patternHandler.Analyze)

		threatHandler := handler.NewThreatHandler(svc.Threat)
		api.POST("/threat/assess", threatHandler.Assess)
	}

	return r
}
