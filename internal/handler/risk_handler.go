package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// RiskHandler handles HTTP requests for route and area risk
type RiskHandler struct {
	service *service.RiskService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(service *service.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

// PredictRoute scores a planned route
// POST /api/risk/predict
func (h *RiskHandler) PredictRoute(c *gin.Context) {
	var req models.RiskPredictRequest
	if !bindJSON(c, &req) {
		return
	}

	response.Success(c, h.service.PredictRoute(c.Request.Context(), req))
}

// AreaSummary summarises recent incidents around a point
// GET /api/risk/area?lat=&lng=&radius_km=
func (h *RiskHandler) AreaSummary(c *gin.Context) {
	var q models.AreaRiskQuery
	if !bindQuery(c, &q) {
		return
	}

	response.Success(c, h.service.AreaSummary(c.Request.Context(), q))
}
