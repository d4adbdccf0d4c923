package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// AnomalyHandler handles HTTP requests for movement anomaly detection
type AnomalyHandler struct {
	service *service.AnomalyService
}

// NewAnomalyHandler creates a new anomaly handler
func NewAnomalyHandler(service *service.AnomalyService) *AnomalyHandler {
	return &AnomalyHandler{service: service}
}

// Detect checks a telemetry sequence for anomalies
// POST /api/anomaly/detect
func (h *AnomalyHandler) Detect(c *gin.Context) {
	var req models.AnomalyDetectRequest
	if !bindJSON(c, &req) {
		return
	}

	response.Success(c, h.service.Detect(c.Request.Context(), req))
}
