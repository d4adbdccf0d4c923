package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// ThreatHandler handles contextual threat assessment
type ThreatHandler struct {
	service *service.ThreatService
}

// NewThreatHandler creates a new threat handler
func NewThreatHandler(service *service.ThreatService) *ThreatHandler {
	return &ThreatHandler{service: service}
}

// Assess scores the circumstances of a location
// POST /api/threat/assess
func (h *ThreatHandler) Assess(c *gin.Context) {
	var req models.ThreatAssessRequest
	if !bindJSON(c, &req) {
		return
	}

	response.Success(c, h.service.Assess(c.Request.Context(), req))
}
