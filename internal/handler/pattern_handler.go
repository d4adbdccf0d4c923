package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// PatternHandler handles HTTP requests for incident pattern analysis
type PatternHandler struct {
	service *service.PatternService
}

// NewPatternHandler creates a new pattern handler
func NewPatternHandler(service *service.PatternService) *PatternHandler {
	return &PatternHandler{service: service}
}

// Analyze finds hotspots, trends and risk zones in an area
// POST /api/patterns/analyze
func (h *PatternHandler) Analyze(c *gin.Context) {
	var req models.PatternAnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}

	response.Success(c, h.service.Analyze(c.Request.Context(), req))
}
