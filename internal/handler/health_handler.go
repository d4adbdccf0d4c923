package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// ServiceName is reported by the health check.
const ServiceName = "ai-ml-engine"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// HealthHandler reports liveness
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Health always answers healthy while the process serves requests
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Service:   ServiceName,
	})
}
