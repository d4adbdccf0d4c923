// Package response writes the service's JSON envelopes. Successful bodies are
// the payload itself; failures are {"error": message}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends a 200 with data as the body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Error: message})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalError sends a 500 without leaking the cause
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}
