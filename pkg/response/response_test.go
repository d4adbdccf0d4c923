package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		write    func(*gin.Context)
		wantCode int
		wantBody string
	}{
		{"success", func(c *gin.Context) { Success(c, gin.H{"risk_score": 20}) }, http.StatusOK, `{"risk_score":20}`},
		{"bad request", func(c *gin.Context) { BadRequest(c, "user_id is required") }, http.StatusBadRequest, `{"error":"user_id is required"}`},
		{"not found", func(c *gin.Context) { NotFound(c, "Not found") }, http.StatusNotFound, `{"error":"Not found"}`},
		{"rate limited", func(c *gin.Context) { TooManyRequests(c, "slow down") }, http.StatusTooManyRequests, `{"error":"slow down"}`},
		{"internal", InternalError, http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}
