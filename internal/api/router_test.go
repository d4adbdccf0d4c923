package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/internal/analysis/analysistest"
	"github.com/anshc022/suraksha-ai-service/internal/analysis/anomaly"
	"github.com/anshc022/suraksha-ai-service/internal/analysis/pattern"
	"github.com/anshc022/suraksha-ai-service/internal/analysis/risk"
	"github.com/anshc022/suraksha-ai-service/internal/cache"
	"github.com/anshc022/suraksha-ai-service/internal/middleware"
	"github.com/anshc022/suraksha-ai-service/internal/service"
	"github.com/anshc022/suraksha-ai-service/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGin(); err != nil {
		panic(err)
	}
}

func services() Services {
	gw := &analysistest.Gateway{}
	return Services{
		Risk:    service.NewRiskService(risk.NewEngine(gw, risk.DefaultConfig())),
		Anomaly: service.NewAnomalyService(anomaly.NewEngine(gw, cache.NewMemoryProfileCache(), anomaly.DefaultConfig())),
		Pattern: service.NewPatternService(pattern.NewEngine(gw, pattern.DefaultConfig())),
		Threat:  service.NewThreatService(),
	}
}

func TestRoutes(t *testing.T) {
	r := NewRouter(services(), Options{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/risk/predict", `{"route":{"start":{"lat":1,"lng":1},"end":{"lat":1,"lng":1}}}`, http.StatusOK},
		{http.MethodGet, "/api/risk/area?lat=1&lng=1", "", http.StatusOK},
		{http.MethodPost, "/api/patterns/analyze", `{"area":{"center":{"lat":1,"lng":1},"radius_km":1}}`, http.StatusOK},
		{http.MethodPost, "/api/threat/assess", `{"location":{"lat":1,"lng":1},"context":{}}`, http.StatusOK},
		{http.MethodPost, "/api/anomaly/detect", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
		{http.MethodOptions, "/api/risk/predict", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			if w.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := NewRouter(services(), Options{Limiter: limiter})

	get := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	if code := get("/api/risk/area?lat=1&lng=1"); code != http.StatusOK {
		t.Fatalf("first api call = %d", code)
	}
	if code := get("/api/risk/area?lat=1&lng=1"); code != http.StatusTooManyRequests {
		t.Errorf("second api call = %d, want 429", code)
	}
	for i := 0; i < 3; i++ {
		if code := get("/health"); code != http.StatusOK {
			t.Errorf("health = %d, want 200 regardless of limit", code)
		}
	}
}
