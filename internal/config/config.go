package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Analysis  AnalysisConfig  `koanf:"analysis"`
	Gateway   GatewayConfig   `koanf:"gateway"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Mode            string        `koanf:"mode"` // gin mode: debug, release, test
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig points at the SQLite incident store.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxOpenConns int    `koanf:"max_open_conns"`
}

// RedisConfig enables the shared movement-profile cache tier. Empty Addr disables it.
type RedisConfig struct {
	Addr       string        `koanf:"addr"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	ProfileTTL time.Duration `koanf:"profile_ttl"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// AnalysisConfig holds the engine thresholds.
type AnalysisConfig struct {
	MovementSpeedThreshold float64 `koanf:"movement_speed_threshold"` // km/h
	HotspotRadiusKm        float64 `koanf:"hotspot_radius_km"`
	MinIncidentsForHotspot int     `koanf:"min_incidents_for_hotspot"`
	RiskPredictionRadiusKm float64 `koanf:"risk_prediction_radius_km"`
	ProfileHistoryHours    int     `koanf:"profile_history_hours"`
}

// GatewayConfig tunes the resilient data access layer.
type GatewayConfig struct {
	TimeoutSeconds      int           `koanf:"timeout_seconds"`
	WriteQueueSize      int           `koanf:"write_queue_size"`
	BreakerMaxFailures  uint32        `koanf:"breaker_max_failures"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout"`
	BreakerHalfOpenReqs uint32        `koanf:"breaker_half_open_requests"`
	RouteFetchParallel  int           `koanf:"route_fetch_parallel"`
}

// Timeout returns the per-call deadline for reads.
func (g GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// RateLimitConfig is the per-client request budget.
type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// LoggingConfig mirrors logging.Config in koanf form.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate rejects values the engines cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Analysis.MovementSpeedThreshold <= 0 {
		errs = append(errs, errors.New("analysis.movement_speed_threshold must be positive"))
	}
	if c.Analysis.HotspotRadiusKm <= 0 {
		errs = append(errs, errors.New("analysis.hotspot_radius_km must be positive"))
	}
	if c.Analysis.MinIncidentsForHotspot < 1 {
		errs = append(errs, errors.New("analysis.min_incidents_for_hotspot must be at least 1"))
	}
	if c.Analysis.RiskPredictionRadiusKm <= 0 {
		errs = append(errs, errors.New("analysis.risk_prediction_radius_km must be positive"))
	}
	if c.Analysis.ProfileHistoryHours <= 0 {
		errs = append(errs, errors.New("analysis.profile_history_hours must be positive"))
	}
	if c.Gateway.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("gateway.timeout_seconds must be positive"))
	}
	if c.Gateway.WriteQueueSize <= 0 {
		errs = append(errs, errors.New("gateway.write_queue_size must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("rate_limit requires positive requests and window when enabled"))
	}

	return errors.Join(errs...)
}
