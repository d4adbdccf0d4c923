package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/suraksha/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Mode:            "release",
		},
		Database: DatabaseConfig{
			Path:         "./data/suraksha.db",
			MaxOpenConns: 10,
		},
		Redis: RedisConfig{
			ProfileTTL: time.Hour,
		},
		Analysis: AnalysisConfig{
			MovementSpeedThreshold: 100,
			HotspotRadiusKm:        0.5,
			MinIncidentsForHotspot: 5,
			RiskPredictionRadiusKm: 1.0,
			ProfileHistoryHours:    24 * 7,
		},
		Gateway: GatewayConfig{
			TimeoutSeconds:      30,
			WriteQueueSize:      256,
			BreakerMaxFailures:  5,
			BreakerOpenTimeout:  30 * time.Second,
			BreakerHalfOpenReqs: 1,
			RouteFetchParallel:  4,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 120,
			Window:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in increasing order of precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings keeps the variable names the deployment already uses.
var envMappings = map[string]string{
	"ai_host":                   "server.host",
	"ai_port":                   "server.port",
	"gin_mode":                  "server.mode",
	"shutdown_timeout":          "server.shutdown_timeout",
	"db_path":                   "database.path",
	"db_max_open_conns":         "database.max_open_conns",
	"redis_addr":                "redis.addr",
	"redis_password":            "redis.password",
	"redis_db":                  "redis.db",
	"profile_cache_ttl":         "redis.profile_ttl",
	"movement_speed_threshold":  "analysis.movement_speed_threshold",
	"hotspot_radius":            "analysis.hotspot_radius_km",
	"min_incidents_for_hotspot": "analysis.min_incidents_for_hotspot",
	"risk_prediction_radius":    "analysis.risk_prediction_radius_km",
	"profile_history_hours":     "analysis.profile_history_hours",
	"api_timeout":               "gateway.timeout_seconds",
	"write_queue_size":          "gateway.write_queue_size",
	"breaker_max_failures":      "gateway.breaker_max_failures",
	"breaker_open_timeout":      "gateway.breaker_open_timeout",
	"route_fetch_parallel":      "gateway.route_fetch_parallel",
	"rate_limit_enabled":        "rate_limit.enabled",
	"rate_limit_requests":       "rate_limit.requests",
	"rate_limit_window":         "rate_limit.window",
	"log_level":                 "logging.level",
	"log_format":                "logging.format",
	"log_caller":                "logging.caller",
}

// envTransformFunc maps an environment variable to its koanf path.
// Unknown variables return "" so koanf ignores them.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
