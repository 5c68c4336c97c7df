// Package config provides configuration management for the pool flow service.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Pool     PoolConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig holds run cache configuration.
// When RedisURL is set runs are shared through Redis instead of the in-memory cache.
type CacheConfig struct {
	Size     int
	TTL      time.Duration
	Shards   int
	RedisURL string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled      bool
	APIKeys      map[string]bool
	JWTSecretKey string
	JWTIssuer    string
}

// JWTEnabled reports whether bearer tokens are accepted.
func (a AuthConfig) JWTEnabled() bool {
	return a.JWTSecretKey != ""
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// PoolConfig holds the server-side calculation defaults.
type PoolConfig struct {
	ProjectName         string
	GallonsPerCubicFoot float64
	UnitsPerLivingRatio float64
	GPMPerUnitFactor    float64
}

// Constants returns the configured defaults with no units.
func (p PoolConfig) Constants() model.GlobalConstants {
	return model.GlobalConstants{
		GallonsPerCubicFoot: p.GallonsPerCubicFoot,
		UnitsPerLivingRatio: p.UnitsPerLivingRatio,
		GPMPerUnitFactor:    p.GPMPerUnitFactor,
	}
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Cache: CacheConfig{
			Size:     getEnvInt("CACHE_SIZE", 1000),
			TTL:      getEnvDuration("CACHE_TTL", 30*time.Minute),
			Shards:   getEnvInt("CACHE_SHARDS", 16),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			APIKeys:      parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
			JWTIssuer:    getEnv("JWT_ISSUER", "pool-flow-service"),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "pool_flow"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Pool: PoolConfig{
			ProjectName:         getEnv("POOL_PROJECT_NAME", ""),
			GallonsPerCubicFoot: getEnvPositiveFloat("POOL_GALLONS_PER_CUBIC_FOOT", model.DefaultGallonsPerCubicFoot),
			UnitsPerLivingRatio: getEnvNonNegativeFloat("POOL_UNITS_PER_LIVING", model.DefaultUnitsPerLivingRatio),
			GPMPerUnitFactor:    getEnvNonNegativeFloat("POOL_GPM_FACTOR", model.DefaultGPMPerUnitFactor),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvNonNegativeFloat ignores values that are negative, NaN or infinite.
func getEnvNonNegativeFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 && !math.IsInf(f, 0) {
			return f
		}
	}
	return defaultValue
}

func getEnvPositiveFloat(key string, defaultValue float64) float64 {
	if f := getEnvNonNegativeFloat(key, defaultValue); f > 0 {
		return f
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
