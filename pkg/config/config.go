package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Foursquare FoursquareConfig
	Overpass   OverpassConfig
	Recommend  RecommendConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// FoursquareConfig holds the points-of-interest search provider configuration
type FoursquareConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// OverpassConfig holds the open geodata tag provider configuration
type OverpassConfig struct {
	BaseURL      string
	RadiusMeters int
	Timeout      time.Duration
}

// RecommendConfig holds recommendation pipeline tunables. The default
// coordinate is the fallback search center used when the meeting location
// cannot be resolved through the provider (a metro-area center keeps the
// deck non-empty through transient provider failures).
type RecommendConfig struct {
	DefaultLat   float64
	DefaultLng   float64
	SearchLimit  int
	CacheTTL     time.Duration
	RetryElapsed time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "tablevote"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Foursquare: FoursquareConfig{
			APIKey:  getEnv("FOURSQUARE_API_KEY", ""),
			BaseURL: getEnv("FOURSQUARE_API_URL", "https://api.foursquare.com"),
			Timeout: getEnvAsDuration("FOURSQUARE_TIMEOUT", "10s"),
		},
		Overpass: OverpassConfig{
			BaseURL:      getEnv("OVERPASS_API_URL", "https://overpass-api.de"),
			RadiusMeters: getEnvAsInt("OVERPASS_RADIUS_METERS", 30),
			Timeout:      getEnvAsDuration("OVERPASS_TIMEOUT", "10s"),
		},
		Recommend: RecommendConfig{
			// Singapore city center
			DefaultLat:   getEnvAsFloat("RECOMMEND_DEFAULT_LAT", 1.3521),
			DefaultLng:   getEnvAsFloat("RECOMMEND_DEFAULT_LNG", 103.8198),
			SearchLimit:  getEnvAsInt("RECOMMEND_SEARCH_LIMIT", 20),
			CacheTTL:     getEnvAsDuration("RECOMMEND_CACHE_TTL", "24h"),
			RetryElapsed: getEnvAsDuration("RECOMMEND_RETRY_ELAPSED", "8s"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Foursquare.APIKey == "" {
		return fmt.Errorf("FOURSQUARE_API_KEY is required")
	}
	if c.Recommend.SearchLimit < 1 || c.Recommend.SearchLimit > 50 {
		return fmt.Errorf("RECOMMEND_SEARCH_LIMIT must be between 1 and 50")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
