package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"restaurant-booking-server/logging"
)

const configPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server         ServerConfig         `koanf:"server"`
	Database       DatabaseConfig       `koanf:"database"`
	Translation    TranslationConfig    `koanf:"translation"`
	Sentiment      SentimentConfig      `koanf:"sentiment"`
	Integrity      IntegrityConfig      `koanf:"integrity"`
	Recommendation RecommendationConfig `koanf:"recommendation"`
	Suggestion     SuggestionConfig     `koanf:"suggestion"`
	Logging        LoggingConfig        `koanf:"logging"`
	MockServers    MockServersConfig    `koanf:"mockservers"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	// Mode is "real" or "test", same meaning as TEST_MODE in the env file
	Mode                string        `koanf:"mode"`
	ShutdownTimeout     time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins         []string      `koanf:"cors_origins"`
	ReviewRateLimit     int           `koanf:"review_rate_limit"`
	ReviewRateWindow    time.Duration `koanf:"review_rate_window"`
	FirebaseCredentials string        `koanf:"firebase_credentials"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// TranslationConfig is handed to the translation client when it is built.
type TranslationConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	PivotLang         string        `koanf:"pivot_lang"`
	SourceLang        string        `koanf:"source_lang"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

type SentimentConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type IntegrityConfig struct {
	SimilarityThreshold    float64       `koanf:"similarity_threshold"`
	SameVenueWindow        time.Duration `koanf:"same_venue_window"`
	CrossVenueWindow       time.Duration `koanf:"cross_venue_window"`
	MaxDuplicateCandidates int           `koanf:"max_duplicate_candidates"`
}

type RecommendationConfig struct {
	MinRating   float64 `koanf:"min_rating"`
	Concurrency int     `koanf:"concurrency"`
}

type SuggestionConfig struct {
	Size                int `koanf:"size"`
	MaxViewed           int `koanf:"max_viewed"`
	RecentlyViewedLimit int `koanf:"recently_viewed_limit"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type MockServersConfig struct {
	Enabled         bool   `koanf:"enabled"`
	TranslationPort string `koanf:"translation_port"`
	SentimentPort   string `koanf:"sentiment_port"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                "80",
			Mode:                "real",
			ShutdownTimeout:     5 * time.Second,
			CORSOrigins:         []string{"*"},
			ReviewRateLimit:     10,
			ReviewRateWindow:    time.Minute,
			FirebaseCredentials: "firebaseServiceAccountKey.json",
		},
		Database: DatabaseConfig{
			URL: "sqlite://restaurant_booking.db",
		},
		Translation: TranslationConfig{
			BaseURL:           "https://translation.googleapis.com",
			PivotLang:         "en",
			SourceLang:        "vi",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Sentiment: SentimentConfig{
			BaseURL: "http://localhost:8082",
			Timeout: 3 * time.Second,
		},
		Integrity: IntegrityConfig{
			SimilarityThreshold:    0.7,
			SameVenueWindow:        10 * time.Minute,
			CrossVenueWindow:       60 * time.Minute,
			MaxDuplicateCandidates: 50,
		},
		Recommendation: RecommendationConfig{
			MinRating:   4.0,
			Concurrency: 4,
		},
		Suggestion: SuggestionConfig{
			Size:                8,
			MaxViewed:           4,
			RecentlyViewedLimit: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		MockServers: MockServersConfig{
			Enabled:         false,
			TranslationPort: "8081",
			SentimentPort:   "8082",
		},
	}
}

// Load reads .env, then layers defaults, an optional yaml file and environment
// variables (SERVER_PORT -> server.port).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Info().Msg("No .env file found, reading from environment")
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// comma separated env value
	if origins, ok := k.Get("server.cors_origins").(string); ok && origins != "" {
		if err := k.Set("server.cors_origins", splitList(origins)); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// legacy switch from the env file
	if mode := os.Getenv("TEST_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// sections whose env names map onto koanf keys
var envSections = []string{
	"server", "database", "translation", "sentiment", "integrity",
	"recommendation", "suggestion", "logging", "mockservers",
}

func envTransform(key string) string {
	lower := strings.ToLower(key)
	for _, section := range envSections {
		if strings.HasPrefix(lower, section+"_") {
			return section + "." + strings.TrimPrefix(lower, section+"_")
		}
	}
	// unrelated variables are dropped
	return ""
}

func findConfigFile() string {
	if path := os.Getenv(configPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Server.Mode != "real" && c.Server.Mode != "test" {
		return fmt.Errorf("invalid server mode %q", c.Server.Mode)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !strings.HasPrefix(c.Database.URL, "postgres://") && !strings.HasPrefix(c.Database.URL, "sqlite://") {
		return fmt.Errorf("database url must start with postgres:// or sqlite://")
	}
	if c.Integrity.SimilarityThreshold <= 0 || c.Integrity.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in (0, 1], got %v", c.Integrity.SimilarityThreshold)
	}
	if c.Integrity.SameVenueWindow <= 0 || c.Integrity.CrossVenueWindow <= 0 {
		return fmt.Errorf("duplicate windows must be positive")
	}
	if c.Recommendation.Concurrency < 1 {
		return fmt.Errorf("recommendation concurrency must be at least 1")
	}
	if c.Suggestion.Size < 1 || c.Suggestion.MaxViewed < 0 || c.Suggestion.MaxViewed > c.Suggestion.Size {
		return fmt.Errorf("invalid suggestion sizes %d/%d", c.Suggestion.MaxViewed, c.Suggestion.Size)
	}
	if c.Translation.PivotLang == "" {
		return fmt.Errorf("translation pivot language is required")
	}
	return nil
}
