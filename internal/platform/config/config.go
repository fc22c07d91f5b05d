package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	CORSAllowedOrigins []string

	// PostHogAPIKey enables product analytics when non-empty.
	PostHogAPIKey string
	PostHogHost   string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables override .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://app.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		PostHogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PostHogHost:        viper.GetString("POSTHOG_HOST"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET is the insecure default. Set it in production.")
	}
	if cfg.PostHogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Analytics capture disabled.")
	}

	return cfg, nil
}
