package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Upstream railway data providers
	RailStackBaseURL  string
	RailStackAPIKey   string
	TrainVistaBaseURL string
	TrainVistaAPIKey  string
	// UpstreamTimeout bounds every provider HTTP call. There is no retry on
	// top of it; a timed-out lookup fails the request.
	UpstreamTimeout time.Duration

	// Rate limit for the lookup routes, in limiter notation (e.g. "30-M").
	LookupRateLimit string

	PosthogAPIKey string

	// ContactEmail is served verbatim on the contact endpoint.
	ContactEmail string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_ISSUER", "railsathi-backend")
	viper.SetDefault("RAILSTACK_BASE_URL", "")
	viper.SetDefault("RAILSTACK_API_KEY", "")
	viper.SetDefault("TRAINVISTA_BASE_URL", "")
	viper.SetDefault("TRAINVISTA_API_KEY", "")
	viper.SetDefault("UPSTREAM_TIMEOUT", "15s")
	viper.SetDefault("LOOKUP_RATE_LIMIT", "30-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CONTACT_EMAIL", "support@railsathi.app")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 720
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.RailStackBaseURL = viper.GetString("RAILSTACK_BASE_URL")
	cfg.RailStackAPIKey = viper.GetString("RAILSTACK_API_KEY")
	cfg.TrainVistaBaseURL = viper.GetString("TRAINVISTA_BASE_URL")
	cfg.TrainVistaAPIKey = viper.GetString("TRAINVISTA_API_KEY")
	if cfg.RailStackBaseURL == "" && cfg.TrainVistaBaseURL == "" {
		log.Println("Warning: No upstream provider base URLs configured. PNR lookups will fail.")
	}

	upstreamTimeoutStr := viper.GetString("UPSTREAM_TIMEOUT")
	upstreamTimeout, err := time.ParseDuration(upstreamTimeoutStr)
	if err != nil {
		upstreamTimeout = 15 * time.Second
		log.Printf("Warning: Invalid value for UPSTREAM_TIMEOUT ('%s'). Defaulting to %s.\n", upstreamTimeoutStr, upstreamTimeout.String())
	}
	cfg.UpstreamTimeout = upstreamTimeout

	cfg.LookupRateLimit = viper.GetString("LOOKUP_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.ContactEmail = viper.GetString("CONTACT_EMAIL")

	return cfg, nil
}
