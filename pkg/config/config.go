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

	// Shared secret for the cron endpoints.
	CronAPIKey string

	// Defaults for report windows.
	NotifyWindowDays      int
	DefaultProjectionDays int
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
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "fincontrol-backend")
	viper.SetDefault("CRON_API_KEY", "")
	viper.SetDefault("NOTIFY_WINDOW_DAYS", 3)
	viper.SetDefault("DEFAULT_PROJECTION_DAYS", 30)

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

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CronAPIKey = viper.GetString("CRON_API_KEY")
	if cfg.CronAPIKey == "" {
		log.Println("Warning: CRON_API_KEY not set. Cron endpoints will reject all requests.")
	}

	cfg.NotifyWindowDays = viper.GetInt("NOTIFY_WINDOW_DAYS")
	if cfg.NotifyWindowDays <= 0 {
		cfg.NotifyWindowDays = 3
	}

	cfg.DefaultProjectionDays = viper.GetInt("DEFAULT_PROJECTION_DAYS")
	if cfg.DefaultProjectionDays <= 0 {
		cfg.DefaultProjectionDays = 30
	}

	return cfg, nil
}
