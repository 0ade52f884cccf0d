package config

import (
	"fmt"
	"log"
	"time"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Machine settings
	Denominations  domain.DenominationSet
	QuickBuyNote   int64
	CurrencySymbol string
	Location       *time.Location

	// Admin auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AdminUsername     string
	AdminPasswordHash string

	FrontendBaseURL   string
	PurchaseRateLimit string
	LoginRateLimit    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DENOMINATIONS", "100,50,20,10,5,1")
	v.SetDefault("QUICK_BUY_NOTE", 100)
	v.SetDefault("CURRENCY_SYMBOL", "Rs")
	v.SetDefault("TIME_ZONE", "Local")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "vending-machine-app")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("PURCHASE_RATE_LIMIT", "30-M")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	denominations, err := domain.ParseDenominationSet(v.GetString("DENOMINATIONS"))
	if err != nil {
		return nil, fmt.Errorf("invalid DENOMINATIONS: %w", err)
	}
	cfg.Denominations = denominations

	cfg.QuickBuyNote = v.GetInt64("QUICK_BUY_NOTE")
	if !cfg.Denominations.Contains(cfg.QuickBuyNote) {
		return nil, fmt.Errorf("QUICK_BUY_NOTE %d is not one of the configured denominations", cfg.QuickBuyNote)
	}

	cfg.CurrencySymbol = v.GetString("CURRENCY_SYMBOL")

	loc, err := time.LoadLocation(v.GetString("TIME_ZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}
	cfg.Location = loc

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the default insecure key. Set it in production.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	cfg.JWTExpiryDuration, err = time.ParseDuration(jwtExpiryStr)
	if err != nil {
		cfg.JWTExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, cfg.JWTExpiryDuration.String())
	}

	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	cfg.AdminUsername = v.GetString("ADMIN_USERNAME")
	cfg.AdminPasswordHash = v.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Admin login is disabled.")
	}

	cfg.FrontendBaseURL = v.GetString("FRONTEND_BASE_URL")
	cfg.PurchaseRateLimit = v.GetString("PURCHASE_RATE_LIMIT")
	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
