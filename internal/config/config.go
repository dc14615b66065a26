package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"unihub/internal/pkg/jwt"
	"unihub/internal/pkg/logger"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	OAuth     OAuthConfig
	Log       LogConfig
	Cron      CronConfig
	Bootstrap BootstrapConfig
}

// AppConfig holds server settings
type AppConfig struct {
	Mode           string `envconfig:"APP_MODE" default:"dev"`
	Port           string `envconfig:"PORT" default:"3000"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`
}

// DatabaseConfig holds database configuration, read with the DEV_ or PROD_ prefix
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"3306"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASS"`
	DBName   string `envconfig:"DB_NAME" default:"unihub"`
}

// JWTConfig holds token settings, read with the DEV_ or PROD_ prefix
type JWTConfig struct {
	Secret           string `envconfig:"JWT_SECRET" required:"true"`
	RefreshSecret    string `envconfig:"JWT_REFRESH_SECRET" required:"true"`
	Issuer           string `envconfig:"JWT_ISSUER" default:"unihub"`
	AccessTokenMins  int    `envconfig:"ACCESS_TOKEN_MINUTES" default:"15"`
	RefreshTokenDays int    `envconfig:"REFRESH_TOKEN_DAYS" default:"7"`
}

// OAuthConfig holds identity provider endpoints
type OAuthConfig struct {
	GoogleUserInfoURL string        `envconfig:"GOOGLE_USERINFO_URL"`
	FacebookGraphURL  string        `envconfig:"FACEBOOK_GRAPH_URL"`
	Timeout           time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// CronConfig holds scheduled job settings
type CronConfig struct {
	PurgeSchedule string `envconfig:"PURGE_SCHEDULE" default:"0 3 * * *"`
}

// BootstrapConfig optionally seeds the first global administrator
type BootstrapConfig struct {
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using environment variables")
	}

	cfg := &Config{}
	if err := envconfig.Process("", &cfg.App); err != nil {
		return nil, err
	}

	// Trim spaces for Windows compatibility
	cfg.App.Mode = strings.TrimSpace(cfg.App.Mode)
	if cfg.App.Mode != "dev" && cfg.App.Mode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", cfg.App.Mode)
	}

	prefix := cfg.modePrefix()
	sections := []struct {
		prefix string
		spec   interface{}
	}{
		{prefix, &cfg.Database},
		{prefix, &cfg.JWT},
		{"OAUTH", &cfg.OAuth},
		{"LOG", &cfg.Log},
		{"CRON", &cfg.Cron},
		{"BOOTSTRAP", &cfg.Bootstrap},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.spec); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded", "mode", cfg.App.Mode)
	return cfg, nil
}

func (c *Config) modePrefix() string {
	if c.IsProd() {
		return "PROD"
	}
	return "DEV"
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) < jwt.MinSecretLength || len(c.JWT.RefreshSecret) < jwt.MinSecretLength {
		return jwt.ErrWeakSecret
	}
	if c.JWT.Secret == c.JWT.RefreshSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	if c.JWT.AccessTokenMins <= 0 || c.JWT.RefreshTokenDays <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.IsProd() && c.App.AllowedOrigins == "" {
		return errors.New("ALLOWED_ORIGINS is required in prod mode")
	}
	if c.Bootstrap.AdminEmail != "" && c.Bootstrap.AdminPassword == "" {
		return errors.New("BOOTSTRAP_ADMIN_PASSWORD is required with BOOTSTRAP_ADMIN_EMAIL")
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.App.Mode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.App.Mode == "prod"
}

// AccessTokenTTL returns the access token lifetime
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenMins) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTokenDays) * 24 * time.Hour
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.App.AllowedOrigins == "" {
		return "*"
	}
	return c.App.AllowedOrigins
}
