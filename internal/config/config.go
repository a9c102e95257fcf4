package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	ReferralAPI ReferralAPIConfig `yaml:"referral_api"`
	Identity    IdentityConfig    `yaml:"identity"`
	SendGrid    SendGridConfig    `yaml:"sendgrid"`
	Cache       CacheConfig       `yaml:"cache"`
	Referrals   ReferralsConfig   `yaml:"referrals"`
	Log         LogConfig         `yaml:"log"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// PublicBaseURL is the dashboard origin used to build referral links.
	PublicBaseURL string `yaml:"public_base_url"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// ReferralAPIConfig points at the remote referral service
type ReferralAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// IdentityConfig points at the external identity/session provider
type IdentityConfig struct {
	BaseURL        string `yaml:"base_url"`
	JWTSecret      string `yaml:"jwt_secret"`
	VerifyLocally  bool   `yaml:"verify_locally"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SendGridConfig contains share-by-email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type ReferralsConfig struct {
	TransitionPolicy string `yaml:"transition_policy"` // "permissive" or "forward_only"
	WhatsAppGroupURL string `yaml:"whatsapp_group_url"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PurgeCache string `yaml:"purge_cache"`
}

// Load reads configuration from a YAML file. A .env file next to the
// working directory is loaded first; it never overrides variables that are
// already set.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse builds a validated Config from YAML bytes plus environment overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("PUBLIC_BASE_URL"); val != "" {
		c.Server.PublicBaseURL = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Remote services
	if val := os.Getenv("REFERRAL_API_URL"); val != "" {
		c.ReferralAPI.BaseURL = val
	}
	if val := os.Getenv("IDENTITY_URL"); val != "" {
		c.Identity.BaseURL = val
	}
	if val := os.Getenv("IDENTITY_JWT_SECRET"); val != "" {
		c.Identity.JWTSecret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM"); val != "" {
		c.SendGrid.FromEmail = val
	}

	if val := os.Getenv("CACHE_TTL_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Cache.TTLSeconds)
	}
	if val := os.Getenv("TRANSITION_POLICY"); val != "" {
		c.Referrals.TransitionPolicy = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.ReferralAPI.TimeoutSeconds == 0 {
		c.ReferralAPI.TimeoutSeconds = 10
	}
	if c.Identity.TimeoutSeconds == 0 {
		c.Identity.TimeoutSeconds = 10
	}
	if c.SendGrid.FromName == "" {
		c.SendGrid.FromName = "Travana"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 60
	}
	c.Referrals.TransitionPolicy = strings.ToLower(strings.TrimSpace(c.Referrals.TransitionPolicy))
	if c.Referrals.TransitionPolicy == "" {
		c.Referrals.TransitionPolicy = "permissive"
	}
	if c.Server.PublicBaseURL == "" {
		c.Server.PublicBaseURL = c.Identity.BaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduler.PurgeCache == "" {
		c.Scheduler.PurgeCache = "0 */5 * * * *" // every 5 minutes
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.ReferralAPI.BaseURL == "" {
		return fmt.Errorf("referral API base URL is required")
	}
	if c.Identity.BaseURL == "" {
		return fmt.Errorf("identity base URL is required")
	}
	if c.Identity.VerifyLocally && len(c.Identity.JWTSecret) < 32 {
		return fmt.Errorf("identity JWT secret must be at least 32 characters")
	}

	switch c.Referrals.TransitionPolicy {
	case "permissive", "forward_only":
	default:
		return fmt.Errorf("invalid transition policy: %q", c.Referrals.TransitionPolicy)
	}

	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *Config) ReferralAPITimeout() time.Duration {
	return time.Duration(c.ReferralAPI.TimeoutSeconds) * time.Second
}

func (c *Config) IdentityTimeout() time.Duration {
	return time.Duration(c.Identity.TimeoutSeconds) * time.Second
}
