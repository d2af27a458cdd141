package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable that overrides the config file location
const ConfigPathEnv = "SKILLSWAP_CONFIG"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout    string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Ledger LedgerConfig `yaml:"ledger"`

	Cache struct {
		Enabled bool   `yaml:"enabled" env:"CACHE_ENABLED"`
		Addr    string `yaml:"addr" env:"REDIS_ADDR"`
		TTL     string `yaml:"ttl" env:"CACHE_TTL"`
	} `yaml:"cache"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		BaseURL   string `yaml:"base_url" env:"APP_BASE_URL"`
	} `yaml:"smtp"`
}

// LedgerConfig holds every coin amount the platform charges or pays out.
// The quiz path pays the same rewards as direct completion.
type LedgerConfig struct {
	OpeningGrant          int `yaml:"opening_grant" env:"LEDGER_OPENING_GRANT"`
	RequestFee            int `yaml:"request_fee" env:"LEDGER_REQUEST_FEE"`
	MentorReward          int `yaml:"mentor_reward" env:"LEDGER_MENTOR_REWARD"`
	LearnerReward         int `yaml:"learner_reward" env:"LEDGER_LEARNER_REWARD"`
	QuizPassPercent       int `yaml:"quiz_pass_percent" env:"LEDGER_QUIZ_PASS_PERCENT"`
	CommunityCreationCost int `yaml:"community_creation_cost" env:"LEDGER_COMMUNITY_CREATION_COST"`
}

// DefaultLedgerConfig returns the platform's standard coin policy
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		OpeningGrant:          10,
		RequestFee:            2,
		MentorReward:          5,
		LearnerReward:         1,
		QuizPassPercent:       80,
		CommunityCreationCost: 20,
	}
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if override := os.Getenv(ConfigPathEnv); override != "" {
		configPath = override
	}

	// The file is optional: defaults plus env are enough for local runs.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "skillswap"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "168h"
	config.JWT.Issuer = "skillswap.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Ledger = DefaultLedgerConfig()

	config.Cache.TTL = "5m"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.SMTP.Port = 587
	config.SMTP.FromName = "SkillSwap"
	config.SMTP.BaseURL = "http://localhost:8080"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	for name, value := range map[string]string{
		"server read timeout":  config.Server.ReadTimeout,
		"server write timeout": config.Server.WriteTimeout,
		"cache ttl":            config.Cache.TTL,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if config.Cache.Enabled && config.Cache.Addr == "" {
		return fmt.Errorf("cache is enabled but redis addr is empty")
	}

	return config.Ledger.Validate()
}

// Validate checks the coin policy for values that would break the ledger invariants
func (l LedgerConfig) Validate() error {
	if l.OpeningGrant < 0 {
		return fmt.Errorf("ledger opening grant must not be negative")
	}
	if l.RequestFee <= 0 {
		return fmt.Errorf("ledger request fee must be positive")
	}
	if l.CommunityCreationCost <= 0 {
		return fmt.Errorf("ledger community creation cost must be positive")
	}
	if l.MentorReward < 0 || l.LearnerReward < 0 {
		return fmt.Errorf("ledger rewards must not be negative")
	}
	if l.QuizPassPercent < 1 || l.QuizPassPercent > 100 {
		return fmt.Errorf("ledger quiz pass percent must be between 1 and 100")
	}
	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
