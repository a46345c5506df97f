package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Summarizer SummarizerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for report exports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SummarizerProviderConfig holds settings for a single LLM summarizer provider.
type SummarizerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// SummarizerConfig holds LLM summarizer settings with primary/secondary
// provider support.
type SummarizerConfig struct {
	Primary   SummarizerProviderConfig `mapstructure:"primary"`
	Secondary SummarizerProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary summarizer provider config, or nil if not configured.
func (s *SummarizerConfig) PrimaryConfig() *SummarizerProviderConfig {
	if s.Primary.Provider != "" {
		return &s.Primary
	}
	return nil
}

// SecondaryConfig returns the secondary summarizer provider config, or nil if not configured.
func (s *SummarizerConfig) SecondaryConfig() *SummarizerProviderConfig {
	if s.Secondary.Provider != "" {
		return &s.Secondary
	}
	return nil
}

// Load reads configuration from environment variables with the INSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "inscan")
	v.SetDefault("db.password", "inscan_secret")
	v.SetDefault("db.name", "inscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-northeast-2")
	v.SetDefault("s3.bucket", "inscan-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Summarizer defaults
	v.SetDefault("summarizer.primary.provider", "openai")
	v.SetDefault("summarizer.primary.api_key", "")
	v.SetDefault("summarizer.primary.default_model", "gpt-4o-mini")
	v.SetDefault("summarizer.primary.timeout_secs", 120)
	v.SetDefault("summarizer.secondary.provider", "")
	v.SetDefault("summarizer.secondary.api_key", "")
	v.SetDefault("summarizer.secondary.default_model", "")
	v.SetDefault("summarizer.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                        "INSCAN_SERVER_PORT",
		"server.read_timeout":                "INSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":               "INSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":                 "INSCAN_SERVER_ENVIRONMENT",
		"db.host":                            "INSCAN_DB_HOST",
		"db.port":                            "INSCAN_DB_PORT",
		"db.user":                            "INSCAN_DB_USER",
		"db.password":                        "INSCAN_DB_PASSWORD",
		"db.name":                            "INSCAN_DB_NAME",
		"db.sslmode":                         "INSCAN_DB_SSLMODE",
		"db.max_open":                        "INSCAN_DB_MAX_OPEN",
		"db.max_idle":                        "INSCAN_DB_MAX_IDLE",
		"s3.region":                          "INSCAN_S3_REGION",
		"s3.bucket":                          "INSCAN_S3_BUCKET",
		"s3.endpoint":                        "INSCAN_S3_ENDPOINT",
		"s3.access_key":                      "INSCAN_S3_ACCESS_KEY",
		"s3.secret_key":                      "INSCAN_S3_SECRET_KEY",
		"s3.presign_expiry":                  "INSCAN_S3_PRESIGN_EXPIRY",
		"log.level":                          "INSCAN_LOG_LEVEL",
		"log.format":                         "INSCAN_LOG_FORMAT",
		"cors.allowed_origins":               "INSCAN_CORS_ALLOWED_ORIGINS",
		"summarizer.primary.provider":        "INSCAN_SUMMARIZER_PRIMARY_PROVIDER",
		"summarizer.primary.api_key":         "INSCAN_SUMMARIZER_PRIMARY_API_KEY",
		"summarizer.primary.default_model":   "INSCAN_SUMMARIZER_PRIMARY_DEFAULT_MODEL",
		"summarizer.primary.timeout_secs":    "INSCAN_SUMMARIZER_PRIMARY_TIMEOUT_SECS",
		"summarizer.secondary.provider":      "INSCAN_SUMMARIZER_SECONDARY_PROVIDER",
		"summarizer.secondary.api_key":       "INSCAN_SUMMARIZER_SECONDARY_API_KEY",
		"summarizer.secondary.default_model": "INSCAN_SUMMARIZER_SECONDARY_DEFAULT_MODEL",
		"summarizer.secondary.timeout_secs":  "INSCAN_SUMMARIZER_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Summarizer = SummarizerConfig{
		Primary: SummarizerProviderConfig{
			Provider:     v.GetString("summarizer.primary.provider"),
			APIKey:       v.GetString("summarizer.primary.api_key"),
			DefaultModel: v.GetString("summarizer.primary.default_model"),
			TimeoutSecs:  v.GetInt("summarizer.primary.timeout_secs"),
		},
		Secondary: SummarizerProviderConfig{
			Provider:     v.GetString("summarizer.secondary.provider"),
			APIKey:       v.GetString("summarizer.secondary.api_key"),
			DefaultModel: v.GetString("summarizer.secondary.default_model"),
			TimeoutSecs:  v.GetInt("summarizer.secondary.timeout_secs"),
		},
	}

	return cfg, nil
}
