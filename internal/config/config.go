package config

import (
	"fmt"
	"os"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Migrations MigrationsConfig `mapstructure:"migrations"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Auth       AuthConfig       `mapstructure:"auth"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Optimizer  OptimizerConfig  `mapstructure:"optimizer"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr               string `mapstructure:"addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec"`
}

type DatabaseConfig struct {
	DSN                  string `mapstructure:"dsn"`
	Slaves               string `mapstructure:"slaves"`
	MaxOpenConns         int    `mapstructure:"max_open_conns"`
	MaxIdleConns         int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec   int    `mapstructure:"conn_max_lifetime_sec"`
	ConnectRetries       int    `mapstructure:"connect_retries"`
	ConnectRetryDelaySec int    `mapstructure:"connect_retry_delay_sec"`
}

type MigrationsConfig struct {
	Path string `mapstructure:"path"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type"`
	LocalPath string `mapstructure:"local_path"`
	UploadDir string `mapstructure:"upload_dir"`
	ThumbDir  string `mapstructure:"thumb_dir"`

	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3UseSSL    bool   `mapstructure:"s3_use_ssl"`
	PublicBase  string `mapstructure:"public_base"`
}

type AuthConfig struct {
	AdminPassword string `mapstructure:"admin_password"`
	CookieName    string `mapstructure:"cookie_name"`
	SessionTTLSec int    `mapstructure:"session_ttl_sec"`
	CookieSecure  bool   `mapstructure:"cookie_secure"`
}

type CORSConfig struct {
	FrontendOrigin string `mapstructure:"frontend_origin"`
}

type OptimizerConfig struct {
	MaxWidth        int     `mapstructure:"max_width"`
	MaxHeight       int     `mapstructure:"max_height"`
	Quality         float64 `mapstructure:"quality"`
	Format          string  `mapstructure:"format"`
	MaxUploadSizeMB int     `mapstructure:"max_upload_size_mb"`
	ThumbWidth      int     `mapstructure:"thumb_width"`
	ThumbHeight     int     `mapstructure:"thumb_height"`
	ThumbQuality    float64 `mapstructure:"thumb_quality"`
}

type CatalogConfig struct {
	MaxFavorites          int `mapstructure:"max_favorites"`
	MaxFeaturedPerChannel int `mapstructure:"max_featured_per_channel"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func Load(path string) (*Config, error) {
	cfg := config.New()

	configPath := path
	if configPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			configPath = "config.yaml"
		} else if _, err := os.Stat("/app/config.yaml"); err == nil {
			configPath = "/app/config.yaml"
		} else {
			return nil, fmt.Errorf("config.yaml not found")
		}
	}

	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = ""
	}

	if err := cfg.Load(configPath, envPath, "APP"); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appConfig := &Config{}
	if err := cfg.Unmarshal(appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(appConfig)

	if err := validateConfig(appConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	zlog.Logger.Info().
		Str("storage_type", appConfig.Storage.Type).
		Int("max_width", appConfig.Optimizer.MaxWidth).
		Int("max_height", appConfig.Optimizer.MaxHeight).
		Str("format", appConfig.Optimizer.Format).
		Msg("Config loaded successfully via wbf")

	return appConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Optimizer.MaxWidth == 0 {
		cfg.Optimizer.MaxWidth = 1920
	}
	if cfg.Optimizer.MaxHeight == 0 {
		cfg.Optimizer.MaxHeight = 1920
	}
	if cfg.Optimizer.Quality == 0 {
		cfg.Optimizer.Quality = 0.8
	}
	if cfg.Optimizer.Format == "" {
		cfg.Optimizer.Format = "jpeg"
	}
	if cfg.Optimizer.MaxUploadSizeMB == 0 {
		cfg.Optimizer.MaxUploadSizeMB = 10
	}
	if cfg.Optimizer.ThumbWidth == 0 {
		cfg.Optimizer.ThumbWidth = 480
	}
	if cfg.Optimizer.ThumbHeight == 0 {
		cfg.Optimizer.ThumbHeight = 480
	}
	if cfg.Optimizer.ThumbQuality == 0 {
		cfg.Optimizer.ThumbQuality = 0.7
	}
	if cfg.Catalog.MaxFavorites == 0 {
		cfg.Catalog.MaxFavorites = 3
	}
	if cfg.Catalog.MaxFeaturedPerChannel == 0 {
		cfg.Catalog.MaxFeaturedPerChannel = 10
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "atelier_admin"
	}
	if cfg.Auth.SessionTTLSec == 0 {
		cfg.Auth.SessionTTLSec = 30 * 24 * 3600
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "uploads"
	}
	if cfg.Storage.ThumbDir == "" {
		cfg.Storage.ThumbDir = "thumbs"
	}
}

func validateConfig(cfg *Config) error {
	// Server
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.Server.ShutdownTimeoutSec <= 0 {
		return fmt.Errorf("server.shutdown_timeout_sec must be positive")
	}
	if cfg.Server.ReadTimeoutSec <= 0 {
		return fmt.Errorf("server.read_timeout_sec must be positive")
	}
	if cfg.Server.WriteTimeoutSec <= 0 {
		return fmt.Errorf("server.write_timeout_sec must be positive")
	}

	// Database
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns must be non-negative")
	}

	// Migrations
	if cfg.Migrations.Path == "" {
		return fmt.Errorf("migrations.path is required")
	}

	// Kafka
	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers must contain at least one broker")
	}
	if cfg.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required")
	}
	if cfg.Kafka.GroupID == "" {
		return fmt.Errorf("kafka.group_id is required")
	}

	// Storage
	if cfg.Storage.Type == "" {
		return fmt.Errorf("storage.type is required (local|s3)")
	}
	if cfg.Storage.Type != "local" && cfg.Storage.Type != "s3" {
		return fmt.Errorf("storage.type must be 'local' or 's3'")
	}
	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath == "" {
		return fmt.Errorf("storage.local_path is required for local storage")
	}
	if cfg.Storage.Type == "s3" {
		if cfg.Storage.S3Endpoint == "" {
			return fmt.Errorf("storage.s3_endpoint is required for s3 storage")
		}
		if cfg.Storage.S3Bucket == "" {
			return fmt.Errorf("storage.s3_bucket is required for s3 storage")
		}
		if cfg.Storage.S3AccessKey == "" || cfg.Storage.S3SecretKey == "" {
			return fmt.Errorf("storage.s3_access_key and storage.s3_secret_key are required for s3 storage")
		}
	}

	// Auth
	if cfg.Auth.AdminPassword == "" {
		return fmt.Errorf("auth.admin_password is required")
	}

	// CORS
	if cfg.CORS.FrontendOrigin == "" {
		return fmt.Errorf("cors.frontend_origin is required")
	}

	// Optimizer
	if cfg.Optimizer.Quality <= 0 || cfg.Optimizer.Quality > 1 {
		return fmt.Errorf("optimizer.quality must be in (0,1]")
	}
	switch cfg.Optimizer.Format {
	case "jpeg", "png", "webp":
	default:
		return fmt.Errorf("optimizer.format must be one of jpeg, png, webp")
	}

	if cfg.Logging.Level == "" {
		return fmt.Errorf("logging.level is required")
	}

	return nil
}
