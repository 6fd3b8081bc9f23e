package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Course    CourseConfig    `mapstructure:"course"`
	Site      SiteConfig      `mapstructure:"site"`

	// Runtime flags, set from the command line rather than the config file.
	ForceMigrate bool   `mapstructure:"-"`
	MigrateOnly  bool   `mapstructure:"-"`
	Path         string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type DatabaseConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=mysql postgres"`
	Host      string `mapstructure:"host" validate:"required"`
	Port      int    `mapstructure:"port" validate:"required"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	DBName    string `mapstructure:"dbname" validate:"required"`
	Charset   string `mapstructure:"charset"`
	SSLMode   string `mapstructure:"sslmode"`
	ParseTime bool   `mapstructure:"parse_time"`
}

// JWTConfig describes how bearer tokens issued by the hosted auth provider are
// verified. Tokens are never issued by this service.
type JWTConfig struct {
	Secret string `mapstructure:"secret" validate:"required"`
	Issuer string `mapstructure:"issuer"`
}

type StorageConfig struct {
	Type                string `mapstructure:"type" validate:"oneof=local minio oss"`
	LocalPath           string `mapstructure:"local_path"`
	PublicBaseURL       string `mapstructure:"public_base_url"`
	SignedURLTTLMinutes int    `mapstructure:"signed_url_ttl_minutes"`
	MinioEndpoint       string `mapstructure:"minio_endpoint"`
	MinioAccessID       string `mapstructure:"minio_access_key"`
	MinioSecret         string `mapstructure:"minio_secret_key"`
	MinioBucket         string `mapstructure:"minio_bucket"`
	MinioUseSSL         bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint         string `mapstructure:"oss_endpoint"`
	OSSAccessKey        string `mapstructure:"oss_access_key"`
	OSSSecretKey        string `mapstructure:"oss_secret_key"`
	OSSBucket           string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" validate:"gte=0"`
	WindowMinutes int `mapstructure:"window_minutes" validate:"gte=0"`
}

type CourseConfig struct {
	PreviewDurationSeconds int     `mapstructure:"preview_duration_seconds" validate:"gte=0"`
	CompletionThreshold    float64 `mapstructure:"completion_threshold" validate:"gte=0,lt=1"`
}

type SiteConfig struct {
	SettingsTTLSeconds int `mapstructure:"settings_ttl_seconds" validate:"gte=0"`
}

func (c CourseConfig) PreviewDuration() time.Duration {
	return time.Duration(c.PreviewDurationSeconds) * time.Second
}

func (c SiteConfig) SettingsTTL() time.Duration {
	return time.Duration(c.SettingsTTLSeconds) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")
	v.SetDefault("storage.signed_url_ttl_minutes", 15)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("course.preview_duration_seconds", 300)
	v.SetDefault("course.completion_threshold", 0.9)
	v.SetDefault("site.settings_ttl_seconds", 300)
}

// LoadConfig reads config.yaml from path and overlays ACADEMY_* and the bound
// secret environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ACADEMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.endpoint", "TRACING_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	return nil
}
