package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	Port        string `mapstructure:"APP_PORT"`
	AppURL      string `mapstructure:"APP_URL"`

	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	S3Endpoint     string `mapstructure:"S3_ENDPOINT"`
	S3PublicURL    string `mapstructure:"S3_PUBLIC_URL"`
	S3Region       string `mapstructure:"AWS_REGION"`
	S3Bucket       string `mapstructure:"S3_BUCKET_NAME"`
	S3Folder       string `mapstructure:"S3_FOLDER"`
	S3AccessKey    string `mapstructure:"AWS_ACCESS_KEY_ID"`
	S3SecretKey    string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool   `mapstructure:"S3_USE_PATH_STYLE"`

	UploadTmpDir string `mapstructure:"UPLOAD_TMP_DIR"`
	BodyLimitMB  int    `mapstructure:"BODY_LIMIT_MB"`

	NatsURL      string `mapstructure:"NATS_URL"`
	OtelEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

var defaults = map[string]any{
	"SERVICE_NAME":                "mercado-service",
	"LOG_LEVEL":                   "info",
	"APP_PORT":                    "5000",
	"APP_URL":                     "http://localhost:3000",
	"DB_USER":                     "postgres",
	"DB_PASSWORD":                 "postgres",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     "5432",
	"DB_NAME":                     "mercado",
	"DB_SSLMODE":                  "disable",
	"JWT_SECRET":                  "",
	"JWT_TTL":                     "0s",
	"S3_ENDPOINT":                 "http://localhost:9000",
	"S3_PUBLIC_URL":               "",
	"AWS_REGION":                  "us-east-1",
	"S3_BUCKET_NAME":              "mercado",
	"S3_FOLDER":                   "upload",
	"AWS_ACCESS_KEY_ID":           "",
	"AWS_SECRET_ACCESS_KEY":       "",
	"S3_USE_PATH_STYLE":           true,
	"UPLOAD_TMP_DIR":              "uploads-tmp",
	"BODY_LIMIT_MB":               10,
	"NATS_URL":                    "",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

// Load reads .env.dev when present and then the process environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.dev"); err != nil {
		slog.Info("No .env.dev file found, reading from environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.S3PublicURL == "" {
		cfg.S3PublicURL = cfg.S3Endpoint + "/" + cfg.S3Bucket
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("APP_PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.S3Bucket == "" {
		return errors.New("S3_BUCKET_NAME is required")
	}
	if c.JWTTTL < 0 {
		return errors.New("JWT_TTL must not be negative")
	}

	return nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
