package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"survey-portal/survey-portal-backend/internal/survey"
	"survey-portal/survey-portal-backend/internal/survey/export"
)

// Asset source kinds.
const (
	SourceDir = "dir"
	SourceS3  = "s3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig        `json:"server"`
	Assets  AssetsConfig        `json:"assets"`
	Report  export.LayoutConfig `json:"report"`
	Logging LoggingConfig       `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	Mode           string        `json:"mode"` // gin mode: debug, release or test
	ReadTimeout    time.Duration `json:"read_timeout"`
	WriteTimeout   time.Duration `json:"write_timeout"`
	IdleTimeout    time.Duration `json:"idle_timeout"`
	MaxUploadBytes int64         `json:"max_upload_bytes"`
}

// AssetsConfig locates the letterhead and signature images.
type AssetsConfig struct {
	Source string `json:"source"` // dir or s3
	Dir    string `json:"dir"`

	Bucket          string `json:"bucket"`
	Prefix          string `json:"prefix"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`

	// CacheTTL keeps fetched assets in memory; zero disables the cache.
	CacheTTL time.Duration `json:"cache_ttl"`

	Paths  survey.AssetPaths    `json:"paths"`
	Loader export.LoaderOptions `json:"loader"`
}

// LoggingConfig
type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Mode:           "release",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxUploadBytes: 50 << 20,
		},
		Assets: AssetsConfig{
			Source: SourceDir,
			Dir:    "wwwroot",
			Paths: survey.AssetPaths{
				Background: "images/LETTER_HEAD.png",
				Signature:  "images/signature_owner.png",
			},
			CacheTTL: 5 * time.Minute,
			Loader:   export.DefaultLoaderOptions(),
		},
		Report:  export.DefaultLayoutConfig(),
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from file and environment variables.
// envFiles are read with godotenv first; missing ones are skipped. A missing
// config file is not an error either.
func LoadConfig(configPath string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	overrideWithEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if n := os.Getenv("MAX_UPLOAD_BYTES"); n != "" {
		if v, err := strconv.ParseInt(n, 10, 64); err == nil {
			config.Server.MaxUploadBytes = v
		}
	}

	if src := os.Getenv("ASSETS_SOURCE"); src != "" {
		config.Assets.Source = strings.ToLower(src)
	}
	if dir := os.Getenv("ASSETS_DIR"); dir != "" {
		config.Assets.Dir = dir
	}
	if bucket := os.Getenv("ASSETS_BUCKET"); bucket != "" {
		config.Assets.Bucket = bucket
	}
	if prefix := os.Getenv("ASSETS_PREFIX"); prefix != "" {
		config.Assets.Prefix = prefix
	}
	if endpoint := os.Getenv("ASSETS_ENDPOINT"); endpoint != "" {
		config.Assets.Endpoint = endpoint
	}
	if ttl := os.Getenv("ASSETS_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.Assets.CacheTTL = d
		}
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		config.Assets.Region = region
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		config.Assets.AccessKeyID = key
	}
	if secret := os.Getenv("AWS_SECRET_ACCESS_KEY"); secret != "" {
		config.Assets.SecretAccessKey = secret
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// Validate reports the first setting the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", c.Server.Mode)
	}
	switch c.Assets.Source {
	case SourceDir:
		if c.Assets.Dir == "" {
			return errors.New("assets.dir is required for the dir source")
		}
	case SourceS3:
		if c.Assets.Bucket == "" {
			return errors.New("assets.bucket is required for the s3 source")
		}
	default:
		return fmt.Errorf("unknown assets source %q", c.Assets.Source)
	}
	if c.Assets.Paths.Background == "" {
		return errors.New("assets.paths.background is required")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return c.Report.Validate()
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewLogger builds a zap logger at the configured level.
func (c LoggingConfig) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc.Level = level
	return zc.Build()
}
