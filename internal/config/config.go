package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Generation GenerationConfig `mapstructure:"generation"`
	Store      StoreConfig      `mapstructure:"store"`
	Database   DatabaseConfig   `mapstructure:"database"`
	S3         S3Config         `mapstructure:"s3"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"` // gin mode: debug, release, test
}

// GenerationConfig selects and configures the text-generation provider.
type GenerationConfig struct {
	Provider string        `mapstructure:"provider"` // gemini or openai
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`    // Empty means the provider default
	BaseURL  string        `mapstructure:"base_url"` // Optional override
	Timeout  time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"` // memory or mongo
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"` // Empty disables plan export
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// Enabled reports whether plan export storage is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type AuthConfig struct {
	Required bool `mapstructure:"required"` // Protect trainings and schedule routes
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// LoadConfig reads configuration from path/config.yaml, a .env file in path and
// environment variables. A missing config file is not an error.
func LoadConfig(path string) (config Config, err error) {
	// .env only fills variables that are not already set
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("generation.provider", ProviderGemini)
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.timeout", "30s")
	v.SetDefault("store.backend", StoreMemory)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "swimcoach")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("auth.required", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return config, fmt.Errorf("read config file: %w", err)
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}

	// Provider-specific key names, e.g. GEMINI_API_KEY
	if config.Generation.APIKey == "" {
		switch config.Generation.Provider {
		case ProviderGemini:
			config.Generation.APIKey = os.Getenv("GEMINI_API_KEY")
		case ProviderOpenAI:
			config.Generation.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return config, nil
}

// Validate reports configuration that makes startup impossible.
func (c Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	switch c.Generation.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown generation provider %q", c.Generation.Provider)
	}
	if c.Generation.APIKey == "" {
		return fmt.Errorf("generation API key is not set (GENERATION_API_KEY or %s_API_KEY)", strings.ToUpper(c.Generation.Provider))
	}
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Auth.Required && c.JWT.Secret == "" {
		return errors.New("jwt.secret is required when auth.required is set")
	}
	return nil
}
