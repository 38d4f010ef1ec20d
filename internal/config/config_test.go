package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GENERATION_API_KEY", "key-from-env")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, ProviderGemini, cfg.Generation.Provider)
	assert.Equal(t, "key-from-env", cfg.Generation.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, 15*time.Minute, cfg.S3.PresignExpiry)
	assert.False(t, cfg.S3.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":8080"
  mode: release
generation:
  provider: openai
  api_key: from-file
  timeout: 10s
store:
  backend: mongo
s3:
  bucket_name: plans
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("SERVER_ADDRESS", ":9090")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, ProviderOpenAI, cfg.Generation.Provider)
	assert.Equal(t, "from-file", cfg.Generation.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, StoreMongo, cfg.Store.Backend)
	assert.True(t, cfg.S3.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ProviderSpecificKeyFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GENERATION_PROVIDER=openai\nOPENAI_API_KEY=sk-dotenv\n"), 0o600))
	// godotenv writes into the process environment; register cleanup for both keys
	t.Setenv("GENERATION_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("GENERATION_PROVIDER")
	os.Unsetenv("OPENAI_API_KEY")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Generation.Provider)
	assert.Equal(t, "sk-dotenv", cfg.Generation.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:     ServerConfig{Mode: "debug"},
			Generation: GenerationConfig{Provider: ProviderGemini, APIKey: "k"},
			Store:      StoreConfig{Backend: StoreMemory},
		}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"missing api key":     func(c *Config) { c.Generation.APIKey = "" },
		"unknown provider":    func(c *Config) { c.Generation.Provider = "llama" },
		"unknown store":       func(c *Config) { c.Store.Backend = "redis" },
		"auth without secret": func(c *Config) { c.Auth.Required = true },
		"unknown server mode": func(c *Config) { c.Server.Mode = "production" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
