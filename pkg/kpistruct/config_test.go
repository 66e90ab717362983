package kpistruct

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable LoadConfig reads, restoring them on cleanup.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"BUCKET_NAME", "EMBED_ENDPOINT", "EMBED_PROVIDER", "GEMINI_API_KEY", "GENAI_MODEL",
		"AWS_REGION", "DATABASE_URL", "OUTPUT_PREFIX", "KPI_CONCURRENCY", "TRAINING_KEY",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Chdir(t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUCKET_NAME", "sfa-quarterly-reports")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sfa-quarterly-reports", cfg.BucketName)
	assert.Equal(t, ProviderSageMaker, cfg.EmbeddingProvider)
	assert.Equal(t, "processed", cfg.OutputPrefix)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "forecast/train-data.csv", cfg.TrainingKey)
	assert.False(t, cfg.EmbeddingEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "kpistruct.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bucket_name: from-yaml
embedding_endpoint: yaml-endpoint
concurrency: 8
`), 0644))
	require.NoError(t, os.WriteFile(".env", []byte("EMBED_ENDPOINT=dotenv-endpoint\n"), 0644))
	t.Setenv("BUCKET_NAME", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.BucketName)
	assert.Equal(t, "dotenv-endpoint", cfg.EmbeddingEndpoint)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.EmbeddingEnabled())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad integer", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KPI_CONCURRENCY", "many")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "KPI_CONCURRENCY")
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"no bucket", func(c *Config) { c.BucketName = "" }, false},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, false},
		{"empty prefix", func(c *Config) { c.OutputPrefix = "" }, false},
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "bedrock" }, false},
		{"genai provider", func(c *Config) { c.EmbeddingProvider = ProviderGenAI }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestEmbeddingEnabled(t *testing.T) {
	cfg := testConfig()
	assert.False(t, cfg.EmbeddingEnabled())

	cfg.EmbeddingEndpoint = "financial-embed-endpoint"
	assert.True(t, cfg.EmbeddingEnabled())

	cfg.EmbeddingProvider = ProviderGenAI
	assert.False(t, cfg.EmbeddingEnabled())
	cfg.GenAIAPIKey = "key"
	assert.True(t, cfg.EmbeddingEnabled())
}
