// Package kpistruct extracts KPI records from uploaded financial workbooks.
package kpistruct

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EmbeddingProvider selects the inference backend.
type EmbeddingProvider string

const (
	// ProviderSageMaker invokes a SageMaker endpoint named by EmbeddingEndpoint.
	ProviderSageMaker EmbeddingProvider = "sagemaker"
	// ProviderGenAI uses a Gemini embedding model.
	ProviderGenAI EmbeddingProvider = "genai"
)

// Config configures the extractor and its collaborators.
type Config struct {
	// BucketName is where KPI records are written. Required.
	BucketName string `yaml:"bucket_name"`
	// EmbeddingEndpoint names the SageMaker endpoint. Empty disables
	// embeddings for the sagemaker provider.
	EmbeddingEndpoint string `yaml:"embedding_endpoint"`
	// EmbeddingProvider selects the backend. Defaults to sagemaker.
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider"`
	// GenAIAPIKey enables the genai provider.
	GenAIAPIKey string `yaml:"genai_api_key"`
	// GenAIModel overrides the Gemini embedding model.
	GenAIModel string `yaml:"genai_model"`
	// Region is the AWS region. Empty uses the SDK default chain.
	Region string `yaml:"region"`
	// DatabaseURL enables the Postgres KPI index when set.
	DatabaseURL string `yaml:"database_url"`
	// OutputPrefix is the first segment of KPI record keys.
	OutputPrefix string `yaml:"output_prefix"`
	// Concurrency bounds the runs in flight for one event.
	Concurrency int `yaml:"concurrency"`
	// TrainingKey is where the forecast training CSV is written.
	TrainingKey string `yaml:"training_key"`
}

// DefaultConfig returns a config with defaults filled in.
func DefaultConfig() Config {
	return Config{
		EmbeddingProvider: ProviderSageMaker,
		OutputPrefix:      "processed",
		Concurrency:       4,
		TrainingKey:       "forecast/train-data.csv",
	}
}

// LoadConfig builds a Config from defaults, the optional YAML file at path,
// a .env file in the working directory (if any) and environment variables,
// later sources winning.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	setString("BUCKET_NAME", &c.BucketName)
	setString("EMBED_ENDPOINT", &c.EmbeddingEndpoint)
	setString("GEMINI_API_KEY", &c.GenAIAPIKey)
	setString("GENAI_MODEL", &c.GenAIModel)
	setString("AWS_REGION", &c.Region)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("OUTPUT_PREFIX", &c.OutputPrefix)
	setString("TRAINING_KEY", &c.TrainingKey)
	if v := os.Getenv("EMBED_PROVIDER"); v != "" {
		c.EmbeddingProvider = EmbeddingProvider(v)
	}

	var err error
	c.Concurrency, err = getEnvAsInt("KPI_CONCURRENCY", c.Concurrency)
	return err
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.BucketName == "" {
		return errors.New("bucket name is required (BUCKET_NAME)")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.OutputPrefix == "" {
		return errors.New("output prefix must not be empty")
	}
	switch c.EmbeddingProvider {
	case ProviderSageMaker, ProviderGenAI:
	default:
		return fmt.Errorf("invalid embedding provider: %s (must be sagemaker or genai)", c.EmbeddingProvider)
	}
	return nil
}

// EmbeddingEnabled reports whether an embedder should be built.
func (c Config) EmbeddingEnabled() bool {
	switch c.EmbeddingProvider {
	case ProviderGenAI:
		return c.GenAIAPIKey != ""
	default:
		return c.EmbeddingEndpoint != ""
	}
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}
