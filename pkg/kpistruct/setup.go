package kpistruct

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/embedding"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/index"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/storage"
	"go.uber.org/zap"
)

// Services are the collaborators built from a Config.
type Services struct {
	S3        *s3.Client
	Store     storage.ObjectStore
	Presigner *storage.Presigner
	Embedder  embedding.Embedder
	// Index is nil unless DatabaseURL is set.
	Index *index.Store
}

// Close releases the services' resources.
func (s *Services) Close() {
	if s.Index != nil {
		s.Index.Close()
	}
}

// Extractor builds an Extractor over the services.
func (s *Services) Extractor(cfg Config, logger *zap.Logger) *Extractor {
	opts := []Option{WithLogger(logger)}
	if s.Embedder != nil {
		opts = append(opts, WithEmbedder(s.Embedder))
	}
	if s.Index != nil {
		opts = append(opts, WithIndexer(s.Index))
	}
	return NewExtractor(s.Store, cfg, opts...)
}

// NewServices validates cfg and connects to AWS and, when configured, the
// embedding backend and the KPI index.
func NewServices(ctx context.Context, cfg Config, logger *zap.Logger) (*Services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	svc := &Services{
		S3:        client,
		Store:     storage.NewS3Store(client),
		Presigner: storage.NewPresigner(s3.NewPresignClient(client), cfg.BucketName),
	}

	svc.Embedder, err = newEmbedder(ctx, cfg, awsCfg)
	if err != nil {
		return nil, err
	}
	if svc.Embedder != nil {
		logger.Info("Embedding enabled", zap.String("embedder", svc.Embedder.Name()))
	}

	if cfg.DatabaseURL != "" {
		svc.Index, err = index.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("KPI index enabled")
	}

	return svc, nil
}

func newEmbedder(ctx context.Context, cfg Config, awsCfg aws.Config) (embedding.Embedder, error) {
	if !cfg.EmbeddingEnabled() {
		return nil, nil
	}
	switch cfg.EmbeddingProvider {
	case ProviderGenAI:
		c, err := embedding.NewGenAIClient(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return embedding.NewSageMakerClient(sagemakerruntime.NewFromConfig(awsCfg), cfg.EmbeddingEndpoint), nil
	}
}
