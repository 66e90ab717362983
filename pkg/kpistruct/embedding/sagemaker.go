package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
)

// InvokeAPI is the subset of the SageMaker runtime client used here.
type InvokeAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// SageMakerClient embeds KPI requests with a SageMaker inference endpoint.
type SageMakerClient struct {
	api      InvokeAPI
	endpoint string
}

type sagemakerRequest struct {
	Inputs Request `json:"inputs"`
}

type sagemakerResponse struct {
	Embeddings []float64 `json:"embeddings"`
}

// NewSageMakerClient creates a client for the named endpoint.
func NewSageMakerClient(api InvokeAPI, endpoint string) *SageMakerClient {
	return &SageMakerClient{api: api, endpoint: endpoint}
}

// Embed sends {"inputs": req} and reads {"embeddings": [...]}.
func (c *SageMakerClient) Embed(ctx context.Context, req Request) ([]float64, error) {
	body, err := json.Marshal(sagemakerRequest{Inputs: req})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	out, err := c.api.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(c.endpoint),
		Body:         body,
		ContentType:  aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("invoke endpoint %s: %w", c.endpoint, err)
	}
	if len(out.Body) == 0 {
		return nil, ErrNoEmbeddings
	}

	var resp sagemakerResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, ErrNoEmbeddings
	}
	return resp.Embeddings, nil
}

// Name returns the engine name.
func (c *SageMakerClient) Name() string {
	return "sagemaker:" + c.endpoint
}
