// Package embedding produces vector embeddings of KPI records through an
// external inference service. Embedding is best-effort: callers receive an
// Outcome rather than an error.
package embedding

import (
	"context"
	"errors"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
)

// ErrNoEmbeddings indicates the service answered without a vector.
var ErrNoEmbeddings = errors.New("no embeddings returned")

// Request is the payload sent to the inference service.
type Request struct {
	OwnerID  string        `json:"user_sub"`
	BaseName string        `json:"file"`
	KPIs     models.Ratios `json:"kpis"`
}

// Embedder turns a KPI request into a vector.
type Embedder interface {
	Embed(ctx context.Context, req Request) ([]float64, error)
	// Name identifies the backend in logs.
	Name() string
}

// Status classifies an embedding attempt.
type Status int

const (
	// StatusUnavailable means no embedder is configured.
	StatusUnavailable Status = iota
	// StatusFailed means the embedder was configured but the call failed.
	StatusFailed
	// StatusOK means a vector was produced.
	StatusOK
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	default:
		return "unavailable"
	}
}

// Outcome is the result of a best-effort embedding attempt.
type Outcome struct {
	Status Status
	// Vector is set only when Status is StatusOK.
	Vector []float64
	// Err is set only when Status is StatusFailed.
	Err error
}

// Attempt calls e and folds every failure into the Outcome. A nil embedder
// yields StatusUnavailable without any call.
func Attempt(ctx context.Context, e Embedder, req Request) Outcome {
	if e == nil {
		return Outcome{Status: StatusUnavailable}
	}
	vec, err := e.Embed(ctx, req)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	if len(vec) == 0 {
		return Outcome{Status: StatusFailed, Err: ErrNoEmbeddings}
	}
	return Outcome{Status: StatusOK, Vector: vec}
}
