package kpistruct

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner processes one object key.
type Runner interface {
	Run(ctx context.Context, bucket, key string) (Result, error)
}

// Response is the structured result of handling an event.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// RecordOutcome is the result for one event record.
type RecordOutcome struct {
	Key          string `json:"key"`
	Status       string `json:"status"`
	ProcessedKey string `json:"processed_key,omitempty"`
	Error        string `json:"error,omitempty"`
}

type responseBody struct {
	Message      string          `json:"message"`
	ProcessedKey string          `json:"processed_key,omitempty"`
	Error        string          `json:"error,omitempty"`
	Results      []RecordOutcome `json:"results,omitempty"`
}

const statusError = "error"

// Handler turns object-created notifications into extraction runs.
type Handler struct {
	runner      Runner
	concurrency int
	logger      *zap.Logger
}

// NewHandler creates a Handler running at most concurrency records at once.
func NewHandler(runner Runner, concurrency int, logger *zap.Logger) *Handler {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{runner: runner, concurrency: concurrency, logger: logger}
}

// Handle processes every record of the event as an independent run. Failures
// are reported in the Response, never as a returned error.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		h.logger.Error("No S3 event record found")
		return respond(http.StatusInternalServerError, responseBody{
			Message: "Error during Excel processing",
			Error:   "no S3 event record found",
		}), nil
	}

	outcomes := make([]RecordOutcome, len(event.Records))

	var g errgroup.Group
	g.SetLimit(h.concurrency)
	for i, rec := range event.Records {
		g.Go(func() error {
			outcomes[i] = h.handleRecord(ctx, rec.S3.Bucket.Name, rec.S3.Object.Key)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Status == statusError {
			failed++
		}
	}

	if len(outcomes) == 1 {
		return singleResponse(outcomes[0]), nil
	}

	code, msg := http.StatusOK, "Processed event records successfully"
	if failed > 0 {
		code, msg = http.StatusInternalServerError, "Error during Excel processing"
	}
	return respond(code, responseBody{Message: msg, Results: outcomes}), nil
}

func (h *Handler) handleRecord(ctx context.Context, bucket, rawKey string) RecordOutcome {
	key, err := DecodeEventKey(rawKey)
	if err != nil {
		h.logger.Error("Failed to decode key", zap.String("key", rawKey), zap.Error(err))
		return RecordOutcome{Key: rawKey, Status: statusError, Error: err.Error()}
	}

	res, err := h.runner.Run(ctx, bucket, key)
	if err != nil {
		return RecordOutcome{Key: key, Status: statusError, Error: err.Error()}
	}
	return RecordOutcome{Key: key, Status: string(res.Status), ProcessedKey: res.ProcessedKey}
}

func singleResponse(o RecordOutcome) Response {
	switch o.Status {
	case string(StatusProcessed):
		return respond(http.StatusOK, responseBody{
			Message:      "Processed Excel successfully",
			ProcessedKey: o.ProcessedKey,
		})
	case string(StatusSkipped):
		return respond(http.StatusOK, responseBody{Message: "Not an .xlsx file, skipping."})
	default:
		return respond(http.StatusInternalServerError, responseBody{
			Message: "Error during Excel processing",
			Error:   o.Error,
		})
	}
}

func respond(code int, body responseBody) Response {
	data, err := json.Marshal(body)
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: `{"message":"failed to encode response"}`}
	}
	return Response{StatusCode: code, Body: string(data)}
}
