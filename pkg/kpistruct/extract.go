package kpistruct

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/checksum"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/embedding"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/index"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/parser"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/storage"
	"go.uber.org/zap"
)

// Status is the terminal state of a successful run.
type Status string

const (
	// StatusProcessed means a KPI record was persisted.
	StatusProcessed Status = "processed"
	// StatusSkipped means the key was not a workbook and nothing was done.
	StatusSkipped Status = "skipped"
)

// Indexer receives a copy of every persisted record.
type Indexer interface {
	Upsert(ctx context.Context, e index.Entry) error
}

// Result describes a successful run.
type Result struct {
	RunID        string
	Status       Status
	SourceKey    string
	ProcessedKey string
	// Record is nil for skipped runs.
	Record *models.KpiRecord
	// Embedding reports how the embedding step went.
	Embedding embedding.Status
}

// Extractor runs the workbook-to-KPI pipeline. It holds no per-run state and
// is safe for concurrent use.
type Extractor struct {
	store    storage.ObjectStore
	embedder embedding.Embedder
	indexer  Indexer
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithEmbedder enables the embedding step.
func WithEmbedder(e embedding.Embedder) Option {
	return func(x *Extractor) { x.embedder = e }
}

// WithIndexer mirrors persisted records into an index.
func WithIndexer(i Indexer) Option {
	return func(x *Extractor) { x.indexer = i }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(x *Extractor) { x.now = now }
}

// NewExtractor creates an Extractor reading and writing through store.
func NewExtractor(store storage.ObjectStore, cfg Config, opts ...Option) *Extractor {
	x := &Extractor{
		store:  store,
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Run processes the workbook at bucket/key. Keys that are not xlsx
// workbooks are skipped without touching storage. Any failure before the
// record is written aborts the run with a *StageError.
func (x *Extractor) Run(ctx context.Context, bucket, key string) (Result, error) {
	runID := uuid.NewString()
	log := x.logger.With(zap.String("run_id", runID), zap.String("bucket", bucket), zap.String("key", key))

	wk, ok, err := ParseKey(key)
	if err != nil {
		log.Error("Rejected key", zap.Error(err))
		return Result{}, NewStageError(key, StageKey, err)
	}
	if !ok {
		log.Info("Skipping non-.xlsx key")
		return Result{RunID: runID, Status: StatusSkipped, SourceKey: key}, nil
	}

	data, err := x.store.Get(ctx, bucket, key)
	if err != nil {
		log.Error("Failed to fetch workbook", zap.Error(err))
		return Result{}, NewStageError(key, StageFetch, err)
	}
	sum := checksum.Sum(data)

	wb, err := parser.ResolveWorkbook(data)
	if err != nil {
		log.Error("Failed to resolve sheets", zap.Error(err))
		return Result{}, NewStageError(key, StageSheets, err)
	}
	log.Debug("Sheets resolved",
		zap.String("checksum", sum),
		zap.Strings("sheets", wb.SheetNames),
		zap.String("balancesheet_range", parser.UsedRange(wb.BalanceSheet)),
		zap.String("pnl_range", parser.UsedRange(wb.ProfitAndLoss)),
		zap.Int("pnl_values", parser.CountValues(wb.ProfitAndLoss)))

	scalars := ExtractScalars(wb)
	logMissingScalars(log, scalars)
	ratios := DeriveRatios(scalars)

	outcome := embedding.Attempt(ctx, x.embedder, embedding.Request{
		OwnerID:  wk.OwnerID,
		BaseName: wk.BaseName,
		KPIs:     ratios,
	})
	switch outcome.Status {
	case embedding.StatusFailed:
		log.Warn("Embedding failed, continuing without it",
			zap.String("embedder", x.embedder.Name()), zap.Error(outcome.Err))
	case embedding.StatusUnavailable:
		log.Debug("Embedding not configured")
	}

	createdAt := x.now()
	record := &models.KpiRecord{
		SourceKey:    key,
		ParsedValues: scalars,
		KPIs:         ratios,
		Embedding:    outcome.Vector,
		Timestamp:    models.FormatTimestamp(createdAt),
	}

	body, err := json.Marshal(record)
	if err != nil {
		log.Error("Failed to encode record", zap.Error(err))
		return Result{}, NewStageError(key, StageEncode, err)
	}

	processedKey := ProcessedKey(x.cfg.OutputPrefix, wk)
	if err := x.store.Put(ctx, x.cfg.BucketName, processedKey, body, storage.ContentTypeJSON); err != nil {
		log.Error("Failed to persist record", zap.String("processed_key", processedKey), zap.Error(err))
		return Result{}, NewStageError(key, StagePersist, fmt.Errorf("%w: %v", ErrPersistence, err))
	}

	if x.indexer != nil {
		err := x.indexer.Upsert(ctx, index.Entry{
			OwnerID:      wk.OwnerID,
			BaseName:     wk.BaseName,
			SourceKey:    key,
			Checksum:     sum,
			ParsedValues: scalars,
			KPIs:         ratios,
			Embedding:    outcome.Vector,
			CreatedAt:    createdAt,
		})
		if err != nil {
			log.Warn("Failed to index record", zap.Error(err))
		}
	}

	log.Info("Processed workbook",
		zap.String("processed_key", processedKey),
		zap.Stringer("embedding", outcome.Status))

	return Result{
		RunID:        runID,
		Status:       StatusProcessed,
		SourceKey:    key,
		ProcessedKey: processedKey,
		Record:       record,
		Embedding:    outcome.Status,
	}, nil
}

func logMissingScalars(log *zap.Logger, s models.Scalars) {
	for label, v := range map[string]*float64{
		models.LabelCapitalAccount: s.CapitalAccount,
		models.LabelGrossProfit:    s.GrossProfit,
		models.LabelNetProfit:      s.NetProfit,
		models.LabelRevenue:        s.Revenue,
	} {
		if v == nil {
			log.Debug("Label not found or not numeric", zap.String("label", label))
		}
	}
}
