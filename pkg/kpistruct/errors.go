package kpistruct

import (
	"errors"
	"fmt"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/parser"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/storage"
)

// ErrMalformedKey indicates the storage key has no owner segment.
var ErrMalformedKey = errors.New("malformed key")

// ErrParse indicates the object is not a valid xlsx workbook.
var ErrParse = parser.ErrInvalidWorkbook

// ErrNotFound indicates the workbook object is absent or empty.
var ErrNotFound = storage.ErrNotFound

// ErrPersistence indicates the KPI record could not be written.
var ErrPersistence = errors.New("persistence error")

// MissingSheetsError names the required sheets a workbook lacks.
type MissingSheetsError = parser.MissingSheetsError

// Stage names a step of the extraction pipeline.
type Stage string

const (
	StageKey     Stage = "key"
	StageFetch   Stage = "fetch"
	StageSheets  Stage = "sheets"
	StageEncode  Stage = "encode"
	StagePersist Stage = "persist"
)

// StageError represents an error that aborted an extraction run.
type StageError struct {
	Key   string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("extraction of %q failed at %s: %v", e.Key, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(key string, stage Stage, err error) *StageError {
	return &StageError{
		Key:   key,
		Stage: stage,
		Err:   err,
	}
}
