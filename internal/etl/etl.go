// Package etl composes the paginated report fetcher, the feature extractor
// and the column renamer into extract/transform/load tasks, one per dataset
// type, each writing to an object-storage or relational staging sink.
package etl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dataeng-io/webanalytics-etl/internal/logger"
	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// ErrSinkWrite wraps any failure while writing to a sink. The task does not
// retry; retry and idempotence policy belong to the sink collaborator.
var ErrSinkWrite = errors.New("etl: sink write failure")

// Task is the extract/transform/load contract. A task instance executes its
// three phases exactly once, in order. Transform returns a nil table when
// the extracted dataset is empty; Load treats a nil table as a logged no-op.
type Task interface {
	Name() string
	Extract(ctx context.Context) (*Dataset, error)
	Transform(ctx context.Context, ds *Dataset) (*report.Table, error)
	Load(ctx context.Context, t *report.Table) error
}

// ObjectStore is the object-storage sink collaborator.
type ObjectStore interface {
	Write(ctx context.Context, t *report.Table, key string) error
}

// Warehouse is the relational staging sink collaborator.
type Warehouse interface {
	Truncate(ctx context.Context, table string) error
	BulkInsert(ctx context.Context, t *report.Table, table string) error
	ExecProcedure(ctx context.Context, name string, args ...any) error
}

// Run executes a task's three phases under a run-scoped logger. A failed
// extract or load propagates to the caller; an empty extract ends the run
// as a no-op, not an error.
func Run(ctx context.Context, task Task) error {
	log := logger.FromContext(ctx).With().
		Str("task", task.Name()).
		Str("run_id", uuid.NewString()).
		Logger()
	ctx = logger.WithContext(ctx, log)

	log.Info().Msg("extracting")
	ds, err := task.Extract(ctx)
	if err != nil {
		return fmt.Errorf("task %s: extract: %w", task.Name(), err)
	}

	log.Info().Int("rows", ds.Len()).Msg("transforming")
	table, err := task.Transform(ctx, ds)
	if err != nil {
		return fmt.Errorf("task %s: transform: %w", task.Name(), err)
	}

	log.Info().Msg("loading")
	if err := task.Load(ctx, table); err != nil {
		return fmt.Errorf("task %s: load: %w", task.Name(), err)
	}

	log.Info().Msg("task complete")
	return nil
}
