package etl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// stubSource feeds one scripted page per fetch. Every scripted page is a
// final page (row count below the fetcher's ceiling), so each Fetch call
// consumes exactly one response.
type stubSource struct {
	queries   []report.Query
	responses []*report.Page
	err       error
}

func (s *stubSource) FetchPage(ctx context.Context, q report.Query, pageToken string) (*report.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.queries = append(s.queries, q)
	if len(s.responses) == 0 {
		return &report.Page{Dimensions: q.Dimensions, Metrics: q.Metrics, IsDataGolden: true}, nil
	}
	p := s.responses[0]
	s.responses = s.responses[1:]
	return p, nil
}

type mockStore struct {
	writeFunc func(ctx context.Context, t *report.Table, key string) error
	writes    int
}

func (m *mockStore) Write(ctx context.Context, t *report.Table, key string) error {
	m.writes++
	if m.writeFunc != nil {
		return m.writeFunc(ctx, t, key)
	}
	return nil
}

type mockWarehouse struct {
	truncateFunc func(ctx context.Context, table string) error
	insertFunc   func(ctx context.Context, t *report.Table, table string) error
	procFunc     func(ctx context.Context, name string, args ...any) error
	ops          []string
}

func (m *mockWarehouse) Truncate(ctx context.Context, table string) error {
	m.ops = append(m.ops, "truncate "+table)
	if m.truncateFunc != nil {
		return m.truncateFunc(ctx, table)
	}
	return nil
}

func (m *mockWarehouse) BulkInsert(ctx context.Context, t *report.Table, table string) error {
	m.ops = append(m.ops, "insert "+table)
	if m.insertFunc != nil {
		return m.insertFunc(ctx, t, table)
	}
	return nil
}

func (m *mockWarehouse) ExecProcedure(ctx context.Context, name string, args ...any) error {
	m.ops = append(m.ops, "call "+name)
	if m.procFunc != nil {
		return m.procFunc(ctx, name, args...)
	}
	return nil
}

// scriptedTask drives Run through scripted phase results.
type scriptedTask struct {
	ds           *Dataset
	table        *report.Table
	extractErr   error
	transformErr error
	loadErr      error
	loadedWith   *report.Table
	loads        int
}

func (*scriptedTask) Name() string { return "scripted" }

func (s *scriptedTask) Extract(ctx context.Context) (*Dataset, error) {
	return s.ds, s.extractErr
}

func (s *scriptedTask) Transform(ctx context.Context, ds *Dataset) (*report.Table, error) {
	return s.table, s.transformErr
}

func (s *scriptedTask) Load(ctx context.Context, t *report.Table) error {
	s.loads++
	s.loadedWith = t
	return s.loadErr
}

func TestRun(t *testing.T) {
	task := &scriptedTask{
		ds:    &Dataset{Rows: []report.Row{{"ga:date": "20190301"}}},
		table: &report.Table{Rows: [][]any{{int64(1)}}},
	}
	if err := Run(context.Background(), task); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if task.loads != 1 || task.loadedWith != task.table {
		t.Errorf("load called %d times with %v, want once with the transformed table", task.loads, task.loadedWith)
	}
}

func TestRun_EmptyExtractIsNoop(t *testing.T) {
	task := &scriptedTask{ds: &Dataset{}}
	if err := Run(context.Background(), task); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if task.loads != 1 || task.loadedWith != nil {
		t.Errorf("load called %d times with %v, want once with nil", task.loads, task.loadedWith)
	}
}

func TestRun_PhaseErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		task *scriptedTask
		want string
	}{
		{"extract", &scriptedTask{extractErr: boom}, "extract"},
		{"transform", &scriptedTask{ds: &Dataset{}, transformErr: boom}, "transform"},
		{"load", &scriptedTask{ds: &Dataset{}, loadErr: boom}, "load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), tt.task)
			if !errors.Is(err, boom) {
				t.Fatalf("Run() = %v, want wrapped %v", err, boom)
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "scripted") {
				t.Errorf("Run() = %q, want phase %q and task name in message", err, tt.want)
			}
		})
	}
}

func newTestFetcher(src *stubSource, pageSize int) *report.Fetcher {
	return report.NewFetcher(src, pageSize, zerolog.Nop())
}
