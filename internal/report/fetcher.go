package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Source is the collaborator that produces one report page per call. The
// concrete implementation owns transport, auth and response flattening.
type Source interface {
	FetchPage(ctx context.Context, q Query, pageToken string) (*Page, error)
}

// Result is the terminal state of a fetch: the accumulated rows, the headers
// they follow, and every raw page kept for downstream quality inspection.
type Result struct {
	Dimensions []string
	Metrics    []string
	Rows       []Row
	Pages      []*Page
}

// Empty reports whether the fetch produced no rows.
func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Fetcher drains a paginated report source. Pages fetch strictly in
// sequence; each request depends on the continuation token of the previous
// response, so there is nothing to parallelize.
type Fetcher struct {
	source   Source
	pageSize int
	log      zerolog.Logger
}

// NewFetcher creates a Fetcher. pageSize is the per-request row ceiling of
// the source API; callers outside tests pass MaxPageSize.
func NewFetcher(source Source, pageSize int, log zerolog.Logger) *Fetcher {
	return &Fetcher{source: source, pageSize: pageSize, log: log}
}

// Fetch accumulates every page of the query's result set. Any error aborts
// the whole fetch and discards partial accumulation.
func (f *Fetcher) Fetch(ctx context.Context, q Query) (*Result, error) {
	if len(q.Metrics) > MaxMetrics {
		f.log.Warn().Int("metrics", len(q.Metrics)).Int("max", MaxMetrics).
			Msg("query asks for more metrics than the reporting API allows per request")
	}
	if len(q.Dimensions) > MaxDimensions {
		f.log.Warn().Int("dimensions", len(q.Dimensions)).Int("max", MaxDimensions).
			Msg("query asks for more dimensions than the reporting API allows per request")
	}

	result := &Result{}
	token := StartPageToken
	for pageNum := 0; ; pageNum++ {
		page, err := f.source.FetchPage(ctx, q, token)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrSourceUnavailable, pageNum, err)
		}

		f.checkQuality(page, pageNum)

		if pageNum == 0 {
			result.Dimensions = page.Dimensions
			result.Metrics = page.Metrics
		}
		result.Rows = append(result.Rows, page.Rows...)
		result.Pages = append(result.Pages, page)

		if len(page.Rows) < f.pageSize {
			return result, nil
		}
		// A full page means the result set is at the ceiling and another
		// page is required. The possible undercount is worth a log line.
		f.log.Warn().Int("page", pageNum).Str("next_page_token", page.NextPageToken).
			Msg("page is at the row ceiling, fetching the next page")
		if page.NextPageToken == "" {
			return nil, fmt.Errorf("%w: page %d is at the row ceiling but carries no continuation token", ErrSourceUnavailable, pageNum)
		}
		token = page.NextPageToken
	}
}

// checkQuality surfaces the data-quality caveats of analytics reporting:
// non-golden data can change on a later identical request, and sampled data
// is estimated rather than exact. Both are warnings, never errors.
func (f *Fetcher) checkQuality(page *Page, pageNum int) {
	if !page.IsDataGolden {
		f.log.Warn().Int("page", pageNum).
			Msg("result set is not golden, the same request may return different data later")
	}
	if page.Sampled() {
		f.log.Warn().Int("page", pageNum).
			Ints64("samples_read_counts", page.SamplesReadCounts).
			Ints64("sampling_space_sizes", page.SamplingSpaceSizes).
			Msg("result set is sampled, metric values are estimates")
	}
}
