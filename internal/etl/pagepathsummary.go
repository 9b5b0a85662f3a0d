package etl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/rename"
	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// StagingPagePathSummaryTable is the relational staging table the page-path
// summary task truncates and reloads on every run.
const StagingPagePathSummaryTable = "StagingDailySiteContentPagePathSummary"

// pagePathSummaryKey is the grouping key the summary collapses onto.
var pagePathSummaryKey = []string{"ga:date", "ga:country", "ga:pagePath"}

var pagePathSummaryMetrics = []string{"ga:pageviews", "ga:uniquePageviews"}

var pagePathSummarySchema = report.Schema{
	{Name: "ViewId", Type: report.TypeInt64},
	{Name: "DateMst", Type: report.TypeString},
	{Name: "Country", Type: report.TypeString},
	{Name: "PagePath", Type: report.TypeString},
	{Name: "Pageviews", Type: report.TypeInt64},
	{Name: "UniquePageviews", Type: report.TypeInt64},
}

// PagePathSummaryConfig parameterizes one page-path summary window.
type PagePathSummaryConfig struct {
	ViewID    int64
	StartDate string
	EndDate   string
}

// PagePathSummary collapses site-content traffic onto the date, country and
// page path key, summing pageview counts across all other dimensions, and
// stages the summary in the warehouse.
type PagePathSummary struct {
	fetcher   *report.Fetcher
	warehouse Warehouse
	mapper    *rename.Mapper
	cfg       PagePathSummaryConfig
	log       zerolog.Logger
}

func NewPagePathSummary(fetcher *report.Fetcher, warehouse Warehouse, cfg PagePathSummaryConfig, log zerolog.Logger) *PagePathSummary {
	return &PagePathSummary{
		fetcher:   fetcher,
		warehouse: warehouse,
		mapper:    rename.NewMapper(rename.Columns, log),
		cfg:       cfg,
		log:       log,
	}
}

func (*PagePathSummary) Name() string { return "page-path-summary" }

// Extract fetches pageview counts over the full site-content dimension set,
// so the summary collapses exactly the rows the site-content export carries.
func (p *PagePathSummary) Extract(ctx context.Context) (*Dataset, error) {
	q := report.Query{
		StartDate:  p.cfg.StartDate,
		EndDate:    p.cfg.EndDate,
		Metrics:    pagePathSummaryMetrics,
		Dimensions: siteContentDimensions,
	}
	r, err := p.fetcher.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return OuterJoin(siteContentDimensions, r), nil
}

// Transform groups rows on the summary key, sums the metric columns under
// their sum(...) names, renames, and projects onto the staging schema.
func (p *PagePathSummary) Transform(ctx context.Context, ds *Dataset) (*report.Table, error) {
	if ds.Empty() {
		p.log.Warn().Msg("empty page path dataset, nothing to summarize")
		return nil, nil
	}
	grouped := groupSum(ds, pagePathSummaryKey, pagePathSummaryMetrics)
	_, rows := renameRows(p.mapper, grouped)
	return assembleTable(pagePathSummarySchema, p.cfg.ViewID, rows), nil
}

// Load truncates and reloads the staging table. A nil or empty table loads
// nothing and is not an error.
func (p *PagePathSummary) Load(ctx context.Context, t *report.Table) error {
	if t.Empty() {
		p.log.Info().Msg("no summary rows to stage, skipping warehouse load")
		return nil
	}
	if err := p.warehouse.Truncate(ctx, StagingPagePathSummaryTable); err != nil {
		return fmt.Errorf("%w: truncate %s: %v", ErrSinkWrite, StagingPagePathSummaryTable, err)
	}
	if err := p.warehouse.BulkInsert(ctx, t, StagingPagePathSummaryTable); err != nil {
		return fmt.Errorf("%w: insert into %s: %v", ErrSinkWrite, StagingPagePathSummaryTable, err)
	}
	p.log.Info().Int("rows", len(t.Rows)).Str("table", StagingPagePathSummaryTable).Msg("staged page path summary rows")
	return nil
}

// groupSum collapses a dataset onto key, summing each metric column under
// its aggregate name "sum(<metric>)". Group order follows first appearance.
// Metric cells that are absent or non-numeric contribute nothing to a sum;
// a group whose cells were all absent keeps the aggregate absent too.
func groupSum(ds *Dataset, key, metrics []string) *Dataset {
	out := &Dataset{Key: append([]string(nil), key...), Columns: append([]string(nil), key...)}
	aggNames := make([]string, len(metrics))
	for i, m := range metrics {
		aggNames[i] = "sum(" + m + ")"
		out.Columns = append(out.Columns, aggNames[i])
	}

	index := make(map[string]int)
	for _, row := range ds.Rows {
		k := rowKey(key, row)
		i, seen := index[k]
		if !seen {
			i = len(out.Rows)
			index[k] = i
			grouped := report.Row{}
			for _, c := range key {
				if v, ok := row[c]; ok {
					grouped[c] = v
				}
			}
			out.Rows = append(out.Rows, grouped)
		}
		for j, m := range metrics {
			v, ok := row[m]
			if !ok {
				continue
			}
			out.Rows[i][aggNames[j]] = addValues(out.Rows[i][aggNames[j]], v)
		}
	}
	return out
}

// addValues sums two typed metric cells. Mixed int and float sums promote
// to float; a non-numeric operand is ignored in favor of the other.
func addValues(a, b any) any {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x + y
		case float64:
			return float64(x) + y
		}
		return x
	case float64:
		switch y := b.(type) {
		case int64:
			return x + float64(y)
		case float64:
			return x + y
		}
		return x
	case nil:
		return b
	}
	return a
}
