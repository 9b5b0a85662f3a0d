package etl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/rename"
	"github.com/dataeng-io/webanalytics-etl/internal/report"
	"github.com/dataeng-io/webanalytics-etl/internal/sink/s3"
)

// siteContentDimensions is the shared dimension key of every site-content
// query. Two metric batches exist because the full metric list exceeds the
// reporting API's per-request ceiling.
var siteContentDimensions = []string{
	"ga:date",
	"ga:sourceMedium",
	"ga:country",
	"ga:landingPagePath",
	"ga:hostname",
	"ga:pagePath",
	"ga:previousPagePath",
	"ga:pageDepth",
	"ga:exitPagePath",
}

var siteContentMetricsA = []string{
	"ga:pageviews",
	"ga:uniquePageviews",
	"ga:timeOnPage",
	"ga:avgTimeOnPage",
	"ga:entrances",
	"ga:bounceRate",
	"ga:exitRate",
	"ga:pageValue",
}

var siteContentMetricsB = []string{
	"ga:entranceRate",
	"ga:pageviewsPerSession",
	"ga:exits",
	"ga:avgSessionDuration",
	"ga:sessions",
}

var siteContentSchema = report.Schema{
	{Name: "ViewId", Type: report.TypeInt64},
	{Name: "DateMst", Type: report.TypeString},
	{Name: "SourceMedium", Type: report.TypeString},
	{Name: "Country", Type: report.TypeString},
	{Name: "LandingPagePath", Type: report.TypeString},
	{Name: "Hostname", Type: report.TypeString},
	{Name: "PagePath", Type: report.TypeString},
	{Name: "PreviousPagePath", Type: report.TypeString},
	{Name: "PageDepth", Type: report.TypeString},
	{Name: "ExitPagePath", Type: report.TypeString},
	{Name: "Pageviews", Type: report.TypeInt64},
	{Name: "UniquePageviews", Type: report.TypeInt64},
	{Name: "TimeOnPageSeconds", Type: report.TypeFloat64},
	{Name: "AvgTimeOnPageSeconds", Type: report.TypeFloat64},
	{Name: "Entrances", Type: report.TypeInt64},
	{Name: "BounceRate", Type: report.TypeFloat64},
	{Name: "ExitRate", Type: report.TypeFloat64},
	{Name: "PageValue", Type: report.TypeFloat64},
	{Name: "EntranceRate", Type: report.TypeFloat64},
	{Name: "PageviewsPerSession", Type: report.TypeFloat64},
	{Name: "Exits", Type: report.TypeInt64},
	{Name: "AvgSessionDurationSeconds", Type: report.TypeFloat64},
	{Name: "Sessions", Type: report.TypeInt64},
	{Name: "Source", Type: report.TypeString},
	{Name: "Medium", Type: report.TypeString},
	{Name: "PagePathLevel1", Type: report.TypeString},
	{Name: "PagePathLevel2", Type: report.TypeString},
	{Name: "LandingPagePathLevel1", Type: report.TypeString},
	{Name: "LandingPagePathLevel2", Type: report.TypeString},
	{Name: "ExitPagePathLevel1", Type: report.TypeString},
	{Name: "ExitPagePathLevel2", Type: report.TypeString},
	{Name: "PreviousPagePathLevel1", Type: report.TypeString},
	{Name: "PreviousPagePathLevel2", Type: report.TypeString},
}

// SiteContentConfig parameterizes one site-content export window.
type SiteContentConfig struct {
	ViewID        int64
	StartDate     string
	EndDate       string
	PartitionMode PartitionMode
	RunDate       string
}

// SiteContent exports the full site-content dataset for one view and one
// date window to object storage as parquet.
type SiteContent struct {
	fetcher *report.Fetcher
	store   ObjectStore
	mapper  *rename.Mapper
	cfg     SiteContentConfig
	key     string
	log     zerolog.Logger
}

// NewSiteContent builds the task and fixes its object key up front, so a
// bad date window fails before any data is fetched.
func NewSiteContent(fetcher *report.Fetcher, store ObjectStore, cfg SiteContentConfig, log zerolog.Logger) (*SiteContent, error) {
	partition, err := partitionValue(cfg.PartitionMode, cfg.StartDate, cfg.RunDate)
	if err != nil {
		return nil, fmt.Errorf("site content: %w", err)
	}
	leaf := cfg.StartDate
	if cfg.EndDate != cfg.StartDate {
		leaf = cfg.StartDate + "_" + cfg.EndDate
	}
	viewConfig := fmt.Sprintf("ViewId=%d", cfg.ViewID)
	return &SiteContent{
		fetcher: fetcher,
		store:   store,
		mapper:  rename.NewMapper(rename.Columns, log),
		cfg:     cfg,
		key:     s3.ObjectKey("site_content", viewConfig, partition, leaf, "parquet"),
		log:     log,
	}, nil
}

func (*SiteContent) Name() string { return "site-content" }

// Key returns the object key the task will write to.
func (s *SiteContent) Key() string { return s.key }

// Extract fetches both metric batches over the shared dimension key and
// outer-joins them into one dataset.
func (s *SiteContent) Extract(ctx context.Context) (*Dataset, error) {
	base := report.Query{
		StartDate:  s.cfg.StartDate,
		EndDate:    s.cfg.EndDate,
		Dimensions: siteContentDimensions,
	}

	qa := base
	qa.Metrics = siteContentMetricsA
	ra, err := s.fetcher.Fetch(ctx, qa)
	if err != nil {
		return nil, err
	}

	qb := base
	qb.Metrics = siteContentMetricsB
	rb, err := s.fetcher.Fetch(ctx, qb)
	if err != nil {
		return nil, err
	}

	if ra.Empty() {
		s.log.Warn().Msg("first site content batch returned no rows")
	}
	if rb.Empty() {
		s.log.Warn().Msg("second site content batch returned no rows")
	}
	return OuterJoin(siteContentDimensions, ra, rb), nil
}

// Transform renames every field, derives source/medium and page-path level
// features, and projects onto the export schema.
func (s *SiteContent) Transform(ctx context.Context, ds *Dataset) (*report.Table, error) {
	if ds.Empty() {
		s.log.Warn().Msg("empty site content dataset, nothing to transform")
		return nil, nil
	}
	_, rows := renameRows(s.mapper, ds)
	for _, row := range rows {
		addSourceMedium(row)
		addPathLevels(row, "PagePath")
		addPathLevels(row, "LandingPagePath")
		addPathLevels(row, "ExitPagePath")
		addPathLevels(row, "PreviousPagePath")
	}
	return assembleTable(siteContentSchema, s.cfg.ViewID, rows), nil
}

// Load writes the table to object storage. A nil or empty table loads
// nothing and is not an error.
func (s *SiteContent) Load(ctx context.Context, t *report.Table) error {
	if t.Empty() {
		s.log.Info().Str("key", s.key).Msg("no rows to upload, skipping object write")
		return nil
	}
	if err := s.store.Write(ctx, t, s.key); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrSinkWrite, s.key, err)
	}
	s.log.Info().Str("key", s.key).Int("rows", len(t.Rows)).Msg("uploaded site content table")
	return nil
}
