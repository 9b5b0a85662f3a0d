package etl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/rename"
	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// StagingSocialSellingTable is the relational staging table the social
// selling task truncates and reloads on every run.
const StagingSocialSellingTable = "StagingDailySiteContentSocialSellingSummary"

// socialSellingPathPatterns select the page paths that belong to social
// selling shares.
var socialSellingPathPatterns = []string{"PHX-URL", "PHX-FB"}

var socialSellingDimensions = []string{
	"ga:date",
	"ga:country",
	"ga:pagePath",
	"ga:hostname",
	"ga:landingPagePath",
	"ga:exitPagePath",
}

var socialSellingMetricsA = []string{
	"ga:pageviews",
	"ga:uniquePageviews",
	"ga:timeOnPage",
	"ga:avgTimeOnPage",
	"ga:entrances",
	"ga:bounceRate",
	"ga:exitRate",
	"ga:pageValue",
}

var socialSellingMetricsB = []string{
	"ga:entranceRate",
	"ga:pageviewsPerSession",
	"ga:exits",
}

var socialSellingSchema = report.Schema{
	{Name: "ViewId", Type: report.TypeInt64},
	{Name: "DateMst", Type: report.TypeString},
	{Name: "Country", Type: report.TypeString},
	{Name: "PagePath", Type: report.TypeString},
	{Name: "Hostname", Type: report.TypeString},
	{Name: "LandingPagePath", Type: report.TypeString},
	{Name: "ExitPagePath", Type: report.TypeString},
	{Name: "PagePathLevel1", Type: report.TypeString},
	{Name: "PagePathLevel2", Type: report.TypeString},
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
}

// SocialSellingConfig parameterizes one social selling export window.
type SocialSellingConfig struct {
	ViewID    int64
	StartDate string
	EndDate   string
}

// SocialSelling exports social-selling page traffic for one view and date
// window into a relational staging table, then runs the merge procedures
// that fold the staged rows into the reporting tables.
type SocialSelling struct {
	fetcher   *report.Fetcher
	warehouse Warehouse
	mapper    *rename.Mapper
	cfg       SocialSellingConfig
	log       zerolog.Logger
}

func NewSocialSelling(fetcher *report.Fetcher, warehouse Warehouse, cfg SocialSellingConfig, log zerolog.Logger) *SocialSelling {
	return &SocialSelling{
		fetcher:   fetcher,
		warehouse: warehouse,
		mapper:    rename.NewMapper(rename.Columns, log),
		cfg:       cfg,
		log:       log,
	}
}

func (*SocialSelling) Name() string { return "social-selling" }

// Extract fetches both metric batches, filtered to social selling page
// paths, and outer-joins them on the shared dimension key.
func (s *SocialSelling) Extract(ctx context.Context) (*Dataset, error) {
	base := report.Query{
		StartDate:  s.cfg.StartDate,
		EndDate:    s.cfg.EndDate,
		Dimensions: socialSellingDimensions,
		Filters:    map[string][]string{"ga:pagePath": socialSellingPathPatterns},
	}

	qa := base
	qa.Metrics = socialSellingMetricsA
	ra, err := s.fetcher.Fetch(ctx, qa)
	if err != nil {
		return nil, err
	}

	qb := base
	qb.Metrics = socialSellingMetricsB
	rb, err := s.fetcher.Fetch(ctx, qb)
	if err != nil {
		return nil, err
	}

	if ra.Empty() {
		s.log.Warn().Msg("first social selling batch returned no rows")
	}
	if rb.Empty() {
		s.log.Warn().Msg("second social selling batch returned no rows")
	}
	return OuterJoin(socialSellingDimensions, ra, rb), nil
}

// Transform renames every field, derives the page-path levels used to key
// shares, and projects onto the staging schema.
func (s *SocialSelling) Transform(ctx context.Context, ds *Dataset) (*report.Table, error) {
	if ds.Empty() {
		s.log.Warn().Msg("empty social selling dataset, nothing to transform")
		return nil, nil
	}
	_, rows := renameRows(s.mapper, ds)
	for _, row := range rows {
		addPathLevels(row, "PagePath")
	}
	return assembleTable(socialSellingSchema, s.cfg.ViewID, rows), nil
}

// Load truncates and reloads the staging table, then runs the dimension
// and summary merge procedures over the run's date window.
func (s *SocialSelling) Load(ctx context.Context, t *report.Table) error {
	if t.Empty() {
		s.log.Info().Msg("no rows to stage, skipping warehouse load")
		return nil
	}
	if err := s.warehouse.Truncate(ctx, StagingSocialSellingTable); err != nil {
		return fmt.Errorf("%w: truncate %s: %v", ErrSinkWrite, StagingSocialSellingTable, err)
	}
	if err := s.warehouse.BulkInsert(ctx, t, StagingSocialSellingTable); err != nil {
		return fmt.Errorf("%w: insert into %s: %v", ErrSinkWrite, StagingSocialSellingTable, err)
	}

	if err := s.warehouse.ExecProcedure(ctx, "MergeCountry"); err != nil {
		return fmt.Errorf("%w: MergeCountry: %v", ErrSinkWrite, err)
	}
	if err := s.warehouse.ExecProcedure(ctx, "MergeCountryMap"); err != nil {
		return fmt.Errorf("%w: MergeCountryMap: %v", ErrSinkWrite, err)
	}
	if err := s.warehouse.ExecProcedure(ctx, "MergeDailySiteContentSocialSellingSummary", s.cfg.StartDate, s.cfg.EndDate); err != nil {
		return fmt.Errorf("%w: MergeDailySiteContentSocialSellingSummary: %v", ErrSinkWrite, err)
	}
	if err := s.warehouse.ExecProcedure(ctx, "MergeWeeklySocialSellingProductMetricsReport", s.cfg.StartDate, s.cfg.EndDate); err != nil {
		return fmt.Errorf("%w: MergeWeeklySocialSellingProductMetricsReport: %v", ErrSinkWrite, err)
	}

	s.log.Info().Int("rows", len(t.Rows)).Str("table", StagingSocialSellingTable).Msg("staged and merged social selling rows")
	return nil
}
