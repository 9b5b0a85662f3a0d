package main

import (
	"context"
	"flag"
	"strconv"

	"github.com/dataeng-io/webanalytics-etl/internal/config"
	"github.com/dataeng-io/webanalytics-etl/internal/dateutil"
	"github.com/dataeng-io/webanalytics-etl/internal/etl"
	"github.com/dataeng-io/webanalytics-etl/internal/ga"
	"github.com/dataeng-io/webanalytics-etl/internal/logger"
	"github.com/dataeng-io/webanalytics-etl/internal/report"
	"github.com/dataeng-io/webanalytics-etl/internal/sink/s3"
	"github.com/dataeng-io/webanalytics-etl/internal/sink/warehouse"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags. The default window is the trailing week ending
	// yesterday, matching the nightly schedule.
	configPath := flag.String("config", "config.json", "Path to the JSON configuration file")
	startDate := flag.String("start-date", "", "Start date in YYYY-MM-DD format (default: 7 days ago)")
	endDate := flag.String("end-date", "", "End date in YYYY-MM-DD format (default: yesterday)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.WithLevel(log, cfg.LogLevel)

	today := dateutil.Today()
	if *startDate == "" {
		*startDate, err = dateutil.AddDays(today, -7)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compute default start date")
		}
	}
	if *endDate == "" {
		*endDate, err = dateutil.AddDays(today, -1)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compute default end date")
		}
	}
	ok, err := dateutil.LessEq(*startDate, *endDate)
	if err != nil {
		log.Fatal().Err(err).Msg("Error: invalid date format, expected YYYY-MM-DD")
	}
	if !ok {
		log.Fatal().Str("start_date", *startDate).Str("end_date", *endDate).
			Msg("Error: end-date must not be before start-date")
	}

	ctx := logger.WithContext(context.Background(), log)

	log.Info().
		Str("start_date", *startDate).
		Str("end_date", *endDate).
		Int("views", len(cfg.Views)).
		Msg("Starting analytics export")

	// Initialize the source and both sinks
	client, err := ga.NewClient(ctx, cfg.CredentialsFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize analytics client")
	}
	bucket, err := s3.NewBucket(cfg.S3.Bucket, cfg.S3.Region, cfg.S3.TempDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}
	db, err := warehouse.Open(cfg.Warehouse.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the warehouse")
	}
	defer db.Close()

	fetcher := report.NewFetcher(client, report.MaxPageSize, log)

	failures := 0
	for _, view := range cfg.Views {
		viewID, err := selectView(ctx, client, view)
		if err != nil {
			log.Error().Err(err).Str("account", view.Account).Str("property", view.Property).
				Str("profile", view.Profile).Msg("Skipping view, resolution failed")
			failures++
			continue
		}
		vlog := log.With().Int64("view_id", viewID).Logger()
		vctx := logger.WithContext(ctx, vlog)

		if err := exportView(vctx, fetcher, bucket, db, cfg, viewID, *startDate, *endDate, today); err != nil {
			vlog.Error().Err(err).Msg("View export failed")
			failures++
		}
	}

	if failures > 0 {
		log.Fatal().Int("failed_views", failures).Msg("Export finished with failures")
	}
	log.Info().Msg("Export finished")
}

// selectView points the client at a view, resolving names through the
// management hierarchy when no numeric ID is configured.
func selectView(ctx context.Context, client *ga.Client, view config.View) (int64, error) {
	if view.ViewID != 0 {
		client.SetViewID(strconv.FormatInt(view.ViewID, 10))
		return view.ViewID, nil
	}
	if err := client.ResolveView(ctx, view.Account, view.Property, view.Profile); err != nil {
		return 0, err
	}
	return strconv.ParseInt(client.ViewID(), 10, 64)
}

// exportView runs the full task set for one view: a site-content export per
// day of the window, then the social selling and page path summaries over
// the whole window.
func exportView(ctx context.Context, fetcher *report.Fetcher, bucket *s3.Bucket, db *warehouse.DB,
	cfg *config.Config, viewID int64, startDate, endDate, runDate string) error {
	log := logger.FromContext(ctx)

	for day := startDate; ; {
		inWindow, err := dateutil.LessEq(day, endDate)
		if err != nil {
			return err
		}
		if !inWindow {
			break
		}

		siteContent, err := etl.NewSiteContent(fetcher, bucket, etl.SiteContentConfig{
			ViewID:        viewID,
			StartDate:     day,
			EndDate:       day,
			PartitionMode: etl.PartitionMode(cfg.PartitionMode),
			RunDate:       runDate,
		}, log)
		if err != nil {
			return err
		}
		if err := etl.Run(ctx, siteContent); err != nil {
			return err
		}

		if day, err = dateutil.AddDays(day, 1); err != nil {
			return err
		}
	}

	socialSelling := etl.NewSocialSelling(fetcher, db, etl.SocialSellingConfig{
		ViewID:    viewID,
		StartDate: startDate,
		EndDate:   endDate,
	}, log)
	if err := etl.Run(ctx, socialSelling); err != nil {
		return err
	}

	summary := etl.NewPagePathSummary(fetcher, db, etl.PagePathSummaryConfig{
		ViewID:    viewID,
		StartDate: startDate,
		EndDate:   endDate,
	}, log)
	return etl.Run(ctx, summary)
}
