package ga

import (
	"context"
	"fmt"
	"sort"

	analyticsreporting "google.golang.org/api/analyticsreporting/v4"

	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// FetchPage implements report.Source against the reporting API v4 batchGet
// method. One request per call, one report per request.
func (c *Client) FetchPage(ctx context.Context, q report.Query, pageToken string) (*report.Page, error) {
	if c.viewID == "" {
		return nil, fmt.Errorf("ga: no view selected, call ResolveView or SetViewID first")
	}

	resp, err := c.reporting.Reports.BatchGet(&analyticsreporting.GetReportsRequest{
		ReportRequests: []*analyticsreporting.ReportRequest{buildRequest(c.viewID, q, pageToken)},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ga: batchGet for view %s: %w", c.viewID, err)
	}
	if len(resp.Reports) == 0 {
		return nil, fmt.Errorf("ga: batchGet for view %s returned no reports", c.viewID)
	}
	return flattenReport(resp.Reports[0]), nil
}

func buildRequest(viewID string, q report.Query, pageToken string) *analyticsreporting.ReportRequest {
	metrics := make([]*analyticsreporting.Metric, len(q.Metrics))
	for i, m := range q.Metrics {
		metrics[i] = &analyticsreporting.Metric{Expression: m}
	}
	dimensions := make([]*analyticsreporting.Dimension, len(q.Dimensions))
	for i, d := range q.Dimensions {
		dimensions[i] = &analyticsreporting.Dimension{Name: d}
	}

	req := &analyticsreporting.ReportRequest{
		ViewId:     viewID,
		DateRanges: []*analyticsreporting.DateRange{{StartDate: q.StartDate, EndDate: q.EndDate}},
		Metrics:    metrics,
		Dimensions: dimensions,
		PageSize:   report.MaxPageSize,
		PageToken:  pageToken,
	}

	if len(q.Filters) > 0 {
		names := make([]string, 0, len(q.Filters))
		for name := range q.Filters {
			names = append(names, name)
		}
		sort.Strings(names)
		filters := make([]*analyticsreporting.DimensionFilter, 0, len(names))
		for _, name := range names {
			filters = append(filters, &analyticsreporting.DimensionFilter{
				DimensionName: name,
				Operator:      "REGEXP",
				Expressions:   q.Filters[name],
			})
		}
		req.DimensionFilterClauses = []*analyticsreporting.DimensionFilterClause{{Filters: filters}}
	}
	return req
}

// flattenReport turns one raw report into a page: dimension values keyed by
// the dimension headers, then metric values keyed by the metric headers and
// typed by report.ParseMetricValue. Only the first date range is used; the
// pipeline never requests more than one.
func flattenReport(rep *analyticsreporting.Report) *report.Page {
	page := &report.Page{NextPageToken: rep.NextPageToken}

	var metricHeaders []*analyticsreporting.MetricHeaderEntry
	if rep.ColumnHeader != nil {
		page.Dimensions = rep.ColumnHeader.Dimensions
		if rep.ColumnHeader.MetricHeader != nil {
			metricHeaders = rep.ColumnHeader.MetricHeader.MetricHeaderEntries
			page.Metrics = make([]string, len(metricHeaders))
			for i, h := range metricHeaders {
				page.Metrics[i] = h.Name
			}
		}
	}

	if rep.Data == nil {
		return page
	}
	page.IsDataGolden = rep.Data.IsDataGolden
	page.SamplesReadCounts = rep.Data.SamplesReadCounts
	page.SamplingSpaceSizes = rep.Data.SamplingSpaceSizes

	page.Rows = make([]report.Row, 0, len(rep.Data.Rows))
	for _, raw := range rep.Data.Rows {
		row := make(report.Row, len(page.Dimensions)+len(page.Metrics))
		for i, v := range raw.Dimensions {
			if i < len(page.Dimensions) {
				row[page.Dimensions[i]] = v
			}
		}
		if len(raw.Metrics) > 0 {
			for i, v := range raw.Metrics[0].Values {
				if i < len(page.Metrics) {
					row[page.Metrics[i]] = report.ParseMetricValue(v)
				}
			}
		}
		page.Rows = append(page.Rows, row)
	}
	return page
}
