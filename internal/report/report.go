// Package report holds the data model for paginated analytics reports and
// the fetch loop that drains them. Values flow through the pipeline as
// ordered field-to-value rows; a fixed-schema Table is what sinks consume.
package report

import (
	"errors"
	"strconv"
	"strings"
)

// MaxPageSize is the documented per-request row maximum of the reporting
// API. A page of exactly this size signals that more data exists.
const MaxPageSize = 100000

const (
	// MaxMetrics is the most metrics the reporting API accepts per request.
	MaxMetrics = 10
	// MaxDimensions is the most dimensions the reporting API accepts per request.
	MaxDimensions = 9
)

// StartPageToken is the continuation token for the first page of a result set.
const StartPageToken = "0"

// ErrSourceUnavailable wraps any transport or API-reported failure during a
// fetch. A fetch that fails part way discards everything it accumulated;
// there is no partial-result success.
var ErrSourceUnavailable = errors.New("report: source unavailable")

// Query describes one report request: a date range, the metric and dimension
// sets, and optional per-dimension regular-expression filters.
type Query struct {
	StartDate  string
	EndDate    string
	Metrics    []string
	Dimensions []string
	Filters    map[string][]string
}

// Row is a flattened report entry mapping field name to value. Dimension
// values are strings; metric values are int64 or float64 per ParseMetricValue.
// Field order lives in the page headers, not the row.
type Row map[string]any

// Page is one page of a paginated report response.
type Page struct {
	// Dimensions and Metrics are the header names in response order;
	// dimension values precede metric values when a row is laid out.
	Dimensions []string
	Metrics    []string

	Rows []Row

	// NextPageToken is the continuation token, empty on the terminal page.
	NextPageToken string

	// Data-quality metadata surfaced by the source. Golden data will not
	// change if the same request is repeated later; sampled data is a
	// statistical estimate, not an exact count.
	IsDataGolden       bool
	SamplesReadCounts  []int64
	SamplingSpaceSizes []int64
}

// Sampled reports whether the source flagged this page as sampled.
func (p *Page) Sampled() bool {
	return len(p.SamplesReadCounts) > 0 || len(p.SamplingSpaceSizes) > 0
}

/// ParseMetricValue types a raw metric string: a value containing '.' or ','
// is a floating point number, anything else is an integer. Values that fail
// to parse are kept as strings rather than dropped.
func ParseMetricValue(s string) any {
	if strings.ContainsAny(s, ".,") {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return s
		}
		return f
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return n
}

// ColumnType is the declared type of an output column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
)

// Column is one statically declared output column.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the explicit column list of an output table. Staging table and
// object schemas are declared up front rather than discovered at runtime.
type Schema []Column

// Names returns the column names in declared order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Table is a fixed-schema output table ready for a sink. A cell is nil when
// the value is absent, e.g. a metric missing from one side of an outer join.
type Table struct {
	Schema Schema
	Rows   [][]any
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}
