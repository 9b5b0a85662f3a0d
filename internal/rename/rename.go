// Package rename maps reporting API column identifiers to the names used in
// warehouse tables and exported objects.
package rename

import (
	"github.com/rs/zerolog"
)

// Columns is the mapping from reporting API identifiers to output column
// names. The two sum(...) entries cover columns produced by aggregating
// summary tasks.
var Columns = map[string]string{
	"ga:date":                   "DateMst",
	"ga:country":                "Country",
	"ga:region":                 "Region",
	"ga:source":                 "Source",
	"ga:medium":                 "Medium",
	"ga:deviceCategory":         "DeviceCategory",
	"ga:goalCompletionLocation": "GoalCompletionLocation",
	"ga:pagePath":               "PagePath",
	"ga:hostname":               "Hostname",
	"ga:landingPagePath":        "LandingPagePath",
	"ga:exitPagePath":           "ExitPagePath",
	"ga:previousPagePath":       "PreviousPagePath",
	"ga:sourceMedium":           "SourceMedium",
	"ga:pageDepth":              "PageDepth",
	"ga:users":                  "Users",
	"ga:newUsers":               "NewUsers",
	"ga:sessionsPerUser":        "SessionsPerUser",
	"ga:sessions":               "Sessions",
	"ga:avgSessionDuration":     "AvgSessionDurationSeconds",
	"ga:sessionDuration":        "SessionDurationSeconds",
	"ga:bounceRate":             "BounceRate",
	"ga:bounces":                "Bounces",
	"ga:pageviewsPerSession":    "PageviewsPerSession",
	"ga:uniquePageviews":        "UniquePageviews",
	"ga:avgPageLoadTime":        "AvgPageLoadTimeSeconds",
	"ga:pageviews":              "Pageviews",
	"ga:goalStartsAll":          "GoalStartsAll",
	"ga:goalCompletionsAll":     "GoalCompletionsAll",
	"ga:goalValueAll":           "GoalValueAll",
	"ga:goalValuePerSession":    "GoalValuePerSession",
	"ga:goalConversionRateAll":  "GoalConversionRateAll",
	"ga:goalAbandonsAll":        "GoalAbandonsAll",
	"ga:goalAbandonRateAll":     "GoalAbandonRateAll",
	"ga:timeOnPage":             "TimeOnPageSeconds",
	"ga:avgTimeOnPage":          "AvgTimeOnPageSeconds",
	"ga:entrances":              "Entrances",
	"ga:exitRate":               "ExitRate",
	"ga:pageValue":              "PageValue",
	"ga:exits":                  "Exits",
	"ga:entranceRate":           "EntranceRate",
	"sum(ga:pageviews)":         "Pageviews",
	"sum(ga:uniquePageviews)":   "UniquePageviews",
}

// Mapper renames columns against an immutable mapping table. Lookups never
// fail: an unmapped identifier is logged and passed through unchanged so the
// pipeline survives schema drift in the reporting API.
type Mapper struct {
	columns map[string]string
	log     zerolog.Logger
}

// NewMapper creates a Mapper over a copy of the given mapping table.
func NewMapper(columns map[string]string, log zerolog.Logger) *Mapper {
	copied := make(map[string]string, len(columns))
	for k, v := range columns {
		copied[k] = v
	}
	return &Mapper{columns: copied, log: log}
}

// Rename returns the output name for a source column identifier. On a miss
// it warns and returns the identifier unchanged.
func (m *Mapper) Rename(name string) string {
	if renamed, ok := m.columns[name]; ok {
		return renamed
	}
	m.log.Warn().Str("column", name).Msg("column is not a known reporting API column, keeping original name")
	return name
}

// RenameAll renames a header slice, preserving order.
func (m *Mapper) RenameAll(names []string) []string {
	renamed := make([]string, len(names))
	for i, name := range names {
		renamed[i] = m.Rename(name)
	}
	return renamed
}
