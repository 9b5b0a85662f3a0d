package rename

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/dataeng-io/webanalytics-etl/internal/logger"
)

func TestMapper_Rename(t *testing.T) {
	buf := &bytes.Buffer{}
	m := NewMapper(Columns, logger.NewWithWriter(buf))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "date", in: "ga:date", want: "DateMst"},
		{name: "pageviews", in: "ga:pageviews", want: "Pageviews"},
		{name: "aggregated pageviews", in: "sum(ga:pageviews)", want: "Pageviews"},
		{name: "source medium", in: "ga:sourceMedium", want: "SourceMedium"},
		{name: "avg session duration", in: "ga:avgSessionDuration", want: "AvgSessionDurationSeconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Rename(tt.in); got != tt.want {
				t.Errorf("Rename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if buf.Len() != 0 {
		t.Errorf("expected no warnings for known columns, got: %s", buf.String())
	}
}

func TestMapper_RenameUnknownPassesThrough(t *testing.T) {
	buf := &bytes.Buffer{}
	m := NewMapper(Columns, logger.NewWithWriter(buf))

	got := m.Rename("ga:somethingNew")
	if got != "ga:somethingNew" {
		t.Errorf("Rename() = %q, want identity fallback", got)
	}
	if !strings.Contains(buf.String(), "ga:somethingNew") {
		t.Errorf("expected a warning naming the unmapped column, got: %s", buf.String())
	}
}

func TestMapper_RenameAll(t *testing.T) {
	m := NewMapper(Columns, logger.NewWithWriter(&bytes.Buffer{}))

	got := m.RenameAll([]string{"ga:date", "ga:country", "ga:notAColumn"})
	want := []string{"DateMst", "Country", "ga:notAColumn"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenameAll() = %v, want %v", got, want)
	}
}

// The mapper must not observe later changes to the table it was built from.
func TestNewMapper_CopiesTable(t *testing.T) {
	table := map[string]string{"ga:date": "DateMst"}
	m := NewMapper(table, logger.NewWithWriter(&bytes.Buffer{}))

	table["ga:date"] = "Clobbered"

	if got := m.Rename("ga:date"); got != "DateMst" {
		t.Errorf("Rename() = %q, mapper shared the caller's map", got)
	}
}
