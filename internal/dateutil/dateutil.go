// Package dateutil holds the date-string helpers shared by the export driver
// and the object key builder. Dates travel through the pipeline as
// "YYYY-MM-DD" strings because that is the format the reporting API consumes
// and the warehouse procedures expect.
package dateutil

import (
	"fmt"
	"time"
)

// Layout is the wire format for all pipeline dates.
const Layout = "2006-01-02"

// Today returns the current date as a pipeline date string.
func Today() string {
	return time.Now().Format(Layout)
}

// AddDays shifts a date string by n days (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return "", fmt.Errorf("dateutil: parsing %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// LessEq reports whether d1 <= d2.
func LessEq(d1, d2 string) (bool, error) {
	t1, err := time.Parse(Layout, d1)
	if err != nil {
		return false, fmt.Errorf("dateutil: parsing %q: %w", d1, err)
	}
	t2, err := time.Parse(Layout, d2)
	if err != nil {
		return false, fmt.Errorf("dateutil: parsing %q: %w", d2, err)
	}
	return !t1.After(t2), nil
}

// MonthPartition returns the month partition value for a date, e.g.
// "2019-3-01" for any day in March 2019. The month is not zero padded; the
// downstream partition scheme predates this module and existing objects use
// the unpadded form.
func MonthPartition(date string) (string, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return "", fmt.Errorf("dateutil: parsing %q: %w", date, err)
	}
	return fmt.Sprintf("%d-%d-01", t.Year(), int(t.Month())), nil
}
