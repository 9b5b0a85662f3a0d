package etl

import (
	"fmt"
	"strings"

	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// Dataset is the intermediate form between extract and transform: an ordered
// set of keyed rows with a declared column order. Key columns come first in
// Columns, metric columns follow in fetch order.
type Dataset struct {
	Key     []string
	Columns []string
	Rows    []report.Row
}

// Len reports the number of rows, treating a nil dataset as empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether the dataset carries no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// OuterJoin merges fetch results on a shared dimension key tuple. Rows of
// the first result keep their order; rows present only in later results are
// appended in their order of appearance. A metric absent on either side of
// a match stays absent in the merged row.
func OuterJoin(key []string, results ...*report.Result) *Dataset {
	ds := &Dataset{
		Key:     append([]string(nil), key...),
		Columns: append([]string(nil), key...),
	}
	for _, r := range results {
		ds.Columns = append(ds.Columns, r.Metrics...)
	}

	index := make(map[string]int)
	for _, r := range results {
		for _, row := range r.Rows {
			k := rowKey(key, row)
			i, seen := index[k]
			if !seen {
				i = len(ds.Rows)
				index[k] = i
				ds.Rows = append(ds.Rows, report.Row{})
				for _, c := range key {
					if v, ok := row[c]; ok {
						ds.Rows[i][c] = v
					}
				}
			}
			for _, c := range r.Metrics {
				if v, ok := row[c]; ok {
					ds.Rows[i][c] = v
				}
			}
		}
	}
	return ds
}

func rowKey(key []string, row report.Row) string {
	parts := make([]string, len(key))
	for i, c := range key {
		parts[i] = fmt.Sprintf("%v", row[c])
	}
	return strings.Join(parts, "\x1f")
}
