package etl

import (
	"github.com/dataeng-io/webanalytics-etl/internal/features"
	"github.com/dataeng-io/webanalytics-etl/internal/rename"
	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// renameRows rewrites every row of the dataset under the mapper's business
// names, returning the renamed column order alongside the rows.
func renameRows(mapper *rename.Mapper, ds *Dataset) ([]string, []report.Row) {
	renamed := mapper.RenameAll(ds.Columns)
	rows := make([]report.Row, len(ds.Rows))
	for i, row := range ds.Rows {
		out := make(report.Row, len(row))
		for j, col := range ds.Columns {
			if v, ok := row[col]; ok {
				out[renamed[j]] = v
			}
		}
		rows[i] = out
	}
	return renamed, rows
}

// addPathLevels derives <field>Level1 and <field>Level2 from a renamed
// page-path field. Levels past the path's depth, and levels of a missing
// or empty path, stay absent.
func addPathLevels(row report.Row, field string) {
	raw, ok := row[field].(string)
	if !ok {
		return
	}
	levels, err := features.PagePathLevels(raw)
	if err != nil {
		return
	}
	if v, ok := features.PagePathLevel(levels, 1); ok {
		row[field+"Level1"] = v
	}
	if v, ok := features.PagePathLevel(levels, 2); ok {
		row[field+"Level2"] = v
	}
}

// addSourceMedium splits the renamed SourceMedium field into Source and
// Medium. A value without the separator leaves both absent.
func addSourceMedium(row report.Row) {
	raw, ok := row["SourceMedium"].(string)
	if !ok {
		return
	}
	if source, medium, ok := features.SourceMedium(raw); ok {
		row["Source"] = source
		row["Medium"] = medium
	}
}

// assembleTable projects renamed rows onto a declared schema. Cells with no
// matching field stay nil, the table's representation of an absent value.
func assembleTable(s report.Schema, viewID int64, rows []report.Row) *report.Table {
	t := &report.Table{Schema: s, Rows: make([][]any, len(rows))}
	for i, row := range rows {
		out := make([]any, len(s))
		for j, col := range s {
			if col.Name == "ViewId" {
				out[j] = viewID
				continue
			}
			if v, ok := row[col.Name]; ok {
				out[j] = v
			}
		}
		t.Rows[i] = out
	}
	return t
}
