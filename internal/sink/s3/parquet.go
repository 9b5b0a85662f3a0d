package s3

import (
	"encoding/json"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

type jsonSchemaNode struct {
	Tag    string           `json:"Tag"`
	Fields []jsonSchemaNode `json:"Fields,omitempty"`
}

// parquetSchema renders a table schema as the JSON schema string the parquet
// JSON writer consumes. Every column is optional: outer joins leave absent
// cells and those become parquet nulls.
func parquetSchema(s report.Schema) (string, error) {
	root := jsonSchemaNode{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, col := range s {
		var typeTag string
		switch col.Type {
		case report.TypeInt64:
			typeTag = "type=INT64"
		case report.TypeFloat64:
			typeTag = "type=DOUBLE"
		case report.TypeString:
			typeTag = "type=BYTE_ARRAY, convertedtype=UTF8"
		default:
			return "", fmt.Errorf("column %s has unknown type %d", col.Name, col.Type)
		}
		root.Fields = append(root.Fields, jsonSchemaNode{
			Tag: fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", col.Name, typeTag),
		})
	}
	out, err := json.Marshal(root)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// rowJSON renders one table row as a JSON object keyed by column name.
// Absent cells are omitted so they serialize as nulls.
func rowJSON(s report.Schema, row []any) (string, error) {
	obj := make(map[string]any, len(s))
	for i, col := range s {
		if i >= len(row) || row[i] == nil {
			continue
		}
		obj[col.Name] = row[i]
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func writeParquet(t *report.Table, path string) error {
	schema, err := parquetSchema(t.Schema)
	if err != nil {
		return fmt.Errorf("building parquet schema: %w", err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewJSONWriter(schema, fw, 4)
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, row := range t.Rows {
		rec, err := rowJSON(t.Schema, row)
		if err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
		if err := pw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalizing parquet file: %w", err)
	}
	return nil
}
