// Package s3 is the object-storage sink: it serializes fixed-schema output
// tables to parquet and uploads them under hierarchical bucket keys.
package s3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// Bucket writes tables into one S3 bucket. Parquet wants a seekable file,
// so tables are staged in a temp directory and uploaded from disk.
type Bucket struct {
	uploader *s3manager.Uploader
	name     string
	tempDir  string
	log      zerolog.Logger
}

// NewBucket opens a session against the given region and prepares the
// staging directory.
func NewBucket(name, region, tempDir string, log zerolog.Logger) (*Bucket, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("s3: creating session: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("s3: creating temp directory %s: %w", tempDir, err)
	}
	return &Bucket{
		uploader: s3manager.NewUploader(sess),
		name:     name,
		tempDir:  tempDir,
		log:      log,
	}, nil
}

// Write serializes the table to parquet and uploads it under key. The write
// is all-or-nothing from the caller's perspective; retry policy belongs to
// the uploader's own configuration.
func (b *Bucket) Write(ctx context.Context, t *report.Table, key string) error {
	localPath := filepath.Join(b.tempDir, filepath.Base(key))
	if err := writeParquet(t, localPath); err != nil {
		return fmt.Errorf("s3: serializing %s: %w", key, err)
	}
	defer os.Remove(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("s3: opening staged file: %w", err)
	}
	defer f.Close()

	b.log.Info().Str("bucket", b.name).Str("key", key).Int("rows", len(t.Rows)).
		Msg("uploading table")
	_, err = b.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("s3: uploading %s to bucket %s: %w", key, b.name, err)
	}
	b.log.Info().Str("bucket", b.name).Str("key", key).Msg("upload complete")
	return nil
}
