// Package config loads the export driver's JSON configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// View identifies one analytics view to export. ViewID addresses the
// reporting API directly; the three names resolve the same view through the
// management hierarchy when ViewID is zero.
type View struct {
	ViewID   int64  `json:"view_id"`
	Account  string `json:"account"`
	Property string `json:"property"`
	Profile  string `json:"profile"`
}

// Config is the full driver configuration.
type Config struct {
	LogLevel string `json:"log_level"`

	CredentialsFile string `json:"credentials_file"`

	S3 struct {
		Region  string `json:"region"`
		Bucket  string `json:"bucket"`
		TempDir string `json:"temp_dir"`
	} `json:"s3"`

	Warehouse struct {
		DSN string `json:"dsn"`
	} `json:"warehouse"`

	// PartitionMode selects the object-key partition date: "start-month"
	// (default) or "run-date".
	PartitionMode string `json:"partition_mode"`

	Views []View `json:"views"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CredentialsFile == "" {
		return fmt.Errorf("credentials_file is required")
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}
	if c.S3.Region == "" {
		return fmt.Errorf("s3.region is required")
	}
	if c.Warehouse.DSN == "" {
		return fmt.Errorf("warehouse.dsn is required")
	}
	if len(c.Views) == 0 {
		return fmt.Errorf("at least one view is required")
	}
	for i, v := range c.Views {
		if v.ViewID == 0 && (v.Account == "" || v.Property == "" || v.Profile == "") {
			return fmt.Errorf("views[%d]: either view_id or account, property and profile are required", i)
		}
	}
	switch c.PartitionMode {
	case "", "start-month", "run-date":
	default:
		return fmt.Errorf("partition_mode must be start-month or run-date, got %q", c.PartitionMode)
	}
	return nil
}
