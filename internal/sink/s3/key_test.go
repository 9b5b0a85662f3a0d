package s3

import "testing"

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name        string
		description string
		viewConfig  string
		partition   string
		leaf        string
		extension   string
		want        string
	}{
		{
			name:        "single day",
			description: "daily_site_content",
			viewConfig:  "ViewId=1",
			partition:   "2019-3-01",
			leaf:        "2019-03-15",
			extension:   "parquet",
			want:        "google_analytics/daily_site_content/ViewId=1/2019-3-01/2019-03-15.parquet",
		},
		{
			name:        "date range leaf",
			description: "daily_site_content",
			viewConfig:  "ViewId=2",
			partition:   "2019-1-01",
			leaf:        "2019-01-01_2019-01-07",
			extension:   "parquet",
			want:        "google_analytics/daily_site_content/ViewId=2/2019-1-01/2019-01-01_2019-01-07.parquet",
		},
		{
			name:        "no extension",
			description: "daily_site_content",
			viewConfig:  "ViewId=1",
			partition:   "2019-3-01",
			leaf:        "2019-03-15",
			want:        "google_analytics/daily_site_content/ViewId=1/2019-3-01/2019-03-15",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectKey(tt.description, tt.viewConfig, tt.partition, tt.leaf, tt.extension)
			if got != tt.want {
				t.Errorf("ObjectKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
