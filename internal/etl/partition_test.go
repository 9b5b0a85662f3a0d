package etl

import "testing"

func TestPartitionValue(t *testing.T) {
	tests := []struct {
		name      string
		mode      PartitionMode
		startDate string
		runDate   string
		want      string
		wantErr   bool
	}{
		{name: "start month", mode: PartitionByStartMonth, startDate: "2019-03-15", runDate: "2019-04-02", want: "2019-3-01"},
		{name: "default is start month", mode: "", startDate: "2019-11-30", want: "2019-11-01"},
		{name: "run date", mode: PartitionByRunDate, startDate: "2018-12-01", runDate: "2019-04-02", want: "2019-4-01"},
		{name: "unknown mode", mode: "by-week", startDate: "2019-03-15", wantErr: true},
		{name: "bad date", mode: PartitionByStartMonth, startDate: "15/03/2019", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := partitionValue(tt.mode, tt.startDate, tt.runDate)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("partitionValue() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("partitionValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("partitionValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
