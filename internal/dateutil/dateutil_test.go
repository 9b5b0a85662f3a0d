package dateutil

import "testing"

func TestAddDays(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		n       int
		want    string
		wantErr bool
	}{
		{name: "forward", date: "2019-01-01", n: 1, want: "2019-01-02"},
		{name: "backward across month", date: "2019-03-01", n: -1, want: "2019-02-28"},
		{name: "zero", date: "2019-01-15", n: 0, want: "2019-01-15"},
		{name: "week back", date: "2019-01-08", n: -7, want: "2019-01-01"},
		{name: "bad date", date: "01/02/2019", n: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDays(tt.date, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddDays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("AddDays() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLessEq(t *testing.T) {
	tests := []struct {
		d1, d2 string
		want   bool
	}{
		{"2019-01-01", "2019-01-02", true},
		{"2019-01-02", "2019-01-02", true},
		{"2019-01-03", "2019-01-02", false},
	}
	for _, tt := range tests {
		got, err := LessEq(tt.d1, tt.d2)
		if err != nil {
			t.Fatalf("LessEq(%q, %q) error: %v", tt.d1, tt.d2, err)
		}
		if got != tt.want {
			t.Errorf("LessEq(%q, %q) = %v, want %v", tt.d1, tt.d2, got, tt.want)
		}
	}
}

func TestMonthPartition(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2019-03-15", "2019-3-01"},
		{"2019-12-01", "2019-12-01"},
		{"2020-01-31", "2020-1-01"},
	}
	for _, tt := range tests {
		got, err := MonthPartition(tt.date)
		if err != nil {
			t.Fatalf("MonthPartition(%q) error: %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("MonthPartition(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}
