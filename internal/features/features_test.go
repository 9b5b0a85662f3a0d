package features

import (
	"errors"
	"reflect"
	"testing"
)

func TestPagePathLevels(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    []string
		wantErr bool
	}{
		{name: "simple path", path: "/shop/cart", want: []string{"shop", "cart"}},
		{name: "no leading slash", path: "shop/cart", want: []string{"shop", "cart"}},
		{name: "single level", path: "/home", want: []string{"home"}},
		{name: "entrance placeholder", path: "(entrance)", want: []string{"entrance"}},
		{name: "trailing slash keeps empty level", path: "/shop/", want: []string{"shop", ""}},
		{name: "deep path", path: "/a/b/c/d", want: []string{"a", "b", "c", "d"}},
		{name: "empty", path: "", wantErr: true},
		{name: "bare slash", path: "/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PagePathLevels(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyPath) {
					t.Fatalf("PagePathLevels(%q) error = %v, want ErrEmptyPath", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PagePathLevels(%q) unexpected error: %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PagePathLevels(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// A leading separator must not change the decomposition.
func TestPagePathLevels_LeadingSeparatorIdempotent(t *testing.T) {
	paths := []string{"shop/cart", "home", "a/b/c", "(entrance)"}
	for _, p := range paths {
		plain, err := PagePathLevels(p)
		if err != nil {
			t.Fatalf("PagePathLevels(%q) error: %v", p, err)
		}
		slashed, err := PagePathLevels("/" + p)
		if err != nil {
			t.Fatalf("PagePathLevels(%q) error: %v", "/"+p, err)
		}
		if plain[0] != slashed[0] {
			t.Errorf("first level differs: %q vs %q", plain[0], slashed[0])
		}
	}
}

func TestPagePathLevel(t *testing.T) {
	levels := []string{"shop", "cart"}

	tests := []struct {
		name   string
		n      int
		want   string
		wantOK bool
	}{
		{name: "first", n: 1, want: "shop", wantOK: true},
		{name: "second", n: 2, want: "cart", wantOK: true},
		{name: "past the end", n: 3, wantOK: false},
		{name: "far past the end", n: 10, wantOK: false},
		{name: "zero", n: 0, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PagePathLevel(levels, tt.n)
			if ok != tt.wantOK {
				t.Fatalf("PagePathLevel(%v, %d) ok = %v, want %v", levels, tt.n, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("PagePathLevel(%v, %d) = %q, want %q", levels, tt.n, got, tt.want)
			}
		})
	}
}

func TestSourceMedium(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantSource string
		wantMedium string
		wantOK     bool
	}{
		{name: "organic", value: "google / organic", wantSource: "google", wantMedium: "organic", wantOK: true},
		{name: "referral", value: "facebook.com / referral", wantSource: "facebook.com", wantMedium: "referral", wantOK: true},
		{name: "direct has no separator", value: "(direct)", wantOK: false},
		{name: "empty", value: "", wantOK: false},
		{name: "plain slash is not the separator", value: "a/b", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, medium, ok := SourceMedium(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("SourceMedium(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if source != tt.wantSource || medium != tt.wantMedium {
				t.Errorf("SourceMedium(%q) = (%q, %q), want (%q, %q)",
					tt.value, source, medium, tt.wantSource, tt.wantMedium)
			}
		})
	}
}
