package trip

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultSearchConfig(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	cfg := DefaultSearchConfig(now)

	if cfg.City != "Hà Nội" {
		t.Errorf("City = %q", cfg.City)
	}
	if cfg.StartDate != "2026-08-28" {
		t.Errorf("StartDate = %q", cfg.StartDate)
	}
	if cfg.NumDays != 3 || cfg.NumPeople != 1 {
		t.Errorf("NumDays/NumPeople = %d/%d", cfg.NumDays, cfg.NumPeople)
	}

	for _, b := range BlockConfig {
		w, ok := cfg.Window(b.ID)
		if !ok {
			t.Fatalf("no window for %s", b.ID)
		}
		if b.ID == BlockEvening {
			if w.Enabled {
				t.Error("evening block should be disabled by default")
			}
		} else if !w.Enabled {
			t.Errorf("%s block should be enabled by default", b.ID)
		}
		if w.Start != b.DefaultStart || w.End != b.DefaultEnd {
			t.Errorf("%s window = %s-%s, want %s-%s", b.ID, w.Start, w.End, b.DefaultStart, b.DefaultEnd)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestSearchConfigValidate(t *testing.T) {
	base := DefaultSearchConfig(time.Now())

	tests := []struct {
		name    string
		mutate  func(*SearchConfig)
		wantErr string
	}{
		{"missing city", func(c *SearchConfig) { c.City = "" }, "city"},
		{"missing date", func(c *SearchConfig) { c.StartDate = "" }, "start_date"},
		{"malformed date", func(c *SearchConfig) { c.StartDate = "28/08/2026" }, "start_date"},
		{"zero days", func(c *SearchConfig) { c.NumDays = 0 }, "num_days"},
		{"too many days", func(c *SearchConfig) { c.NumDays = 31 }, "num_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetWindowUnknownBlock(t *testing.T) {
	cfg := DefaultSearchConfig(time.Now())
	cfg.SetWindow("midnight", BlockWindow{Enabled: true})
	for _, b := range BlockConfig {
		w, _ := cfg.Window(b.ID)
		if w.Start != b.DefaultStart || w.End != b.DefaultEnd {
			t.Errorf("unknown block id mutated the %s window", b.ID)
		}
	}
	if _, ok := cfg.Window("midnight"); ok {
		t.Error(`Window("midnight") reported ok`)
	}
}

func TestKnownBlock(t *testing.T) {
	for _, b := range BlockConfig {
		if !KnownBlock(b.ID) {
			t.Errorf("KnownBlock(%q) = false", b.ID)
		}
	}
	if KnownBlock("midnight") {
		t.Error(`KnownBlock("midnight") = true`)
	}
}
