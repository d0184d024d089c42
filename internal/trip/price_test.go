package trip

import (
	"encoding/json"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"int", 50000, 50000},
		{"int64", int64(120000), 120000},
		{"float", 75000.0, 75000},
		{"price", Price(9000), 9000},
		{"plain string", "50000", 50000},
		{"formatted dong", "50.000đ", 50000},
		{"grouped", "1.250.000", 1250000},
		{"no digits", "miễn phí", 0},
		{"empty string", "", 0},
		{"unsupported type", []string{"x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePrice(tt.in); got != tt.want {
				t.Errorf("ParsePrice(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePriceIdempotent(t *testing.T) {
	first := ParsePrice("50.000đ")
	second := ParsePrice(first)
	if first != second {
		t.Errorf("re-parsing a parsed price changed it: %d != %d", first, second)
	}
}

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Price
	}{
		{"number", `50000`, 50000},
		{"float number", `50000.9`, 50000},
		{"string", `"50.000đ"`, 50000},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if p != tt.want {
				t.Errorf("unmarshal %s = %d, want %d", tt.in, p, tt.want)
			}
		})
	}
}
