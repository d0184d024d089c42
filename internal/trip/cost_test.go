package trip

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "2K"},
		{2499, "2K"},
		{999999, "1000K"},
		{1000000, "1.0M"},
		{2300000, "2.3M"},
		{12500000, "12.5M"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatGrouped(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1250000, "1.250.000"},
		{-4500, "-4.500"},
	}
	for _, tt := range tests {
		if got := FormatGrouped(tt.amount); got != tt.want {
			t.Errorf("FormatGrouped(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func testDays() Days {
	return Days{
		{
			Date: "2026-09-01",
			Blocks: Blocks{
				BlockMorning: {{Name: "Văn Miếu", PriceVND: 30000}},
				BlockLunch:   {{Name: "Bún chả", PriceVND: 50000}},
			},
		},
		{
			Date: "2026-09-02",
			Blocks: Blocks{
				BlockAfternoon: {
					{Name: "Hồ Gươm", PriceVND: 0},
					{Name: "Cà phê trứng", PriceVND: 45000},
				},
			},
		},
	}
}

func TestCostAggregation(t *testing.T) {
	days := testDays()

	if got := DayCost(days[0]); got != 80000 {
		t.Errorf("DayCost(day 1) = %d, want 80000", got)
	}
	if got := TotalCost(days); got != 125000 {
		t.Errorf("TotalCost = %d, want 125000", got)
	}
	if got := CountPlaces(days); got != 4 {
		t.Errorf("CountPlaces = %d, want 4", got)
	}
}

func TestCostEmptyPlan(t *testing.T) {
	if got := TotalCost(nil); got != 0 {
		t.Errorf("TotalCost(nil) = %d, want 0", got)
	}
	if got := CountPlaces(Days{{Date: "2026-09-01"}}); got != 0 {
		t.Errorf("CountPlaces of a blockless day = %d, want 0", got)
	}
}
