package trip

import (
	"encoding/json"
	"testing"
)

func TestItemUnmarshalTravelVariants(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantTravel   int
		wantDistance float64
	}{
		{
			"canonical fields",
			`{"name":"Chùa Một Cột","travel_min":12,"distance_km":1.4}`,
			12, 1.4,
		},
		{
			"from_prev variant",
			`{"name":"Chùa Một Cột","travel_from_prev_min":12,"distance_from_prev_km":1.4}`,
			12, 1.4,
		},
		{
			"canonical wins over variant",
			`{"name":"x","travel_min":5,"travel_from_prev_min":9}`,
			5, 0,
		},
		{
			"neither present",
			`{"name":"x"}`,
			0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			if err := json.Unmarshal([]byte(tt.in), &it); err != nil {
				t.Fatal(err)
			}
			if it.TravelMin != tt.wantTravel {
				t.Errorf("TravelMin = %d, want %d", it.TravelMin, tt.wantTravel)
			}
			if it.DistanceKm != tt.wantDistance {
				t.Errorf("DistanceKm = %v, want %v", it.DistanceKm, tt.wantDistance)
			}
		})
	}
}

func TestItemUnmarshalStringPrice(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"name":"Bún chả","price_vnd":"50.000đ"}`), &it); err != nil {
		t.Fatal(err)
	}
	if it.PriceVND != 50000 {
		t.Errorf("PriceVND = %d, want 50000", it.PriceVND)
	}
}

func TestDayUnmarshalDateFallback(t *testing.T) {
	var d Day
	if err := json.Unmarshal([]byte(`{"date_str":"2026-09-01"}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Date != "2026-09-01" {
		t.Errorf("Date = %q, want fallback from date_str", d.Date)
	}
	if d.Blocks == nil {
		t.Error("Blocks should default to an empty map, got nil")
	}
}

const dayA = `{"date":"2026-09-01","blocks":{"morning":[{"name":"A"}]}}`
const dayB = `{"date":"2026-09-02","blocks":{"morning":[{"name":"B"}]}}`
const dayC = `{"date":"2026-09-03","blocks":{"morning":[{"name":"C"}]}}`

func TestDaysUnmarshalArrayAndObjectAgree(t *testing.T) {
	array := `[` + dayA + `,` + dayB + `,` + dayC + `]`
	object := `{"day_1":` + dayA + `,"day_2":` + dayB + `,"day_3":` + dayC + `}`

	fromArray, err := NormalizeDays([]byte(array))
	if err != nil {
		t.Fatal(err)
	}
	fromObject, err := NormalizeDays([]byte(object))
	if err != nil {
		t.Fatal(err)
	}

	if len(fromArray) != 3 || len(fromObject) != 3 {
		t.Fatalf("lengths = %d / %d, want 3 / 3", len(fromArray), len(fromObject))
	}
	for i := range fromArray {
		if fromArray[i].Date != fromObject[i].Date {
			t.Errorf("day %d: array %q vs object %q", i, fromArray[i].Date, fromObject[i].Date)
		}
	}
	if fromObject[0].Date != "2026-09-01" || fromObject[2].Date != "2026-09-03" {
		t.Errorf("object form lost server order: %q ... %q", fromObject[0].Date, fromObject[2].Date)
	}
}

func TestDaysUnmarshalNull(t *testing.T) {
	days, err := NormalizeDays([]byte(`null`))
	if err != nil {
		t.Fatal(err)
	}
	if days != nil {
		t.Errorf("null should decode to nil, got %v", days)
	}
}

func TestDaysUnmarshalBadShape(t *testing.T) {
	if _, err := NormalizeDays([]byte(`"three days"`)); err == nil {
		t.Error("expected an error for a scalar days payload")
	}
}

func TestDaysRoundTrip(t *testing.T) {
	days := testDays()
	encoded, err := json.Marshal(days)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := NormalizeDays(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(days) {
		t.Fatalf("round trip changed length: %d -> %d", len(days), len(decoded))
	}
	if TotalCost(decoded) != TotalCost(days) {
		t.Errorf("round trip changed total cost: %d -> %d", TotalCost(days), TotalCost(decoded))
	}
}
