package trip

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one visit/activity entry within a block.
//
// The wire shape is not stable: price_vnd arrives as a number or a formatted
// string, and the travel fields have appeared both as travel_min/distance_km
// and as travel_from_prev_min/distance_from_prev_km. UnmarshalJSON folds all
// observed variants into this canonical form; everything downstream consumes
// only these fields.
type Item struct {
	Order      int     `json:"order,omitempty"`
	Name       string  `json:"name"`
	Type       string  `json:"type,omitempty"`
	Start      string  `json:"start,omitempty"`
	End        string  `json:"end,omitempty"`
	DwellMin   int     `json:"dwell_min,omitempty"`
	PriceVND   Price   `json:"price_vnd"`
	TravelMin  int     `json:"travel_min,omitempty"`
	DistanceKm float64 `json:"distance_km,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		Order              int      `json:"order"`
		Name               string   `json:"name"`
		Type               string   `json:"type"`
		Start              string   `json:"start"`
		End                string   `json:"end"`
		DwellMin           int      `json:"dwell_min"`
		PriceVND           Price    `json:"price_vnd"`
		TravelMin          *int     `json:"travel_min"`
		TravelFromPrevMin  *int     `json:"travel_from_prev_min"`
		DistanceKm         *float64 `json:"distance_km"`
		DistanceFromPrevKm *float64 `json:"distance_from_prev_km"`
		ImageURL           string   `json:"image_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	it.Order = raw.Order
	it.Name = raw.Name
	it.Type = raw.Type
	it.Start = raw.Start
	it.End = raw.End
	it.DwellMin = raw.DwellMin
	it.PriceVND = raw.PriceVND
	it.ImageURL = raw.ImageURL

	switch {
	case raw.TravelMin != nil:
		it.TravelMin = *raw.TravelMin
	case raw.TravelFromPrevMin != nil:
		it.TravelMin = *raw.TravelFromPrevMin
	}
	switch {
	case raw.DistanceKm != nil:
		it.DistanceKm = *raw.DistanceKm
	case raw.DistanceFromPrevKm != nil:
		it.DistanceKm = *raw.DistanceFromPrevKm
	}
	return nil
}

// Blocks maps slot ids to their ordered item sequences. Keys outside the
// five recognized slots may be present after decoding; rendering walks
// BlockConfig and never sees them.
type Blocks map[string][]Item

// Day is one day of the itinerary.
type Day struct {
	City   string `json:"city,omitempty"`
	Date   string `json:"date"`
	Blocks Blocks `json:"blocks"`
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var raw struct {
		City    string `json:"city"`
		Date    string `json:"date"`
		DateStr string `json:"date_str"`
		Blocks  Blocks `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.City = raw.City
	d.Date = raw.Date
	if d.Date == "" {
		d.Date = raw.DateStr
	}
	d.Blocks = raw.Blocks
	if d.Blocks == nil {
		d.Blocks = Blocks{}
	}
	return nil
}

// Days is the ordered day list of a trip plan.
type Days []Day

// UnmarshalJSON accepts the two shapes the backend has been observed to
// return: a plain array of days, or an object mapping synthetic keys to day
// objects. The object form is decoded token by token so the days come out in
// the order the server wrote them; a map decode would lose that order.
func (ds *Days) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*ds = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []Day
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*ds = list
		return nil
	}

	if trimmed[0] != '{' {
		return fmt.Errorf("days: unexpected JSON shape %q", trimmed[0])
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // consume '{'
		return err
	}
	var list []Day
	for dec.More() {
		if _, err := dec.Token(); err != nil { // synthetic key, discarded
			return err
		}
		var d Day
		if err := dec.Decode(&d); err != nil {
			return err
		}
		list = append(list, d)
	}
	*ds = list
	return nil
}

// NormalizeDays converts a raw `days` payload into the canonical ordered list.
func NormalizeDays(raw []byte) (Days, error) {
	var ds Days
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("normalize days: %w", err)
	}
	return ds, nil
}
