package trip

import (
	"fmt"
	"time"
)

// BlockWindow is the time-window configuration for one slot of the day.
type BlockWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// SearchConfig carries the trip-generation request parameters. It is sent
// verbatim as the POST /recommend body and kept as the last successful
// configuration so the view can re-render after edits.
type SearchConfig struct {
	City      string `json:"city"`
	StartDate string `json:"start_date"`
	NumDays   int    `json:"num_days"`
	NumPeople int    `json:"num_people"`

	PreferredTags []string `json:"preferred_tags"`
	AvoidTags     []string `json:"avoid_tags"`

	MaxLegDistanceKm  float64 `json:"max_leg_distance_km"`
	MaxPlacesPerBlock int     `json:"max_places_per_block"`

	MustVisitPlaceIDs []int64 `json:"must_visit_place_ids"`
	AvoidPlaceIDs     []int64 `json:"avoid_place_ids"`

	Morning   BlockWindow `json:"morning"`
	Lunch     BlockWindow `json:"lunch"`
	Afternoon BlockWindow `json:"afternoon"`
	Dinner    BlockWindow `json:"dinner"`
	Evening   BlockWindow `json:"evening"`
}

// DefaultSearchConfig mirrors the defaults the configuration form opened with.
func DefaultSearchConfig(now time.Time) SearchConfig {
	cfg := SearchConfig{
		City:              "Hà Nội",
		StartDate:         now.Format("2006-01-02"),
		NumDays:           3,
		NumPeople:         1,
		PreferredTags:     []string{"history", "food"},
		AvoidTags:         []string{},
		MaxLegDistanceKm:  5.0,
		MaxPlacesPerBlock: 3,
		MustVisitPlaceIDs: []int64{},
		AvoidPlaceIDs:     []int64{},
	}
	for _, b := range BlockConfig {
		cfg.SetWindow(b.ID, BlockWindow{
			Enabled: b.ID != BlockEvening,
			Start:   b.DefaultStart,
			End:     b.DefaultEnd,
		})
	}
	return cfg
}

// Window returns the configured window for a slot id.
func (c SearchConfig) Window(blockID string) (BlockWindow, bool) {
	switch blockID {
	case BlockMorning:
		return c.Morning, true
	case BlockLunch:
		return c.Lunch, true
	case BlockAfternoon:
		return c.Afternoon, true
	case BlockDinner:
		return c.Dinner, true
	case BlockEvening:
		return c.Evening, true
	}
	return BlockWindow{}, false
}

// SetWindow updates the window for a slot id. Unknown ids are ignored.
func (c *SearchConfig) SetWindow(blockID string, w BlockWindow) {
	switch blockID {
	case BlockMorning:
		c.Morning = w
	case BlockLunch:
		c.Lunch = w
	case BlockAfternoon:
		c.Afternoon = w
	case BlockDinner:
		c.Dinner = w
	case BlockEvening:
		c.Evening = w
	}
}

// Validate checks the fields the backend treats as mandatory. These are
// caller errors, caught before any network call.
func (c SearchConfig) Validate() error {
	if c.City == "" {
		return fmt.Errorf("city is required")
	}
	if c.StartDate == "" {
		return fmt.Errorf("start_date is required")
	}
	if _, err := time.Parse("2006-01-02", c.StartDate); err != nil {
		return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
	}
	if c.NumDays < 1 || c.NumDays > 30 {
		return fmt.Errorf("num_days must be between 1 and 30, got %d", c.NumDays)
	}
	return nil
}
