package api

import "context"

// Address is a place's structured address. Fields mirror the backend's
// camelCase wire names.
type Address struct {
	HouseNumber string `json:"houseNumber,omitempty"`
	Street      string `json:"street,omitempty"`
	Ward        string `json:"ward,omitempty"`
	District    string `json:"district,omitempty"`
	City        string `json:"city,omitempty"`
}

// Place is one recommended visitor place.
type Place struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount,omitempty"`
	PriceVND    *int64   `json:"priceVND,omitempty"`
	OpenTime    string   `json:"openTime,omitempty"`
	CloseTime   string   `json:"closeTime,omitempty"`
	Popularity  *float64 `json:"popularity,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// Recommendation is the visitor recommendation payload. SeenIDs is the
// server's authoritative superset of everything recommended so far and
// replaces the locally stored list outright.
type Recommendation struct {
	City    string  `json:"city"`
	Places  []Place `json:"places"`
	SeenIDs []int64 `json:"seen_ids"`
}

// RecommendPlaces asks for k fresh places in a city, sending the caller's
// accumulated seen ids so the backend can exclude them.
func (c *Client) RecommendPlaces(ctx context.Context, city string, seenIDs []int64, k int) (*Recommendation, error) {
	if city == "" {
		return nil, missing("city")
	}
	if k <= 0 {
		k = 5
	}
	if seenIDs == nil {
		seenIDs = []int64{}
	}

	body := map[string]any{
		"city":     city,
		"seen_ids": seenIDs,
		"k":        k,
	}

	var rec Recommendation
	if err := c.do(ctx, "POST", "/visitor/recommend", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
