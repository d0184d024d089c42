package api

import (
	"context"
	"encoding/json"
	"fmt"

	"travel-planner/internal/trip"
)

// GenerateTrip submits a search configuration and returns the generated
// itinerary as a canonical day list. The backend has returned `days` as an
// array, as an object keyed by synthetic ids, and occasionally as the data
// payload itself; all shapes normalize identically.
func (c *Client) GenerateTrip(ctx context.Context, cfg trip.SearchConfig) (trip.Days, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ValidationError{Param: "config", Reason: err.Error()}
	}

	env, err := c.request(ctx, "POST", "/recommend", cfg)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("trip generation returned no data")
	}

	var wrapper struct {
		Days json.RawMessage `json:"days"`
	}
	raw := env.Data
	if err := json.Unmarshal(env.Data, &wrapper); err == nil && len(wrapper.Days) > 0 {
		raw = wrapper.Days
	}

	days, err := trip.NormalizeDays(raw)
	if err != nil {
		return nil, err
	}
	return days, nil
}
