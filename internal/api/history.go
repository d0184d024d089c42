package api

import (
	"context"
	"fmt"

	"travel-planner/internal/trip"
)

// TripSummary is one saved trip as it appears in the history listing.
type TripSummary struct {
	ID        int64      `json:"id"`
	City      string     `json:"city"`
	NumDays   int        `json:"num_days"`
	NumPeople int        `json:"num_people"`
	TotalCost trip.Price `json:"total_cost"`
	CreatedAt string     `json:"created_at"`
}

// History groups saved trips by creation date.
type History struct {
	TripsByDate map[string][]TripSummary `json:"trips_by_date"`
}

// TripRecord is a full saved trip, days included, as returned by the detail
// endpoint. It is relayed through local storage back into the planner view.
type TripRecord struct {
	ID        int64      `json:"id"`
	City      string     `json:"city"`
	NumDays   int        `json:"num_days"`
	NumPeople int        `json:"num_people"`
	TotalCost trip.Price `json:"total_cost"`
	CreatedAt string     `json:"created_at"`
	Days      trip.Days  `json:"days"`
}

// TripHistory fetches all saved trips for a user.
func (c *Client) TripHistory(ctx context.Context, userID int64) (*History, error) {
	if userID <= 0 {
		return nil, missing("user_id")
	}

	var h History
	if err := c.do(ctx, "GET", fmt.Sprintf("/recommand/history/%d", userID), nil, &h); err != nil {
		return nil, err
	}
	if h.TripsByDate == nil {
		h.TripsByDate = map[string][]TripSummary{}
	}
	return &h, nil
}

// TripDetail fetches one saved trip.
func (c *Client) TripDetail(ctx context.Context, userID, tripID int64) (*TripRecord, error) {
	if userID <= 0 {
		return nil, missing("user_id")
	}
	if tripID <= 0 {
		return nil, missing("trip_id")
	}

	var rec TripRecord
	if err := c.do(ctx, "GET", fmt.Sprintf("/recommand/history/%d/%d", userID, tripID), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteTrip removes one saved trip.
func (c *Client) DeleteTrip(ctx context.Context, userID, tripID int64) error {
	if userID <= 0 {
		return missing("user_id")
	}
	if tripID <= 0 {
		return missing("trip_id")
	}
	return c.do(ctx, "DELETE", fmt.Sprintf("/recommand/history/%d/%d", userID, tripID), nil, nil)
}

// DeleteAllTrips clears a user's entire history.
func (c *Client) DeleteAllTrips(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return missing("user_id")
	}
	return c.do(ctx, "DELETE", fmt.Sprintf("/recommand/history/%d", userID), nil, nil)
}
