package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"travel-planner/internal/trip"
)

// Event is one festival/event record.
type Event struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	City          string     `json:"city"`
	Region        string     `json:"region,omitempty"`
	Lat           *float64   `json:"lat,omitempty"`
	Lng           *float64   `json:"lng,omitempty"`
	StartDatetime string     `json:"start_datetime,omitempty"`
	EndDatetime   string     `json:"end_datetime,omitempty"`
	Session       string     `json:"session,omitempty"`
	Summary       string     `json:"summary,omitempty"`
	Activities    []string   `json:"activities,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	PriceVND      trip.Price `json:"price_vnd"`
	Popularity    *float64   `json:"popularity,omitempty"`
	DistanceKm    *float64   `json:"distance_km,omitempty"`
}

// EventFilter selects events for the list endpoint. City and TargetDate are
// mandatory; Session and Sort are included only when set.
type EventFilter struct {
	City       string
	TargetDate string
	Session    string
	Sort       string
}

// ListEvents fetches the events for a city and date.
func (c *Client) ListEvents(ctx context.Context, f EventFilter) ([]Event, error) {
	if f.City == "" {
		return nil, missing("city")
	}
	if f.TargetDate == "" {
		return nil, missing("target_date")
	}

	q := url.Values{}
	q.Set("city", f.City)
	q.Set("target_date", f.TargetDate)
	if f.Session != "" {
		q.Set("session", f.Session)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}

	var events []Event
	if err := c.do(ctx, "GET", "/events/list_event?"+q.Encode(), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SearchEventsByName looks events up by keyword. An empty keyword is not an
// error; it simply matches nothing.
func (c *Client) SearchEventsByName(ctx context.Context, keyword string, limit int) ([]Event, error) {
	if keyword == "" {
		return []Event{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("limit", strconv.Itoa(limit))

	var events []Event
	if err := c.do(ctx, "GET", "/events/search-by-name?"+q.Encode(), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EventDetail fetches one event by id.
func (c *Client) EventDetail(ctx context.Context, eventID int64) (*Event, error) {
	if eventID <= 0 {
		return nil, missing("event_id")
	}

	var event Event
	if err := c.do(ctx, "GET", fmt.Sprintf("/events/detail/%d", eventID), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// RecommendationFilter selects event recommendations. Lat/Lng and
// MaxDistanceKm are optional and omitted from the query when nil, never
// serialized as a literal "null".
type RecommendationFilter struct {
	City          string
	TargetDate    string
	Session       string
	Lat           *float64
	Lng           *float64
	MaxDistanceKm *float64
}

// EventRecommendations fetches events ranked by distance/popularity/price.
// A data payload that is not an array normalizes to an empty list.
func (c *Client) EventRecommendations(ctx context.Context, f RecommendationFilter) ([]Event, error) {
	if f.City == "" {
		return nil, missing("city")
	}
	if f.TargetDate == "" {
		return nil, missing("target_date")
	}

	q := url.Values{}
	q.Set("city", f.City)
	q.Set("target_date", f.TargetDate)
	if f.Session != "" {
		q.Set("session", f.Session)
	}
	if f.Lat != nil {
		q.Set("lat", strconv.FormatFloat(*f.Lat, 'f', -1, 64))
	}
	if f.Lng != nil {
		q.Set("lng", strconv.FormatFloat(*f.Lng, 'f', -1, 64))
	}
	if f.MaxDistanceKm != nil {
		q.Set("max_distance_km", strconv.FormatFloat(*f.MaxDistanceKm, 'f', -1, 64))
	}

	env, err := c.request(ctx, "GET", "/events/recommendations?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var events []Event
	if len(env.Data) == 0 {
		return []Event{}, nil
	}
	if err := json.Unmarshal(env.Data, &events); err != nil {
		// The backend sometimes returns a non-array payload here; treat it
		// as "no recommendations" rather than an error.
		c.logger.Warn().Msg("recommendations data is not an array, treating as empty")
		return []Event{}, nil
	}
	return events, nil
}
