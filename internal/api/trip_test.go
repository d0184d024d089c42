package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"travel-planner/internal/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const daysPayload = `{
	"day_2": {"date": "2026-09-02", "blocks": {"morning": [{"name": "B"}]}},
	"day_1": {"date": "2026-09-01", "blocks": {"morning": [{"name": "A"}]}}
}`

func TestGenerateTripObjectDaysKeepServerOrder(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommend", r.URL.Path)
		envelopeResponse(t, w, Envelope{
			Status: "message",
			Data:   json.RawMessage(`{"days": ` + daysPayload + `}`),
		})
	})

	days, err := c.GenerateTrip(context.Background(), trip.DefaultSearchConfig(time.Now()))
	require.NoError(t, err)
	require.Len(t, days, 2)
	// Days come back in the order the server wrote them, keys notwithstanding.
	assert.Equal(t, "2026-09-02", days[0].Date)
	assert.Equal(t, "2026-09-01", days[1].Date)
}

func TestGenerateTripBareArrayData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(t, w, Envelope{
			Status: "message",
			Data:   json.RawMessage(`[{"date": "2026-09-01", "blocks": {}}]`),
		})
	})

	days, err := c.GenerateTrip(context.Background(), trip.DefaultSearchConfig(time.Now()))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-09-01", days[0].Date)
}

func TestGenerateTripSendsConfigBody(t *testing.T) {
	var got trip.SearchConfig
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		envelopeResponse(t, w, Envelope{Status: "message", Data: json.RawMessage(`[]`)})
	})

	cfg := trip.DefaultSearchConfig(time.Now())
	cfg.City = "Huế"
	cfg.NumDays = 2

	_, err := c.GenerateTrip(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "Huế", got.City)
	assert.Equal(t, 2, got.NumDays)
	assert.False(t, got.Evening.Enabled)
	assert.True(t, got.Morning.Enabled)
}

func TestGenerateTripValidatesBeforeNetwork(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid config must not be sent")
	})

	cfg := trip.DefaultSearchConfig(time.Now())
	cfg.City = ""

	_, err := c.GenerateTrip(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestGenerateTripSurfacesServerFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(t, w, Envelope{
			Status:       "error_message",
			ErrorMessage: "không tìm thấy địa điểm phù hợp",
		})
	})

	_, err := c.GenerateTrip(context.Background(), trip.DefaultSearchConfig(time.Now()))
	require.Error(t, err)
	assert.True(t, IsApp(err))
	assert.Equal(t, "không tìm thấy địa điểm phù hợp", err.Error())
}

func TestTripHistoryNilMap(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommand/history/7", r.URL.Path)
		envelopeResponse(t, w, Envelope{Status: "message", Data: json.RawMessage(`{}`)})
	})

	h, err := c.TripHistory(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, h.TripsByDate)
	assert.Empty(t, h.TripsByDate)
}

func TestDeleteTripUsesDelete(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		envelopeResponse(t, w, Envelope{Status: "message"})
	})

	require.NoError(t, c.DeleteTrip(context.Background(), 7, 42))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/recommand/history/7/42", gotPath)
}
