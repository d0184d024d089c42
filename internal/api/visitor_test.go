package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendPlacesBody(t *testing.T) {
	var gotBody map[string]json.RawMessage
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/visitor/recommend", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		envelopeResponse(t, w, Envelope{
			Status: "message",
			Data:   json.RawMessage(`{"city":"Đà Nẵng","places":[],"seen_ids":[1,2,3]}`),
		})
	})

	rec, err := c.RecommendPlaces(context.Background(), "Đà Nẵng", []int64{1, 2}, 5)
	require.NoError(t, err)

	assert.JSONEq(t, `"Đà Nẵng"`, string(gotBody["city"]))
	assert.JSONEq(t, `[1,2]`, string(gotBody["seen_ids"]))
	assert.JSONEq(t, `5`, string(gotBody["k"]))
	assert.Equal(t, []int64{1, 2, 3}, rec.SeenIDs)
}

func TestRecommendPlacesNilSeenIDs(t *testing.T) {
	var gotBody map[string]json.RawMessage
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		envelopeResponse(t, w, Envelope{Status: "message", Data: json.RawMessage(`{}`)})
	})

	_, err := c.RecommendPlaces(context.Background(), "Huế", nil, 0)
	require.NoError(t, err)

	assert.JSONEq(t, `[]`, string(gotBody["seen_ids"]), "nil seen ids must serialize as [], not null")
	assert.JSONEq(t, `5`, string(gotBody["k"]), "k must default to 5")
}

func TestRecommendPlacesRequiresCity(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := c.RecommendPlaces(context.Background(), "", nil, 5)
	assert.True(t, IsValidation(err))
}

func TestRecommendPlacesCamelCaseFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(t, w, Envelope{
			Status: "message",
			Data: json.RawMessage(`{
				"city": "Hà Nội",
				"places": [{
					"id": 11,
					"name": "Văn Miếu",
					"reviewCount": 1200,
					"priceVND": 30000,
					"openTime": "08:00",
					"closeTime": "17:00",
					"address": {"houseNumber": "58", "street": "Quốc Tử Giám", "district": "Đống Đa", "city": "Hà Nội"}
				}],
				"seen_ids": [11]
			}`),
		})
	})

	rec, err := c.RecommendPlaces(context.Background(), "Hà Nội", nil, 5)
	require.NoError(t, err)
	require.Len(t, rec.Places, 1)

	p := rec.Places[0]
	assert.Equal(t, 1200, p.ReviewCount)
	require.NotNil(t, p.PriceVND)
	assert.EqualValues(t, 30000, *p.PriceVND)
	assert.Equal(t, "08:00", p.OpenTime)
	require.NotNil(t, p.Address)
	assert.Equal(t, "Quốc Tử Giám", p.Address.Street)
}
