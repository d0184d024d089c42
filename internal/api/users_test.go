package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7", r.URL.Path)
		envelopeResponse(t, w, Envelope{
			Status: "message",
			Data:   json.RawMessage(`{"id":7,"username":"lan","email":"lan@example.com","is_active":true}`),
		})
	})

	user, err := c.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "lan@example.com", user.Email)
	require.NotNil(t, user.IsActive)
	assert.True(t, *user.IsActive)
}

func TestGetProfileRequiresID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})
	_, err := c.GetProfile(context.Background(), 0)
	assert.True(t, IsValidation(err))
}

func TestUpdateInfoBody(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/update-info", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		envelopeResponse(t, w, Envelope{Status: "message"})
	})

	err := c.UpdateInfo(context.Background(), 7, "lan@example.com", "0901234567")
	require.NoError(t, err)
	assert.EqualValues(t, 7, gotBody["user_id"])
	assert.Equal(t, "lan@example.com", gotBody["email"])
	assert.Equal(t, "0901234567", gotBody["phone_number"])
}

func TestChangePasswordValidation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	assert.True(t, IsValidation(c.ChangePassword(context.Background(), 7, "", "new")))
	assert.True(t, IsValidation(c.ChangePassword(context.Background(), 7, "old", "")))
	assert.True(t, IsValidation(c.ChangePassword(context.Background(), 0, "old", "new")))
}

func TestListTags(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tags", r.URL.Path)
		envelopeResponse(t, w, Envelope{Status: "message", Data: json.RawMessage(`["history","food","nature"]`)})
	})

	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"history", "food", "nature"}, tags)
}

func TestUpdateUserTags(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7/tags", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		envelopeResponse(t, w, Envelope{Status: "message"})
	})

	require.NoError(t, c.UpdateUserTags(context.Background(), 7, []string{"food"}))
	assert.Equal(t, []any{"food"}, gotBody["tags"])
}

func TestAdminUserLifecycle(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		envelopeResponse(t, w, Envelope{Status: "message", Data: json.RawMessage(`[]`)})
	})

	ctx := context.Background()
	_, err := c.AdminListUsers(ctx)
	require.NoError(t, err)
	require.NoError(t, c.AdminDeactivateUser(ctx, 9))
	require.NoError(t, c.AdminActivateUser(ctx, 9))
	require.NoError(t, c.AdminDeleteUser(ctx, 9))

	assert.Equal(t, []string{
		"GET /admin/users",
		"POST /admin/users/deactivate/9",
		"POST /admin/users/activate/9",
		"POST /admin/users/delete/9",
	}, paths)

	assert.True(t, IsValidation(c.AdminDeleteUser(ctx, 0)))
}
