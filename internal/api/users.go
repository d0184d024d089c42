package api

import (
	"context"
	"fmt"
)

// GetProfile fetches a user's profile.
func (c *Client) GetProfile(ctx context.Context, userID int64) (*User, error) {
	if userID <= 0 {
		return nil, missing("user_id")
	}

	var user User
	if err := c.do(ctx, "GET", fmt.Sprintf("/users/%d", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateInfo updates the contact details on a profile.
func (c *Client) UpdateInfo(ctx context.Context, userID int64, email, phoneNumber string) error {
	if userID <= 0 {
		return missing("user_id")
	}

	body := map[string]any{
		"user_id":      userID,
		"email":        email,
		"phone_number": phoneNumber,
	}
	return c.do(ctx, "POST", "/users/update-info", body, nil)
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if userID <= 0 {
		return missing("user_id")
	}
	if oldPassword == "" {
		return missing("old_password")
	}
	if newPassword == "" {
		return missing("new_password")
	}

	body := map[string]any{
		"user_id":      userID,
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.do(ctx, "POST", "/users/change-password", body, nil)
}

// UpdateUserTags replaces a user's preferred travel tags.
func (c *Client) UpdateUserTags(ctx context.Context, userID int64, tags []string) error {
	if userID <= 0 {
		return missing("user_id")
	}

	body := map[string]any{"tags": tags}
	return c.do(ctx, "POST", fmt.Sprintf("/users/%d/tags", userID), body, nil)
}

// ListTags fetches the travel style tags offered by the backend.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.do(ctx, "GET", "/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
