package api

import (
	"context"
	"fmt"
)

// AdminListUsers fetches every account. Backend enforces the role check.
func (c *Client) AdminListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, "GET", "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminDeactivateUser locks an account.
func (c *Client) AdminDeactivateUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return missing("user_id")
	}
	return c.do(ctx, "POST", fmt.Sprintf("/admin/users/deactivate/%d", userID), nil, nil)
}

// AdminActivateUser unlocks an account.
func (c *Client) AdminActivateUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return missing("user_id")
	}
	return c.do(ctx, "POST", fmt.Sprintf("/admin/users/activate/%d", userID), nil, nil)
}

// AdminDeleteUser removes an account.
func (c *Client) AdminDeleteUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return missing("user_id")
	}
	return c.do(ctx, "POST", fmt.Sprintf("/admin/users/delete/%d", userID), nil, nil)
}
