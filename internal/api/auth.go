package api

import "context"

// User is the logged-in account the backend returns on login. It is kept in
// local storage under the "user" key between sessions.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// Login authenticates and returns the account record.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" {
		return nil, missing("username")
	}
	if password == "" {
		return nil, missing("password")
	}

	body := map[string]string{"username": username, "password": password}
	var user User
	if err := c.do(ctx, "POST", "/auth/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account and returns the server's message.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", missing("username")
	}
	if password == "" {
		return "", missing("password")
	}

	body := map[string]string{"username": username, "password": password}
	env, err := c.request(ctx, "POST", "/auth/register", body)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
