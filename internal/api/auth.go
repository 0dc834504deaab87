package api

import "context"

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, "POST", "/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	return result, err
}

// Register creates an account. The caller logs in afterwards; the
// backend does not return a token here.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, "POST", "/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
}

// CurrentUser fetches the authenticated user, including the nested
// subscription and selections the backend eager-loads.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var user User
	err := c.do(ctx, "GET", "/user", token, nil, &user)
	return user, err
}
