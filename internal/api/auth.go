package api

import (
	"context"
	"net/http"

	"mobilecare/internal/model"
)

const (
	loginEndpoint = "users/login"
	usersEndpoint = "users"
)

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"_id"`
}

// Login exchanges credentials for a token and the user's id.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var res LoginResponse
	if err := c.do(ctx, http.MethodPost, loginEndpoint, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile fetches one user record, the source of the organization
// display cache.
func (c *Client) Profile(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, usersEndpoint+"/"+userID, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
