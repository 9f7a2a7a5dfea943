package api

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/animerec/anirec/internal/domain"
	"github.com/goccy/go-json"
)

// Login exchanges credentials for an access token using the backend's
// password grant.  The scope/client fields are fixed literals the token
// endpoint expects.  On success the token is retained on the client for
// subsequent calls and also returned to the caller for persisting.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)
	form.Set("scope", "")
	form.Set("client_id", "string")
	form.Set("client_secret", "string")

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/token",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}

	c.SetToken(resp.AccessToken)
	return resp.AccessToken, nil
}

// Me fetches the identity behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var resp struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/auth/me", nil, "", &resp); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	}, nil
}

// Signup registers a new account.  The backend routes the user through login
// afterwards; no token is issued here.
func (c *Client) Signup(ctx context.Context, email, password, name string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, c.baseURL+"/auth/",
		bytes.NewReader(body), "application/json", nil)
}
