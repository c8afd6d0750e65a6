package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest is the body of the token-auth exchange.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the successful token-auth response: a database
// token plus a JWT access/refresh pair and the account it belongs to.
type TokenResponse struct {
	Token        string `json:"token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User identifies the authenticated Baserow account.
type User struct {
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Language  string `json:"language"`
}

// TokenAuth authenticates with the configured email and password.
// POST /api/user/token-auth/
//
// On success it returns a copy of the client carrying the database
// token, the JWT access token (which then takes precedence on all
// requests), and the refresh token. Missing credentials fail before
// any network activity.
func (c *Baserow) TokenAuth(ctx context.Context) (*Baserow, error) {
	if c.cfg.Email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingCredentials)
	}
	if c.cfg.Password == "" {
		return nil, fmt.Errorf("%w: password", ErrMissingCredentials)
	}
	if c.cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	body := LoginRequest{Email: c.cfg.Email, Password: c.cfg.Password}
	token, err := c.postAuth(ctx, "/api/user/token-auth/", body)
	if err != nil {
		return nil, err
	}

	clone := *c
	clone.cfg.DatabaseToken = token.Token
	clone.accessToken = token.AccessToken
	clone.refreshToken = token.RefreshToken
	clone.user = &token.User
	c.logger.Debug("token auth succeeded", "username", token.User.Username)
	return &clone, nil
}

// RefreshToken exchanges the stored refresh token for a fresh access
// token. POST /api/user/token-refresh/
func (c *Baserow) RefreshToken(ctx context.Context) (*Baserow, error) {
	if c.refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	body := map[string]string{"refresh_token": c.refreshToken}
	token, err := c.postAuth(ctx, "/api/user/token-refresh/", body)
	if err != nil {
		return nil, err
	}

	clone := *c
	clone.accessToken = token.AccessToken
	if token.RefreshToken != "" {
		clone.refreshToken = token.RefreshToken
	}
	c.logger.Debug("access token refreshed")
	return &clone, nil
}

// NeedsTokenRefresh reports whether the access token expires within
// the given window (or is absent or unparseable). The token is
// inspected without signature verification; the client never validates
// tokens, it only schedules refreshes.
func (c *Baserow) NeedsTokenRefresh(window time.Duration) bool {
	if c.accessToken == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.accessToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < window
}

// postAuth performs an unauthenticated credential exchange. Auth
// endpoints get the dedicated *AuthError on failure so callers can
// tell a rejected login from any other protocol error.
func (c *Baserow) postAuth(ctx context.Context, path string, body any) (*TokenResponse, error) {
	if c.cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var token TokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &token, nil
}
