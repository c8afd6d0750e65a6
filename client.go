// Package baserow is a client for the Baserow REST API. It covers
// token authentication, table schema discovery, row queries with
// filtering, sorting and pagination, record CRUD, and file uploads.
//
// Field keys can be negotiated in two mutually exclusive ways: ask the
// server for human-readable names (UserFieldNames), or discover the
// table schema once (AutoMap) and let the client translate between
// names and `field_<id>` keys on both request and response paths.
// When a schema mapping is attached it always wins, because it also
// enables typed row decoding and name-based filter and sort encoding.
package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// APIClient is the public client surface. Baserow is the only
// implementation; the interface exists so callers can fake the client
// in their own tests.
type APIClient interface {
	// TokenAuth exchanges the configured email and password for tokens
	// and returns a client authenticated with them.
	TokenAuth(ctx context.Context) (*Baserow, error)

	// RefreshToken exchanges the refresh token for a fresh access token.
	RefreshToken(ctx context.Context) (*Baserow, error)

	// TableFields retrieves the schema of a table.
	TableFields(ctx context.Context, tableID int64) ([]TableField, error)

	// Table returns a handle for the table with the given id.
	Table(id int64) *Table

	// UploadFile uploads a file's contents to Baserow.
	UploadFile(ctx context.Context, r io.Reader, filename string) (*File, error)

	// UploadFileViaURL asks Baserow to fetch and store the file at url.
	UploadFileViaURL(ctx context.Context, fileURL string) (*File, error)
}

// Baserow implements APIClient against one configured deployment.
// The zero value is not usable; construct with NewClient.
type Baserow struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	// Set by TokenAuth / RefreshToken.
	accessToken  string
	refreshToken string
	user         *User
}

var _ APIClient = (*Baserow)(nil)

// NewClient builds a client from cfg, filling in the default HTTP
// client and logger where none were injected.
func NewClient(cfg Config) *Baserow {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Baserow{
		cfg:    cfg,
		client: httpClient,
		logger: logger,
	}
}

// WithDatabaseToken returns a copy of the client using the given
// database token.
func (c *Baserow) WithDatabaseToken(token string) *Baserow {
	clone := *c
	clone.cfg.DatabaseToken = token
	return &clone
}

// Config returns the client's configuration.
func (c *Baserow) Config() Config {
	return c.cfg
}

// User returns the account returned by the last successful TokenAuth,
// or nil before any login.
func (c *Baserow) User() *User {
	return c.user
}

// Table returns a handle for the table with the given id. The handle
// starts unmapped; call AutoMap to attach a schema mapping.
func (c *Baserow) Table(id int64) *Table {
	return &Table{client: c, id: id}
}

// TableFields retrieves all fields of a table.
// GET /api/database/fields/table/{table_id}/
func (c *Baserow) TableFields(ctx context.Context, tableID int64) ([]TableField, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/database/fields/table/%d/", tableID), nil, nil)
	if err != nil {
		return nil, err
	}

	var fields []TableField
	if err := c.doJSON(req, &fields); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched table fields", "table_id", tableID, "field_count", len(fields))
	return fields, nil
}

// newRequest assembles an authenticated request. The JWT access token
// takes precedence over the database token; having neither is a
// configuration error surfaced before any network activity.
func (c *Baserow) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	if c.cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.Must(uuid.NewV7()).String())

	switch {
	case c.accessToken != "":
		req.Header.Set("Authorization", "JWT "+c.accessToken)
	case c.cfg.DatabaseToken != "":
		req.Header.Set("Authorization", "Token "+c.cfg.DatabaseToken)
	default:
		return nil, ErrMissingToken
	}

	return req, nil
}

// doJSON executes req and decodes a 2xx response body into out (out
// may be nil for status-only endpoints). Non-2xx responses become an
// *APIError carrying the status and raw body.
func (c *Baserow) doJSON(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	c.logger.Debug("request completed", "method", req.Method, "url", req.URL.Path, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
