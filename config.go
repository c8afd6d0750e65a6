package baserow

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// defaultHTTPTimeout bounds requests made with the built-in HTTP
// client. Callers who need different deadlines inject their own client.
const defaultHTTPTimeout = 30 * time.Second

// Config holds everything needed to talk to a Baserow instance:
// the endpoint, credentials, and the injected collaborators.
type Config struct {
	// BaseURL is the root of the Baserow deployment, without a
	// trailing slash (e.g. "https://api.baserow.io").
	BaseURL string

	// DatabaseToken authenticates requests with `Authorization: Token ...`.
	DatabaseToken string

	// Email and Password are exchanged for tokens by TokenAuth.
	Email    string
	Password string

	// HTTPClient performs all requests. Nil selects a default client
	// with a 30 second timeout. Cancellation and deadlines beyond that
	// are the caller's responsibility via context.
	HTTPClient *http.Client

	// Logger receives debug-level lines around each exchange. Nil
	// selects slog.Default().
	Logger *slog.Logger
}

// ConfigBuilder assembles a Config through a fluent interface.
//
//	cfg := baserow.NewConfig().
//		BaseURL("https://api.baserow.io").
//		APIKey("your-database-token").
//		Build()
type ConfigBuilder struct {
	cfg Config
}

// NewConfig starts an empty configuration.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{}
}

// BaseURL sets the Baserow endpoint. A trailing slash is stripped.
func (b *ConfigBuilder) BaseURL(u string) *ConfigBuilder {
	b.cfg.BaseURL = strings.TrimRight(u, "/")
	return b
}

// APIKey sets the database token.
func (b *ConfigBuilder) APIKey(key string) *ConfigBuilder {
	b.cfg.DatabaseToken = key
	return b
}

// Email sets the login email used by TokenAuth.
func (b *ConfigBuilder) Email(email string) *ConfigBuilder {
	b.cfg.Email = email
	return b
}

// Password sets the login password used by TokenAuth.
func (b *ConfigBuilder) Password(password string) *ConfigBuilder {
	b.cfg.Password = password
	return b
}

// HTTPClient injects the HTTP client used for all requests.
func (b *ConfigBuilder) HTTPClient(c *http.Client) *ConfigBuilder {
	b.cfg.HTTPClient = c
	return b
}

// Logger injects the logger for request/response debug lines.
func (b *ConfigBuilder) Logger(l *slog.Logger) *ConfigBuilder {
	b.cfg.Logger = l
	return b
}

// Build returns the assembled configuration.
func (b *ConfigBuilder) Build() Config {
	return b.cfg
}
