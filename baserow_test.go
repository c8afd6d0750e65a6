package baserow

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const testToken = "test-database-token"

// newTestServer builds a mock Baserow API from chi routes and serves it
// for the duration of the test.
func newTestServer(t *testing.T, configure func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	configure(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// newTestClient builds a client against the given mock server URL,
// authenticated with the test database token and logging to nowhere.
func newTestClient(t *testing.T, baseURL string) *Baserow {
	t.Helper()
	cfg := NewConfig().
		BaseURL(baseURL).
		APIKey(testToken).
		Logger(slog.New(slog.NewTextHandler(io.Discard, nil))).
		Build()
	return NewClient(cfg)
}

// testFields is the schema used by mapper and query tests: a primary
// text field, a number field, and a nullable text field.
func testFields() []TableField {
	return []TableField{
		{ID: 1, TableID: 1234, Name: "Name", Order: 0, Type: "text", Primary: true},
		{ID: 2, TableID: 1234, Name: "Age", Order: 1, Type: "number"},
		{ID: 3, TableID: 1234, Name: "Email", Order: 2, Type: "text"},
	}
}

// newMappedTable returns a table handle with the test schema attached,
// without going through HTTP discovery.
func newMappedTable(t *testing.T, c *Baserow, id int64) *Table {
	t.Helper()
	table := c.Table(id)
	mapper := NewTableMapper()
	mapper.MapFields(testFields())
	table.mapper.Store(mapper)
	return table
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("write response: %v", err)
	}
}
