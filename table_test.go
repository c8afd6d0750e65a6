package baserow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestCreateMappedTranslatesKeysBothWays(t *testing.T) {
	var sentBody Record
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/api/database/rows/table/1234/", func(w http.ResponseWriter, req *http.Request) {
			if err := json.NewDecoder(req.Body).Decode(&sentBody); err != nil {
				t.Errorf("decode request body: %v", err)
			}
			writeJSON(t, w, http.StatusOK, `{"id": 7, "field_1": "Alice", "field_2": 30}`)
		})
	})
	table := newMappedTable(t, newTestClient(t, srv.URL), 1234)

	created, err := table.Create(context.Background(), Record{"Name": "Alice", "Age": 30}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Outgoing keys are ID-form.
	if got := sentBody["field_1"]; got != "Alice" {
		t.Errorf("request key field_1: got %v, want Alice", got)
	}
	if _, present := sentBody["Name"]; present {
		t.Error("request still carries name-form key")
	}

	// Incoming keys are converted back to names.
	if got := created["Name"]; got != "Alice" {
		t.Errorf("response Name: got %v, want Alice", got)
	}
	if got := created["id"]; got != float64(7) {
		t.Errorf("response id: got %v, want 7", got)
	}
}

func TestCreateUnmappedPassesUserFieldNamesThrough(t *testing.T) {
	var query url.Values
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/api/database/rows/table/1234/", func(w http.ResponseWriter, req *http.Request) {
			query = req.URL.Query()
			writeJSON(t, w, http.StatusOK, `{"id": 7, "Name": "Alice"}`)
		})
	})
	table := newTestClient(t, srv.URL).Table(1234)

	created, err := table.Create(context.Background(), Record{"Name": "Alice"}, &RecordOptions{UserFieldNames: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got := query.Get("user_field_names"); got != "true" {
		t.Errorf("user_field_names: got %q, want true", got)
	}
	if got := created["Name"]; got != "Alice" {
		t.Errorf("Name: got %v, want Alice", got)
	}
}

func TestCreateMappedSuppressesUserFieldNames(t *testing.T) {
	var query url.Values
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/api/database/rows/table/1234/", func(w http.ResponseWriter, req *http.Request) {
			query = req.URL.Query()
			writeJSON(t, w, http.StatusOK, `{"id": 7, "field_1": "Alice"}`)
		})
	})
	table := newMappedTable(t, newTestClient(t, srv.URL), 1234)

	_, err := table.Create(context.Background(), Record{"Name": "Alice"}, &RecordOptions{UserFieldNames: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if query.Has("user_field_names") {
		t.Errorf("user_field_names sent despite mapping: %q", query.Get("user_field_names"))
	}
}

func TestGetOne(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/database/rows/table/1234/5678/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"id": 5678, "field_1": "Alice"}`)
		})
	})
	table := newTestClient(t, srv.URL).Table(1234)

	row, err := table.GetOne(context.Background(), 5678, nil)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got := row["id"]; got != float64(5678) {
		t.Errorf("id: got %v, want 5678", got)
	}
	if got := row["field_1"]; got != "Alice" {
		t.Errorf("field_1: got %v, want Alice", got)
	}
}

func TestGetOneMappedConvertsKeys(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/database/rows/table/1234/5678/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"id": 5678, "field_1": "Alice"}`)
		})
	})
	table := newMappedTable(t, newTestClient(t, srv.URL), 1234)

	row, err := table.GetOne(context.Background(), 5678, nil)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got := row["Name"]; got != "Alice" {
		t.Errorf("Name: got %v, want Alice", got)
	}
}

func TestGetOneAsTyped(t *testing.T) {
	type person struct {
		Name string `json:"Name"`
		Age  int    `json:"Age"`
	}

	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/database/rows/table/1234/5678/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"id": 5678, "field_1": "Alice", "field_2": 30}`)
		})
	})
	table := newMappedTable(t, newTestClient(t, srv.URL), 1234)

	got, err := GetOneAs[person](context.Background(), table, 5678, nil)
	if err != nil {
		t.Fatalf("GetOneAs: %v", err)
	}
	if got.Name != "Alice" || got.Age != 30 {
		t.Errorf("GetOneAs: got %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	var sentBody Record
	srv := newTestServer(t, func(r chi.Router) {
		r.Patch("/api/database/rows/table/1234/5678/", func(w http.ResponseWriter, req *http.Request) {
			if err := json.NewDecoder(req.Body).Decode(&sentBody); err != nil {
				t.Errorf("decode request body: %v", err)
			}
			writeJSON(t, w, http.StatusOK, `{"id": 5678, "field_1": "Updated"}`)
		})
	})
	table := newMappedTable(t, newTestClient(t, srv.URL), 1234)

	updated, err := table.Update(context.Background(), 5678, Record{"Name": "Updated"}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := sentBody["field_1"]; got != "Updated" {
		t.Errorf("request key field_1: got %v, want Updated", got)
	}
	if got := updated["Name"]; got != "Updated" {
		t.Errorf("Name: got %v, want Updated", got)
	}
}

func TestDelete(t *testing.T) {
	var called bool
	srv := newTestServer(t, func(r chi.Router) {
		r.Delete("/api/database/rows/table/1234/5678/", func(w http.ResponseWriter, req *http.Request) {
			called = true
			w.WriteHeader(http.StatusNoContent)
		})
	})
	table := newTestClient(t, srv.URL).Table(1234)

	if err := table.Delete(context.Background(), 5678); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !called {
		t.Error("delete endpoint not called")
	}
}

func TestDeleteErrorSurfacesStatus(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Delete("/api/database/rows/table/1234/5678/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusNotFound, `{"error": "Row does not exist."}`)
		})
	})
	table := newTestClient(t, srv.URL).Table(1234)

	err := table.Delete(context.Background(), 5678)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", apiErr.StatusCode)
	}
}

func TestAutoMapReplacesMappingInPlace(t *testing.T) {
	fieldsBody := `[{"id": 1, "table_id": 1234, "name": "Name", "order": 0, "type": "text", "primary": true, "read_only": false}]`
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/database/fields/table/1234/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusOK, fieldsBody)
		})
	})
	table := newTestClient(t, srv.URL).Table(1234)

	if table.Mapper() != nil {
		t.Fatal("fresh handle should be unmapped")
	}

	if _, err := table.AutoMap(context.Background()); err != nil {
		t.Fatalf("AutoMap: %v", err)
	}
	first := table.Mapper()
	if first == nil {
		t.Fatal("mapper missing after AutoMap")
	}

	// Second discovery installs a fresh snapshot; the handle stays mapped.
	fieldsBody = `[{"id": 2, "table_id": 1234, "name": "Renamed", "order": 0, "type": "text", "primary": true, "read_only": false}]`
	if _, err := table.AutoMap(context.Background()); err != nil {
		t.Fatalf("AutoMap (second): %v", err)
	}
	second := table.Mapper()
	if second == first {
		t.Error("mapper snapshot not replaced")
	}
	if _, ok := second.FieldID("Name"); ok {
		t.Error("old mapping survived re-discovery")
	}
	if id, ok := second.FieldID("Renamed"); !ok || id != 2 {
		t.Errorf("FieldID(Renamed): got %d, %v; want 2, true", id, ok)
	}
}
