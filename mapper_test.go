package baserow

import (
	"errors"
	"reflect"
	"testing"
)

func TestMapFieldsRoundTrip(t *testing.T) {
	m := NewTableMapper()
	m.MapFields(testFields())

	if got := len(m.Fields()); got != 3 {
		t.Fatalf("Fields: got %d, want 3", got)
	}

	for _, f := range testFields() {
		name, ok := m.FieldName(f.ID)
		if !ok || name != f.Name {
			t.Errorf("FieldName(%d): got %q, %v; want %q, true", f.ID, name, ok, f.Name)
		}
		id, ok := m.FieldID(f.Name)
		if !ok || id != f.ID {
			t.Errorf("FieldID(%q): got %d, %v; want %d, true", f.Name, id, ok, f.ID)
		}
	}

	if _, ok := m.FieldName(99); ok {
		t.Error("FieldName(99): expected miss")
	}
	if _, ok := m.FieldID("Unknown"); ok {
		t.Error("FieldID(Unknown): expected miss")
	}
}

func TestRemapReplacesAllMappings(t *testing.T) {
	m := NewTableMapper()
	m.MapFields(testFields())

	// Disjoint field set: every previous mapping must be gone.
	m.MapFields([]TableField{
		{ID: 10, Name: "Status", Type: "text"},
		{ID: 11, Name: "Phone", Type: "text"},
	})

	if _, ok := m.FieldID("Name"); ok {
		t.Error("old name still resolves after remap")
	}
	if _, ok := m.FieldName(1); ok {
		t.Error("old id still resolves after remap")
	}
	if id, ok := m.FieldID("Status"); !ok || id != 10 {
		t.Errorf("FieldID(Status): got %d, %v; want 10, true", id, ok)
	}
}

func TestDuplicateNamesLastWins(t *testing.T) {
	m := NewTableMapper()
	m.MapFields([]TableField{
		{ID: 1, Name: "Name"},
		{ID: 2, Name: "Name"},
	})

	id, ok := m.FieldID("Name")
	if !ok || id != 2 {
		t.Errorf("FieldID(Name): got %d, %v; want 2, true", id, ok)
	}
	// Both ids still resolve to the shared name.
	for _, want := range []int64{1, 2} {
		if name, ok := m.FieldName(want); !ok || name != "Name" {
			t.Errorf("FieldName(%d): got %q, %v; want Name, true", want, name, ok)
		}
	}
}

func TestConvertToFieldIDs(t *testing.T) {
	m := NewTableMapper()
	m.MapFields(testFields())

	row := Record{
		"Name":    "Alice",
		"Age":     float64(30),
		"id":      float64(7), // reserved key, must pass through
		"field_9": "already keyed",
	}
	got := m.ConvertToFieldIDs(row)

	want := Record{
		"field_1": "Alice",
		"field_2": float64(30),
		"id":      float64(7),
		"field_9": "already keyed",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConvertToFieldIDs: got %v, want %v", got, want)
	}

	// Idempotent on an already ID-keyed record.
	if again := m.ConvertToFieldIDs(got); !reflect.DeepEqual(again, want) {
		t.Errorf("ConvertToFieldIDs (second pass): got %v, want %v", again, want)
	}
}

func TestConvertToFieldNamesDualKeyShapes(t *testing.T) {
	m := NewTableMapper()
	m.MapFields(testFields())

	row := Record{
		"1":       "Alice",      // bare numeric key shape
		"field_2": float64(30),  // prefixed key shape
		"field_9": "unknown id", // unmapped, passes through
		"id":      float64(7),
	}
	got := m.ConvertToFieldNames(row)

	want := Record{
		"Name":    "Alice",
		"Age":     float64(30),
		"field_9": "unknown id",
		"id":      float64(7),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConvertToFieldNames: got %v, want %v", got, want)
	}
}

func TestConvertRoundTripOverMappedKeys(t *testing.T) {
	m := NewTableMapper()
	m.MapFields(testFields())

	original := Record{
		"field_1": "Alice",
		"field_2": float64(30),
		"custom":  "untouched",
	}

	back := m.ConvertToFieldIDs(m.ConvertToFieldNames(original))
	if !reflect.DeepEqual(back, original) {
		t.Errorf("round trip: got %v, want %v", back, original)
	}
}

func TestDecodeRow(t *testing.T) {
	type person struct {
		Name  string  `json:"Name"`
		Age   int     `json:"Age"`
		Email *string `json:"Email"`
	}

	m := NewTableMapper()
	m.MapFields(testFields())

	row := Record{
		"field_1": "Alice",
		"field_2": float64(30),
		"field_3": nil, // null-valued optional field
	}

	got, err := DecodeRow[person](m, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got.Name != "Alice" || got.Age != 30 {
		t.Errorf("DecodeRow: got %+v", got)
	}
	if got.Email != nil {
		t.Errorf("Email: got %v, want nil", *got.Email)
	}
}

func TestDecodeRowTypeMismatch(t *testing.T) {
	type person struct {
		Age int `json:"Age"`
	}

	m := NewTableMapper()
	m.MapFields(testFields())

	_, err := DecodeRow[person](m, Record{"field_2": "not a number"})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("error type: got %T, want *DecodeError", err)
	}
}
