package baserow

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one table row: a flat mapping from field key to decoded
// JSON value. Keys are either `field_<id>` or the human-readable field
// name depending on the negotiated response shape; the server-assigned
// row id appears as the reserved "id" key.
type Record = map[string]any

// TableField is the schema metadata for one column. Fetched fresh from
// the server on each discovery call and never mutated locally.
type TableField struct {
	ID          int64   `json:"id"`
	TableID     int64   `json:"table_id"`
	Name        string  `json:"name"`
	Order       int     `json:"order"`
	Type        string  `json:"type"`
	Primary     bool    `json:"primary"`
	ReadOnly    bool    `json:"read_only"`
	Description *string `json:"description"`
}

// TableMapper translates between field names and field identifiers in
// both directions. Lookups that miss are not errors: an unknown key is
// a valid state meaning "pass the key through unchanged".
//
// A mapper is built once by MapFields and read-only afterwards, so it
// is safe for concurrent readers. Table handles replace the whole
// mapper atomically on re-discovery instead of mutating it.
type TableMapper struct {
	fields   []TableField
	idToName map[int64]string
	nameToID map[string]int64
}

// NewTableMapper returns an empty mapper under which every lookup
// misses and every key passes through.
func NewTableMapper() *TableMapper {
	return &TableMapper{
		idToName: map[int64]string{},
		nameToID: map[string]int64{},
	}
}

// MapFields replaces the entire registry with mappings derived from
// fields. Both indices are rebuilt from scratch; previous mappings are
// gone afterwards. When two fields share a name - the server permits
// this even though it violates the table's own constraints - the
// last-inserted mapping wins in the name index. The client makes no
// attempt to repair duplicates.
func (m *TableMapper) MapFields(fields []TableField) {
	idToName := make(map[int64]string, len(fields))
	nameToID := make(map[string]int64, len(fields))
	for _, f := range fields {
		idToName[f.ID] = f.Name
		nameToID[f.Name] = f.ID
	}
	m.fields = fields
	m.idToName = idToName
	m.nameToID = nameToID
}

// FieldID looks up the identifier for a field name. Exact string match
// only: no normalization, no case folding.
func (m *TableMapper) FieldID(name string) (int64, bool) {
	id, ok := m.nameToID[name]
	return id, ok
}

// FieldName looks up the human-readable name for a field identifier.
func (m *TableMapper) FieldName(id int64) (string, bool) {
	name, ok := m.idToName[id]
	return name, ok
}

// Fields returns the field list the mapper was built from.
func (m *TableMapper) Fields() []TableField {
	return m.fields
}

// ConvertToFieldIDs rewrites every key that resolves through the name
// index to its `field_<id>` form. Keys that do not resolve - already
// ID-keyed entries, reserved keys like "id" - are kept verbatim, which
// makes the conversion idempotent. Values are untouched.
func (m *TableMapper) ConvertToFieldIDs(row Record) Record {
	out := make(Record, len(row))
	for key, value := range row {
		if id, ok := m.nameToID[key]; ok {
			out["field_"+strconv.FormatInt(id, 10)] = value
		} else {
			out[key] = value
		}
	}
	return out
}

// ConvertToFieldNames rewrites ID-form keys back to field names. Two
// key shapes appear across server versions: bare numeric strings and
// `field_<id>`. Both are attempted, in that order; keys that resolve
// through neither are kept verbatim.
func (m *TableMapper) ConvertToFieldNames(row Record) Record {
	out := make(Record, len(row))
	for key, value := range row {
		if name, ok := m.resolveKey(key); ok {
			out[name] = value
		} else {
			out[key] = value
		}
	}
	return out
}

func (m *TableMapper) resolveKey(key string) (string, bool) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		if name, ok := m.idToName[id]; ok {
			return name, true
		}
	}
	if rest, found := strings.CutPrefix(key, "field_"); found {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
			if name, ok := m.idToName[id]; ok {
				return name, true
			}
		}
	}
	return "", false
}

// DecodeRow converts a row's keys to field names through m and decodes
// the result into T. A mismatch between T and the available keys or
// value types surfaces as a *DecodeError, never as a silently
// default-filled value.
func DecodeRow[T any](m *TableMapper, row Record) (T, error) {
	var out T
	raw, err := json.Marshal(m.ConvertToFieldNames(row))
	if err != nil {
		return out, &DecodeError{Err: err}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &DecodeError{Err: err}
	}
	return out, nil
}
