package baserow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
)

// Table is a handle on one Baserow table. It starts unmapped; AutoMap
// performs schema discovery and attaches a field mapping, after which
// all operations translate between field names and `field_<id>` keys
// and typed row decoding becomes available. The transition is one-way:
// re-running AutoMap replaces the mapping wholesale, it never reverts
// the handle to unmapped.
//
// The mapping is held behind an atomic pointer, so queries running
// concurrently with a re-discovery see either the old or the new
// mapping in full, never a mix.
type Table struct {
	client *Baserow
	id     int64
	mapper atomic.Pointer[TableMapper]
}

// ID returns the table's server-assigned identifier.
func (t *Table) ID() int64 {
	return t.id
}

// Mapper returns the current field mapping snapshot, or nil while the
// table is unmapped.
func (t *Table) Mapper() *TableMapper {
	return t.mapper.Load()
}

// AutoMap fetches the table's field list and installs a fresh mapping
// built from it. The same handle is returned for chaining.
func (t *Table) AutoMap(ctx context.Context) (*Table, error) {
	fields, err := t.client.TableFields(ctx, t.id)
	if err != nil {
		return nil, err
	}
	mapper := NewTableMapper()
	mapper.MapFields(fields)
	t.mapper.Store(mapper)
	t.client.logger.Debug("table mapped", "table_id", t.id, "field_count", len(fields))
	return t, nil
}

// RecordOptions adjusts response shaping for single-record operations.
type RecordOptions struct {
	// UserFieldNames asks the server to key the response by field
	// names instead of `field_<id>`. It only has effect while the
	// table is unmapped: an attached schema mapping takes precedence
	// and the parameter is not sent.
	UserFieldNames bool
}

// Create inserts a single record.
// POST /api/database/rows/table/{table_id}/
//
// On a mapped table the record's name keys are translated to
// `field_<id>` form before sending, and the response keys are
// translated back to names.
func (t *Table) Create(ctx context.Context, record Record, opts *RecordOptions) (Record, error) {
	path := fmt.Sprintf("/api/database/rows/table/%d/", t.id)
	return t.writeRecord(ctx, http.MethodPost, path, record, opts)
}

// Update patches a single record by row id.
// PATCH /api/database/rows/table/{table_id}/{row_id}/
func (t *Table) Update(ctx context.Context, rowID int64, record Record, opts *RecordOptions) (Record, error) {
	path := fmt.Sprintf("/api/database/rows/table/%d/%d/", t.id, rowID)
	return t.writeRecord(ctx, http.MethodPatch, path, record, opts)
}

// GetOne retrieves a single record by row id.
// GET /api/database/rows/table/{table_id}/{row_id}/
func (t *Table) GetOne(ctx context.Context, rowID int64, opts *RecordOptions) (Record, error) {
	req, err := t.client.newRequest(ctx, http.MethodGet, t.rowPath(rowID), t.recordQuery(opts), nil)
	if err != nil {
		return nil, err
	}
	var row Record
	if err := t.client.doJSON(req, &row); err != nil {
		return nil, err
	}
	if m := t.Mapper(); m != nil {
		row = m.ConvertToFieldNames(row)
	}
	return row, nil
}

// GetOneAs retrieves a single record and decodes it into T. On a
// mapped table the record is converted to field names first; on an
// unmapped table the response is decoded structurally as-is, which
// works when the server already returned friendly names. A decode
// failure on an unmapped table usually means AutoMap should be called
// first.
func GetOneAs[T any](ctx context.Context, t *Table, rowID int64, opts *RecordOptions) (T, error) {
	var out T

	req, err := t.client.newRequest(ctx, http.MethodGet, t.rowPath(rowID), t.recordQuery(opts), nil)
	if err != nil {
		return out, err
	}

	if m := t.Mapper(); m != nil {
		var row Record
		if err := t.client.doJSON(req, &row); err != nil {
			return out, err
		}
		return DecodeRow[T](m, row)
	}

	if err := t.client.doJSON(req, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete removes a single record by row id. Success is status-only;
// the endpoint has no payload contract.
// DELETE /api/database/rows/table/{table_id}/{row_id}/
func (t *Table) Delete(ctx context.Context, rowID int64) error {
	req, err := t.client.newRequest(ctx, http.MethodDelete, t.rowPath(rowID), nil, nil)
	if err != nil {
		return err
	}
	return t.client.doJSON(req, nil)
}

func (t *Table) rowPath(rowID int64) string {
	return fmt.Sprintf("/api/database/rows/table/%d/%d/", t.id, rowID)
}

// recordQuery builds the query parameters for single-record calls.
// The user_field_names flag passes through only while unmapped; with a
// schema mapping attached the client does the translation itself.
func (t *Table) recordQuery(opts *RecordOptions) url.Values {
	if opts == nil || !opts.UserFieldNames || t.Mapper() != nil {
		return nil
	}
	q := url.Values{}
	q.Set("user_field_names", strconv.FormatBool(opts.UserFieldNames))
	return q
}

func (t *Table) writeRecord(ctx context.Context, method, path string, record Record, opts *RecordOptions) (Record, error) {
	m := t.Mapper()

	payload := record
	if m != nil {
		payload = m.ConvertToFieldIDs(record)
	}

	req, err := t.client.newRequest(ctx, method, path, t.recordQuery(opts), payload)
	if err != nil {
		return nil, err
	}

	var row Record
	if err := t.client.doJSON(req, &row); err != nil {
		return nil, err
	}
	if m != nil {
		row = m.ConvertToFieldNames(row)
	}
	return row, nil
}
