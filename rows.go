package baserow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// OrderDirection selects ascending or descending sort for one field.
type OrderDirection int

const (
	OrderAsc OrderDirection = iota
	OrderDesc
)

type orderClause struct {
	field     string
	direction OrderDirection
}

// RowsResponse is the paginated envelope for row queries with generic
// records. Count is absent in view-scoped queries on some server
// versions; Next and Previous are opaque continuation cues whose
// presence signals more pages.
type RowsResponse struct {
	Count    *int64   `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Record `json:"results"`
}

// TypedRowsResponse is the paginated envelope with rows decoded into T.
type TypedRowsResponse[T any] struct {
	Count    *int64
	Next     *string
	Previous *string
	Results  []T
}

// RowQuery collects the parameters of one row query. Obtain it from
// Table.Rows, configure it fluently, and execute it exactly once with
// Get or Rows. Nothing is validated until execution.
type RowQuery struct {
	table *Table

	viewID  int64
	order   []orderClause
	filters []FilterTriple

	size int
	page int

	offset    int
	offsetSet bool
	pageSet   bool

	userFieldNames    bool
	userFieldNamesSet bool
}

// Rows starts a query against the table with the default page size of
// 100 and page number 1.
func (t *Table) Rows() *RowQuery {
	return &RowQuery{table: t, size: 100, page: 1}
}

// View scopes the query to a server-stored view. Filters and sort set
// on the query still apply on top of the view's base query.
func (q *RowQuery) View(id int64) *RowQuery {
	q.viewID = id
	return q
}

// OrderBy appends a sort clause. Clauses encode in insertion order, so
// the first call has the highest sort priority. When the table is
// mapped, field names are translated to `field_<id>` tokens; unmapped
// names pass through raw.
func (q *RowQuery) OrderBy(field string, direction OrderDirection) *RowQuery {
	q.order = append(q.order, orderClause{field: field, direction: direction})
	return q
}

// FilterBy appends a filter condition. The value always travels as a
// string; the server interprets numeric and boolean semantics and
// rejects operators incompatible with the field's type.
func (q *RowQuery) FilterBy(field string, op Filter, value string) *RowQuery {
	q.filters = append(q.filters, FilterTriple{Field: field, Filter: op, Value: value})
	return q
}

// Size sets the page size. Must be positive; validated at execution.
func (q *RowQuery) Size(size int) *RowQuery {
	q.size = size
	return q
}

// Page sets the page number. Must be positive; validated at execution.
func (q *RowQuery) Page(page int) *RowQuery {
	q.page = page
	q.pageSet = true
	return q
}

// Offset switches to legacy offset-based pagination. Unless Page was
// set explicitly as well, the page parameter is omitted. The client
// does not reject the combination; the server owns the precedence of
// page versus offset.
func (q *RowQuery) Offset(offset int) *RowQuery {
	q.offset = offset
	q.offsetSet = true
	return q
}

// UserFieldNames asks the server to key response records by field
// names instead of `field_<id>`. The flag has no effect while the
// table carries a schema mapping: client-side mapping always wins and
// the parameter is not sent. The two shaping strategies are mutually
// exclusive; do not expect both conventions in one response.
func (q *RowQuery) UserFieldNames(enabled bool) *RowQuery {
	q.userFieldNames = enabled
	q.userFieldNamesSet = true
	return q
}

// Get executes the query and returns generic records. On a mapped
// table every record's keys are converted to field names; otherwise
// records are returned exactly as the server keyed them.
func (q *RowQuery) Get(ctx context.Context) (*RowsResponse, error) {
	env, err := q.run(ctx)
	if err != nil {
		return nil, err
	}

	var results []Record
	if err := json.Unmarshal(env.Results, &results); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if m := q.table.Mapper(); m != nil {
		for i, row := range results {
			results[i] = m.ConvertToFieldNames(row)
		}
	}

	return &RowsResponse{
		Count:    env.Count,
		Next:     env.Next,
		Previous: env.Previous,
		Results:  results,
	}, nil
}

// Rows executes the query and decodes every record into T. Exactly one
// shaping path runs per call: a mapped table routes every record
// through the field mapping, an unmapped table decodes the results
// array structurally as-is.
func Rows[T any](ctx context.Context, q *RowQuery) (*TypedRowsResponse[T], error) {
	env, err := q.run(ctx)
	if err != nil {
		return nil, err
	}

	var results []T
	if m := q.table.Mapper(); m != nil {
		var rows []Record
		if err := json.Unmarshal(env.Results, &rows); err != nil {
			return nil, &DecodeError{Err: err}
		}
		results = make([]T, 0, len(rows))
		for _, row := range rows {
			typed, err := DecodeRow[T](m, row)
			if err != nil {
				return nil, err
			}
			results = append(results, typed)
		}
	} else {
		if err := json.Unmarshal(env.Results, &results); err != nil {
			return nil, &DecodeError{Err: err}
		}
	}

	return &TypedRowsResponse[T]{
		Count:    env.Count,
		Next:     env.Next,
		Previous: env.Previous,
		Results:  results,
	}, nil
}

// rowsEnvelope defers decoding of the results array so each shaping
// path decodes it exactly once.
type rowsEnvelope struct {
	Count    *int64          `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

func (q *RowQuery) run(ctx context.Context) (*rowsEnvelope, error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}

	path := "/api/database/rows/table/" + strconv.FormatInt(q.table.id, 10) + "/"
	req, err := q.table.client.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}

	var env rowsEnvelope
	if err := q.table.client.doJSON(req, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// params validates pagination and encodes the query. Validation
// happens here so a bad query never reaches the network.
func (q *RowQuery) params() (url.Values, error) {
	if q.size <= 0 {
		return nil, ErrInvalidPageSize
	}
	if q.page <= 0 {
		return nil, ErrInvalidPage
	}

	m := q.table.Mapper()
	v := url.Values{}

	if q.viewID != 0 {
		v.Set("view_id", strconv.FormatInt(q.viewID, 10))
	}

	if len(q.order) > 0 {
		tokens := make([]string, 0, len(q.order))
		for _, clause := range q.order {
			token := q.fieldToken(m, clause.field)
			if clause.direction == OrderDesc {
				token = "-" + token
			}
			tokens = append(tokens, token)
		}
		v.Set("order_by", strings.Join(tokens, ","))
	}

	for _, triple := range q.filters {
		key := "filter__" + q.fieldToken(m, triple.Field) + "__" + string(triple.Filter)
		v.Add(key, triple.Value)
	}

	v.Set("size", strconv.Itoa(q.size))
	if q.pageSet || !q.offsetSet {
		v.Set("page", strconv.Itoa(q.page))
	}
	if q.offsetSet {
		v.Set("offset", strconv.Itoa(q.offset))
	}

	// Client-side mapping supersedes server-side friendly names: with a
	// mapping attached the parameter is suppressed even when requested.
	if q.userFieldNamesSet && m == nil {
		v.Set("user_field_names", strconv.FormatBool(q.userFieldNames))
	}

	return v, nil
}

// fieldToken translates a field reference for the wire: mapped names
// become `field_<id>`, everything else passes through raw.
func (q *RowQuery) fieldToken(m *TableMapper, field string) string {
	if m == nil {
		return field
	}
	if id, ok := m.FieldID(field); ok {
		return "field_" + strconv.FormatInt(id, 10)
	}
	return field
}
