package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// RequestBody is a payload the client can send as a JSON POST body.
// With strict set, implementations reject fields or combinations the
// API would not accept instead of sending them.
type RequestBody interface {
	Data(strict bool) (map[string]any, error)
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Requester is what the resource managers need from a client.
type Requester interface {
	CreatePostRequest(ctx context.Context, endpoint string, body RequestBody) (*Response, error)
	CreateGetRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error)
}

// Body is a RequestBody over a plain map, optionally checked against a
// schema in strict mode.
type Body struct {
	data   map[string]any
	schema *Schema
}

// NewBody wraps data as a request body.
func NewBody(data map[string]any) *Body {
	return &Body{data: data}
}

// WithSchema sets the schema used in strict mode.
func (b *Body) WithSchema(schema *Schema) *Body {
	b.schema = schema
	return b
}

// Data returns the compacted map, validated against the schema in strict mode.
func (b *Body) Data(strict bool) (map[string]any, error) {
	data := Compact(b.data)
	if strict && b.schema != nil {
		if err := b.schema.Validate(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Encode renders a payload the way the API expects it: indented with four
// spaces, slashes and HTML characters left as-is, no trailing newline.
func Encode(data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Compact returns a copy of data with nil values removed at every level.
func Compact(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		if v == nil {
			continue
		}
		out[k] = compactValue(v)
	}
	return out
}

func compactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Compact(t)
	case []map[string]any:
		items := make([]any, 0, len(t))
		for _, item := range t {
			items = append(items, Compact(item))
		}
		return items
	case []any:
		items := make([]any, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			items = append(items, compactValue(item))
		}
		return items
	default:
		return v
	}
}
