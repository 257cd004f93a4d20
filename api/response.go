package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RequestContext describes the request a response belongs to. It is kept
// for diagnostics; the api_key header is redacted.
type RequestContext struct {
	Method        string
	URL           string
	Headers       http.Header
	RequestBody   string
	RequestParams url.Values
	StatusCode    int
}

// Pager is the cursor block returned by list endpoints.
type Pager struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	ErrorCode int             `json:"error_code"`
	ErrorInfo string          `json:"error_info"`
	Pager     *Pager          `json:"pager"`
}

// Response is a successful API response.
type Response struct {
	data  json.RawMessage
	pager *Pager
	raw   []byte
	ctx   RequestContext
}

// NewResponse parses a raw response body. Non-2xx statuses, success=false
// and undecodable bodies all come back as *Error.
func NewResponse(raw []byte, ctx RequestContext) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{
			StatusCode: ctx.StatusCode,
			Info:       "unable to decode response",
			Body:       raw,
			Context:    ctx,
			Err:        err,
		}
	}

	failedStatus := ctx.StatusCode != 0 && (ctx.StatusCode < 200 || ctx.StatusCode >= 300)
	if failedStatus || !env.Success {
		return nil, &Error{
			StatusCode: ctx.StatusCode,
			Code:       env.ErrorCode,
			Info:       env.ErrorInfo,
			Body:       raw,
			Context:    ctx,
		}
	}

	return &Response{
		data:  env.Data,
		pager: env.Pager,
		raw:   raw,
		ctx:   ctx,
	}, nil
}

// Data returns the data member as a map, or nil when it is not an object.
func (r *Response) Data() map[string]any {
	var out map[string]any
	if err := json.Unmarshal(r.data, &out); err != nil {
		return nil
	}
	return out
}

// DecodeData decodes the data member into v.
func (r *Response) DecodeData(v any) error {
	if len(bytes.TrimSpace(r.data)) == 0 {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(r.data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// Pager returns the cursor block of list endpoints, or nil.
func (r *Response) Pager() *Pager { return r.pager }

// Raw returns the response body as received.
func (r *Response) Raw() []byte { return r.raw }

// Context returns the request the response belongs to.
func (r *Response) Context() RequestContext { return r.ctx }
