// Package fetch wraps authenticated HTTP calls to vendor APIs behind a
// uniform Result. Auth preconditions are checked before any network I/O:
// a missing or lapsed token fails immediately without touching the wire.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// Auth errors returned before any request is sent.
var (
	ErrNoToken      = errors.New("no access token available")
	ErrTokenExpired = errors.New("access token expired")
)

// Token carries the bearer credential for an authenticated call.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Result is the uniform outcome of a vendor API call. Exactly one of Data
// or Err is meaningful, keyed by OK. RawBody always holds the response
// bytes when a response was received, for diagnostics.
type Result struct {
	OK      bool
	Status  int
	Data    json.RawMessage
	Text    string
	Err     error
	RawBody []byte
}

// Client performs authenticated vendor calls.
type Client struct {
	httpClient *http.Client
	nowFunc    func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithNowFunc overrides the time source for expiry checks. Used in tests.
func WithNowFunc(f func() time.Time) Option {
	return func(cl *Client) {
		cl.nowFunc = f
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one authenticated call.
type Request struct {
	Method string
	URL    string
	Body   io.Reader
	Header http.Header
	Token  *Token
	// NoAuth skips the token precondition for unauthenticated endpoints.
	NoAuth bool
}

// Do performs the call. Auth preconditions fail before any network I/O,
// verifiable by the absence of a request on the wire. The returned Result
// is always non-nil and Do never panics.
func (c *Client) Do(ctx context.Context, req Request) *Result {
	if !req.NoAuth {
		if req.Token == nil || req.Token.AccessToken == "" {
			return &Result{Err: ErrNoToken}
		}
		if !c.nowFunc().Before(req.Token.ExpiresAt) {
			return &Result{Err: ErrTokenExpired}
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, req.Body)
	if err != nil {
		return &Result{Err: fmt.Errorf("building request: %w", err)}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if !req.NoAuth {
		tokenType := req.Token.TokenType
		if tokenType == "" {
			tokenType = "Bearer"
		}
		httpReq.Header.Set("Authorization", tokenType+" "+req.Token.AccessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &Result{Err: fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{Status: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	res := &Result{Status: resp.StatusCode, RawBody: body}
	parseBody(res, resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res.Err = fmt.Errorf("status %d: %s", resp.StatusCode, errorDetail(res))
		return res
	}

	res.OK = true
	return res
}

// parseBody fills Data or Text based on the response content type. A JSON
// content type with an unparseable body falls back to Text.
func parseBody(res *Result, contentType string) {
	if len(res.RawBody) == 0 {
		return
	}

	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		if json.Valid(res.RawBody) {
			res.Data = json.RawMessage(res.RawBody)
			return
		}
	}
	res.Text = string(res.RawBody)
}

// errorDetail extracts a short error description from a failed response.
func errorDetail(res *Result) string {
	if res.Data != nil {
		var payload struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
			Message          string `json:"message"`
		}
		if err := json.Unmarshal(res.Data, &payload); err == nil {
			switch {
			case payload.ErrorDescription != "":
				return payload.ErrorDescription
			case payload.Error != "":
				return payload.Error
			case payload.Message != "":
				return payload.Message
			}
		}
		return string(res.Data)
	}
	if res.Text != "" {
		return res.Text
	}
	return "empty response body"
}
