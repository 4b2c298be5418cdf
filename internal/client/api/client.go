package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Client talks to the library API rooted at a base URL such as
// "http://127.0.0.1:8000/api".
type Client struct {
	baseURL   string
	http      *http.Client
	logger    logging.Logger
	requestID func() string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default transport.
// A zero value leaves requests bounded only by the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New validates baseURL and builds a Client.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{},
		logger:    logging.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call is one API round trip.
type call struct {
	method string
	path   string
	token  string
	body   any
	out    any
	// unwrap accepts a {"data": ...} envelope around out.
	unwrap bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	var reader io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", cl.method, cl.path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", cl.method, cl.path, err)
	}

	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+cl.token)
	}

	log := c.logger.With("method", cl.method, "path", cl.path, "request_id", reqID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "api request failed", "error", err)
		return fmt.Errorf("%s %s: %w: %w", cl.method, cl.path, ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "api response read failed", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%s %s: read body: %w: %w", cl.method, cl.path, ErrTransport, err)
	}

	log.Debug(ctx, "api request", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body)
	}

	if cl.out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := decodeBody(body, cl.out, cl.unwrap); err != nil {
		log.Warn(ctx, "api response malformed", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%s %s: %w: %w", cl.method, cl.path, ErrTransport, err)
	}
	return nil
}

func decodeBody(body []byte, out any, unwrap bool) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("response is not valid json")
	}
	if unwrap {
		if data := gjson.GetBytes(body, "data"); data.IsObject() || data.IsArray() {
			body = []byte(data.Raw)
		}
	}
	return json.Unmarshal(body, out)
}

// decodeError maps a non-2xx response onto the error taxonomy. A body that
// is not JSON is a malformed response and reported as ErrTransport; a 401
// additionally carries its *StatusError so it still matches ErrUnauthorized.
func decodeError(code int, body []byte) error {
	if !gjson.ValidBytes(body) {
		err := fmt.Errorf("status %d: %w: malformed body", code, ErrTransport)
		if code == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", err, &StatusError{Code: code})
		}
		return err
	}

	var message string
	if m := gjson.GetBytes(body, "message"); m.Type == gjson.String {
		message = m.String()
	}

	if code != http.StatusUnprocessableEntity {
		return &StatusError{Code: code, Message: message}
	}

	ve := &ValidationError{Message: message}
	gjson.GetBytes(body, "errors").ForEach(func(key, value gjson.Result) bool {
		fe := FieldError{Field: key.String()}
		if value.IsArray() {
			for _, m := range value.Array() {
				fe.Messages = append(fe.Messages, m.String())
			}
		} else if value.Exists() {
			fe.Messages = append(fe.Messages, value.String())
		}
		ve.Fields = append(ve.Fields, fe)
		return true
	})
	return ve
}
