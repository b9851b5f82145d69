// Package api implements the authenticated request gateway: the single
// chokepoint through which every backend call is made. It injects the
// bearer token read from the session store on each call (never cached, so
// a logout mid-flight is observed by the next call), normalizes response
// envelopes, and maps failures to a small error taxonomy.
//
// Navigation is deliberately not a concern here: an HTTP 401 surfaces as
// the typed ErrUnauthorized, and the decision to clear the session and
// redirect belongs to the top-level auth handler.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dsmolyakov/jobdeck/internal/logging"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
// The session store implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Multipart describes a file-upload body. When set, the JSON content type
// is not applied; the multipart encoder supplies its own content type with
// the correct boundary.
type Multipart struct {
	Field    string
	FileName string
	Content  io.Reader
	Extra    map[string]string
}

// Request describes one backend call. Method defaults to GET, or to POST
// when a body is present.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Multipart *Multipart
	Headers   map[string]string
}

// Client is the gateway. It holds no per-session mutable state.
type Client struct {
	baseURL    string
	http       *http.Client
	tokens     TokenSource
	log        logging.Logger
	getRetries uint64
}

// New constructs a gateway for the given backend base URL. tokens may be
// nil for a client that only hits public endpoints.
func New(baseURL string, tokens TokenSource, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{},
		tokens:     tokens,
		log:        log,
		getRetries: 2,
	}
}

// SetHTTPClient replaces the underlying transport, e.g. to apply a global
// timeout or a test transport.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// SetGetRetries sets how many additional attempts an idempotent GET gets
// on transport-level failure. Mutations are never retried.
func (c *Client) SetGetRetries(n uint64) {
	c.getRetries = n
}

// Do executes one call and decodes a 2xx JSON body into out (ignored when
// out is nil or the body is empty). Error mapping:
//
//   - 401                → ErrUnauthorized
//   - other non-2xx      → *APIError with the parsed {message} body
//   - no response at all → error matching ErrUnavailable
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		if r.Body != nil || r.Multipart != nil {
			method = http.MethodPost
		} else {
			method = http.MethodGet
		}
	}

	bodyBytes, contentType, err := c.encodeBody(r)
	if err != nil {
		return err
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	token := ""
	if c.tokens != nil {
		token, err = c.tokens.Token(ctx)
		if err != nil {
			c.log.Warn(ctx, "reading session token", "error", err)
			token = ""
		}
	}

	send := func(ctx context.Context) (*http.Response, error) {
		var body io.Reader
		if bodyBytes != nil {
			body = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		for k, v := range r.Headers {
			req.Header.Set(k, v)
		}
		return c.http.Do(req)
	}

	resp, err := c.send(ctx, method, send)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, r.Path, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, r.Path, errors.Join(ErrUnavailable, err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, r.Path, err)
		}
		return nil

	default:
		return decodeAPIError(resp.StatusCode, data)
	}
}

// send runs the request, retrying transport-level failures for GETs only.
// HTTP error statuses are responses, not transport failures, and are never
// retried here.
func (c *Client) send(ctx context.Context, method string, send func(context.Context) (*http.Response, error)) (*http.Response, error) {
	if method != http.MethodGet || c.getRetries == 0 {
		return send(ctx)
	}

	var resp *http.Response
	backoff := retry.WithMaxRetries(c.getRetries, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var sendErr error
		resp, sendErr = send(ctx)
		if sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) encodeBody(r Request) ([]byte, string, error) {
	if r.Multipart != nil {
		return encodeMultipart(r.Multipart)
	}
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}
		return data, "application/json", nil
	}
	return nil, "", nil
}

func encodeMultipart(m *Multipart) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(m.Field, m.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, m.Content); err != nil {
		return nil, "", err
	}
	for k, v := range m.Extra {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	// The encoder owns the content type: it carries the boundary.
	return buf.Bytes(), w.FormDataContentType(), nil
}

func decodeAPIError(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return &APIError{Status: status, Message: "request failed"}
	}
	return &APIError{Status: status, Message: body.Message}
}
