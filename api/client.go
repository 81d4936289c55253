// Package api is the single configured HTTP client for the Beyt marketplace
// backend. Every request goes out with the stored bearer token when one
// exists; requests without a token simply go out unauthenticated.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the current bearer token, empty when logged out. The
// token is re-read on every request so a login or logout is visible to the
// very next call.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Get issues a GET with params encoded into the query string. A nil params
// map is fine.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		if strings.Contains(u, "?") {
			u += "&" + q.Encode()
		} else {
			u += "?" + q.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.send(ctx, http.MethodPut, path, body, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, payload, out)
}

func (c *Client) do(req *http.Request, payload []byte, out interface{}) error {
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	log.Printf("api: %s %s %s", req.Method, req.URL.Path, summarize(payload))

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: req.Method, URL: req.URL.String(), Err: err}
	}

	log.Printf("api: %s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			Op:     req.Method,
			URL:    req.URL.String(),
			Status: resp.StatusCode,
			Body:   respBody,
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func summarize(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	if len(payload) > 200 {
		return string(payload[:200]) + "..."
	}
	return string(payload)
}
