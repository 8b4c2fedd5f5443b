// Package api is the REST client for the Roveri backend. It owns the
// bearer-credential transport, including the silent refresh-and-retry
// protocol every authenticated request depends on.
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

	"roveri/internal/utils"
)

// TokenSource is the persisted credential pair. storage.Store satisfies it.
type TokenSource interface {
	LoadTokens() (access, refresh string, err error)
	SaveTokens(access, refresh string) error
	ClearTokens() error
}

type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    *utils.RemoteLogger
}

// NewClient builds a client against baseURL (e.g. "http://localhost:8000/api/").
func NewClient(baseURL string, tokens TokenSource, log *utils.RemoteLogger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{
		base:   base,
		tokens: tokens,
		log:    log,
	}
	refresh := base.ResolveReference(&url.URL{Path: "token/refresh/"})
	c.http = &http.Client{
		Timeout: 15 * time.Second,
		Transport: &authTransport{
			base:       http.DefaultTransport,
			tokens:     tokens,
			refreshURL: refresh.String(),
			log:        log,
		},
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.base.String() + path
	}
	return c.base.ResolveReference(ref).String()
}

// WebsocketURL returns the live-channel address for a room, with the
// access credential as a query parameter (the socket handshake cannot
// carry a bearer header through every proxy).
func (c *Client) WebsocketURL(roomID int64) string {
	u := *c.base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = fmt.Sprintf("/ws/chat/%d/", roomID)
	u.RawQuery = ""
	if c.tokens != nil {
		if access, _, err := c.tokens.LoadTokens(); err == nil && access != "" {
			u.RawQuery = url.Values{"token": {access}}.Encode()
		}
	}
	return u.String()
}

// do issues one request and returns the raw response body. Failure
// statuses come back as *HTTPError; anything else is transport-level.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			Status: resp.StatusCode,
			Detail: extractDetail(data),
			Body:   data,
		}
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	data, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// getList decodes endpoints that return either a bare array or a
// DRF-style page with a results field.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode list %s: %w", path, err)
	}
	return page.Results, nil
}
