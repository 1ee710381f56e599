// Package docstore is a client for the HTTP+JSON API fronting the remote document database.
//
// Reads are GET requests with the collection and optional name filter as query parameters.
// Mutations are JSON bodies shaped as {"coleccion": ..., "filtro": {...}, "datos": {...}}
// sent with POST (insert), PUT (update) and DELETE (delete).
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	queryCollection = "coleccion"
	queryName       = "nombre"
)

// Observer is notified about every finished call, status is 0 when transport failed
type Observer interface {
	ObserveRemote(method string, status int, start time.Time)
}

type request struct {
	Collection string `json:"coleccion"`
	Filter     any    `json:"filtro,omitempty"`
	Data       any    `json:"datos,omitempty"`
}

// Response is status and raw body returned by the document API
type Response struct {
	StatusCode int
	Body       []byte
}

// Success reports whether status code is 2xx
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Option configures Client
type Option func(*Client)

// WithHTTPClient replaces default http client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets logger for remote calls
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithObserver sets observer of remote calls
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// Client sends requests for a single collection of the document API
type Client struct {
	httpClient *http.Client
	url        string
	collection string
	logger     logrus.FieldLogger
	observer   Observer
}

// NewClient builds new Client for collection served at endpoint
func NewClient(endpoint string, collection string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		url:        endpoint,
		collection: collection,
		logger:     logrus.StandardLogger(),
	}

	for _, o := range opts {
		o(c)
	}
	return c
}

// Find lists documents of the collection, name filter is skipped when empty
func (c *Client) Find(ctx context.Context, name string) (*Response, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("malformed document API url %q - %w", c.url, err)
	}

	q := u.Query()
	q.Set(queryCollection, c.collection)
	if name != "" {
		q.Set(queryName, name)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Insert creates document with data
func (c *Client) Insert(ctx context.Context, data any) (*Response, error) {
	return c.send(ctx, http.MethodPost, request{Collection: c.collection, Data: data})
}

// Update applies data to documents matching filter
func (c *Client) Update(ctx context.Context, filter any, data any) (*Response, error) {
	return c.send(ctx, http.MethodPut, request{Collection: c.collection, Filter: filter, Data: data})
}

// Delete removes documents matching filter
func (c *Client) Delete(ctx context.Context, filter any) (*Response, error) {
	return c.send(ctx, http.MethodDelete, request{Collection: c.collection, Filter: filter})
}

func (c *Client) send(ctx context.Context, method string, body request) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body - %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	start := time.Now()
	log := c.logger.WithFields(logrus.Fields{
		"method":     req.Method,
		"uri":        req.URL.String(),
		"collection": c.collection,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(req.Method, 0, start)
		log.WithError(err).Error("document API request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(req.Method, 0, start)
		log.WithError(err).Error("failed to read document API response")
		return nil, err
	}

	c.observe(req.Method, resp.StatusCode, start)
	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Microseconds(),
	}).Debug("document API request completed")

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRemote(method, status, start)
	}
}
