package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkin/internal/domain/record"

	"golang.org/x/exp/slog"
)

const (
	userAgent       = "checkin/1.0"
	maxResponseBody = 1 << 20
)

var ErrStatus = errors.New("unexpected upstream status")

// StatusError carries the HTTP status of a non-2xx upstream reply.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

type Config struct {
	BaseURL  string
	Resource string
	Timeout  time.Duration
}

// Client talks to the remote record service. It implements record.Repository.
type Client struct {
	client   *http.Client
	log      *slog.Logger
	baseURL  string
	resource string
}

var _ record.Repository = (*Client)(nil)

func New(cfg Config, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("upstream url must be http or https, got %q", cfg.BaseURL)
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &Client{
		client:   client,
		log:      log.With(slog.String("component", "upstream")),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		resource: strings.Trim(cfg.Resource, "/"),
	}, nil
}

// Get загружает запись: GET {base}/{resource}/{id}
func (c *Client) Get(ctx context.Context, id string) (*record.Record, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.resource+"/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var rec record.Record
	if err := c.parseResponse(resp, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// MarkStatus обновляет статус: PUT {base}/{resource}/status/{id} без тела
func (c *Client) MarkStatus(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodPut, c.resource+"/status/"+url.PathEscape(id))
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug("upstream request",
		slog.String("method", method),
		slog.String("url", req.URL.String()),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("upstream response",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
