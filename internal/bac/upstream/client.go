// Package upstream performs the round-trips to the users and publications
// catalogs and decodes their native wire formats into generic trees.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/clbanning/mxj/v2"
	"golang.org/x/time/rate"
)

// Recorder receives the outcome of every upstream call.
type Recorder interface {
	Record(ctx context.Context, outcome domain.CallOutcome)
}

// Options tunes a client. Zero values fall back to defaults.
type Options struct {
	Timeout    time.Duration
	RateLimit  float64
	Burst      int
	Recorder   Recorder
	HTTPClient *http.Client
}

type client struct {
	system     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	recorder   Recorder
}

func newClient(system, baseURL string, opts Options) *client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &client{
		system:     system,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		recorder:   opts.Recorder,
	}
}

// get performs one GET and returns the body of a 2xx response. Any other
// status is returned as *domain.UpstreamError and the body is not parsed.
//
// The call is detached from the caller's cancellation: once started it runs
// to completion or until the client timeout.
func (c *client) get(ctx context.Context, operation, path, rawQuery, accept string) ([]byte, string, error) {
	ctx = context.WithoutCancel(ctx)
	logger := logging.New(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if rawQuery != "" {
		reqURL += "?" + rawQuery
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logger.LogError(operation, err)
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		uerr := &domain.UpstreamError{System: c.system, Err: err}
		c.finish(ctx, operation, start, 0, uerr)
		return nil, "", uerr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		uerr := &domain.UpstreamError{System: c.system, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
		c.finish(ctx, operation, start, resp.StatusCode, uerr)
		return nil, "", uerr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		uerr := &domain.UpstreamError{System: c.system, StatusCode: resp.StatusCode, Body: string(body)}
		c.finish(ctx, operation, start, resp.StatusCode, uerr)
		return nil, "", uerr
	}

	c.finish(ctx, operation, start, resp.StatusCode, nil)
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *client) finish(ctx context.Context, operation string, start time.Time, status int, err error) {
	duration := time.Since(start)
	recordUpstreamCall(c.system, duration, err)

	logger := logging.New(ctx)
	outcome := domain.CallOutcome{
		System:     c.system,
		OK:         err == nil,
		StatusCode: status,
		Latency:    duration,
		At:         time.Now().UTC(),
	}
	if err != nil {
		outcome.Error = err.Error()
		logger.LogWarnf(operation, "system=%s status=%d latency=%s error=%v", c.system, status, duration, err)
	} else {
		logger.LogInfof(operation, "system=%s status=%d latency=%s", c.system, status, duration)
	}

	if c.recorder != nil {
		c.recorder.Record(ctx, outcome)
	}
}

func (c *client) malformed(reason string, args ...any) error {
	return &domain.MalformedError{System: c.system, Reason: fmt.Sprintf(reason, args...)}
}

// decodeTree turns an XML or JSON body into nested map[string]any / []any
// values. XML attributes appear with a "-" prefix and element text next to
// attributes as "#text".
func decodeTree(body []byte, contentType string) (map[string]any, error) {
	if strings.Contains(contentType, "json") {
		return decodeJSON(body)
	}
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}

func decodeJSON(body []byte) (map[string]any, error) {
	var tree map[string]any
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, errors.New("empty document")
	}
	return tree, nil
}
