// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"github.com/bureau-foundation/boxoffice/lib/version"
)

// DefaultTimeout bounds a whole request/response exchange when Config
// leaves Timeout unset.
const DefaultTimeout = 15 * time.Second

// RequestIDHeader carries the per-request correlation identifier.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the platform root, e.g. "http://localhost:5000".
	BaseURL string

	// Timeout bounds each exchange. Zero means DefaultTimeout.
	Timeout time.Duration

	// Compression negotiates gzip/zstd response encoding.
	Compression bool

	// Transport is the underlying round tripper. If nil,
	// http.DefaultTransport is used.
	Transport http.RoundTripper

	// Logger receives one debug record per exchange. If nil, logging
	// is discarded.
	Logger *slog.Logger
}

// Client is a typed client for the ticketing platform. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	parsedBase *url.URL
	httpClient *http.Client
	jar        *sessionJar
	logger     *slog.Logger
}

// New creates a Client with an empty session.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("storefront: BaseURL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("storefront: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("storefront: BaseURL %q must be http or https", config.BaseURL)
	}

	jar, err := newSessionJar()
	if err != nil {
		return nil, fmt.Errorf("storefront: %w", err)
	}

	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if config.Compression {
		transport = gzhttp.Transport(transport)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		parsedBase: parsed,
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
		jar:    jar,
		logger: logger,
	}, nil
}

// BaseURL returns the platform root this client talks to.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// exchange is a completed HTTP round trip with its body already read.
type exchange struct {
	statusCode int
	body       []byte
}

func (response *exchange) ok() bool {
	return response.statusCode >= 200 && response.statusCode < 300
}

// do performs one request. A non-nil error means the exchange did not
// complete (network failure, timeout, cancellation, unreadable body);
// HTTP error statuses are returned as ordinary exchanges.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, requestBody any) (*exchange, error) {
	requestURL := client.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", version.UserAgent())
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	request.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Debug("platform request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	body, err := readBody(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response body: %w", method, path, err)
	}

	client.logger.Debug("platform request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)
	return &exchange{statusCode: response.StatusCode, body: body}, nil
}

// call performs a request and decodes a 2xx body into target (skipped
// when target is nil). Non-2xx statuses become *HTTPError.
func (client *Client) call(ctx context.Context, op, method, path string, query url.Values, requestBody, target any) error {
	response, err := client.do(ctx, method, path, query, requestBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !response.ok() {
		return &HTTPError{Op: op, StatusCode: response.statusCode, Body: string(response.body)}
	}
	if target == nil {
		return nil
	}
	if err := decodeBody(response.body, target); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// decodeList accepts both the {"data": [...]} envelope of the list
// endpoints and a bare JSON array.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := decodeBody(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := decodeBody(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// list performs a GET on a list endpoint.
func list[T any](ctx context.Context, client *Client, op, path string, query url.Values) ([]T, error) {
	response, err := client.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !response.ok() {
		return nil, &HTTPError{Op: op, StatusCode: response.statusCode, Body: string(response.body)}
	}
	items, err := decodeList[T](response.body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
