package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client bound to a base URL.
type Client struct {
	baseURL        string
	client         *http.Client
	dismiss404     bool
	defaultHeaders map[string]string
	backoff        *BackoffConfig
	logger         HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	Dismiss404        bool
	DefaultHeaders    map[string]string
	MaxIdleConns      int
	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	Backoff           *BackoffConfig
	Logger            HTTPLogger
}

// BackoffConfig controls retries of failed requests. A request is retried on transport
// errors and 5xx responses, waiting InitialDelay and multiplying it by Multiplier each time.
type BackoffConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 50
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = NewZapHTTPLogger()
	}

	transport := &http.Transport{
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConns,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         &http.Client{Transport: transport, Timeout: opts.ReadTimeout},
		dismiss404:     opts.Dismiss404,
		defaultHeaders: opts.DefaultHeaders,
		backoff:        opts.Backoff,
		logger:         opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

type call struct {
	method      string
	path        string
	headers     map[string]string
	body        any
	successResp any
	errorResp   any
}

// doRequestWithBackoff runs doRequest, retrying per the client backoff
func (hc *Client) doRequestWithBackoff(ctx context.Context, c call) (int, error) {
	backoff := hc.backoff
	status, err := hc.doRequest(ctx, c)
	if backoff == nil {
		return status, err
	}

	delay := backoff.InitialDelay
	for attempt := 1; attempt <= backoff.MaxRetries && isRetryable(status, err); attempt++ {
		hc.logger.LogRequestRetry(c.method, hc.buildURL(c.path), status, err, attempt, backoff.MaxRetries)

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-time.After(delay):
		}

		if backoff.Multiplier > 1 {
			delay = time.Duration(float64(delay) * backoff.Multiplier)
		}
		status, err = hc.doRequest(ctx, c)
	}

	return status, err
}

func isRetryable(status int, err error) bool {
	if err == nil {
		return false
	}
	return status == 0 || status >= http.StatusInternalServerError
}

// doRequest builds the URL, encodes the body, executes the request and decodes the response.
func (hc *Client) doRequest(ctx context.Context, c call) (int, error) {
	target := hc.buildURL(c.path)

	var bodyReader io.Reader
	var contentType string
	var encoded string

	if c.body != nil {
		switch body := c.body.(type) {
		case string:
			encoded = body
			contentType = "text/plain"
		case []byte:
			encoded = string(body)
			contentType = "application/octet-stream"
		default:
			jsonBody, err := json.Marshal(body)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal request body to JSON: %w", err)
			}
			encoded = string(jsonBody)
			contentType = "application/json"
		}
		bodyReader = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, target, bodyReader)
	if err != nil {
		return 0, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hc.logger.LogRequest(c.method, target, encoded)
	start := time.Now()

	resp, err := hc.client.Do(req)
	if err != nil {
		hc.logger.LogResponseError(c.method, target, 0, "", time.Since(start).Milliseconds(), err)
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	latency := time.Since(start).Milliseconds()

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = "application/json"
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		hc.logger.LogResponseSuccess(c.method, target, resp.StatusCode, string(bodyBytes), latency)
		if c.successResp != nil && len(bodyBytes) > 0 {
			if err := unmarshalResponse(bodyBytes, respContentType, c.successResp); err != nil {
				return resp.StatusCode, err
			}
		}
		return resp.StatusCode, nil
	}

	if resp.StatusCode == http.StatusNotFound && hc.dismiss404 {
		return resp.StatusCode, nil
	}

	statusErr := fmt.Errorf("http error: status %d", resp.StatusCode)
	hc.logger.LogResponseError(c.method, target, resp.StatusCode, string(bodyBytes), latency, statusErr)

	if c.errorResp != nil && len(bodyBytes) > 0 {
		_ = unmarshalResponse(bodyBytes, respContentType, c.errorResp)
	}

	return resp.StatusCode, statusErr
}

// unmarshalResponse unmarshals response body based on content type
func unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL joins the base URL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}
