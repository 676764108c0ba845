package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mobilecare/pkg/metrics"
)

// TokenSource yields the credential attached to authenticated requests.
// An empty token means the request goes out without an Authorization
// header (the login call itself).
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		httpClient: &http.Client{
			Timeout: timeout, // 10秒超时，避免终端卡死
		},
		tokens: tokens,
		logger: logger,
	}
}

// do issues one request against the backend and decodes the response
// into out when out is non-nil. Errors are always one of the typed
// errors in errors.go so callers can branch on kind.
func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: method + " " + endpoint, Err: err}
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &RequestError{Op: method + " " + endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(endpoint, method, "error", time.Since(start))
		c.logger.Error("Backend unreachable",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return &RequestError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	metrics.RecordBackendRequest(endpoint, method, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "unknown error"}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		c.logger.Error("Backend error response",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestError{Op: method + " " + endpoint, Err: err}
		}
	}
	return nil
}
