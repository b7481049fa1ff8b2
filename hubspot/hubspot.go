package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/silinternational/category-sync/internal"
)

const DefaultInitialInterval = 500 * time.Millisecond

var _ internal.CRM = (*HubSpot)(nil)

// HubSpot talks to the HubSpot CRM v3 REST API using a private app access token
type HubSpot struct {
	BaseURL         string
	PageSize        int
	MaxTries        uint
	MaxElapsed      time.Duration
	InitialInterval time.Duration
	httpClient      *http.Client
	logger          *zap.Logger
}

// APIError is returned for any response with a status code of 400 or more
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Retryable reports whether a later attempt of the same request may succeed
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func NewHubSpot(config internal.HubSpotConfig, logger *zap.Logger) *HubSpot {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: config.AccessToken,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(context.Background(), tokenSource)
	httpClient.Timeout = config.Timeout()

	maxTries := config.MaxTries
	if maxTries < 1 {
		maxTries = 1
	}

	return &HubSpot{
		BaseURL:         strings.TrimSuffix(config.BaseURL, "/"),
		PageSize:        config.PageSize,
		MaxTries:        maxTries,
		MaxElapsed:      config.RetryMaxElapsed(),
		InitialInterval: DefaultInitialInterval,
		httpClient:      httpClient,
		logger:          logger,
	}
}

// request sends a JSON request, retrying network errors, 429 and 5xx
// responses, and returns the response body
func (h *HubSpot) request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = h.InitialInterval

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		respBody, err := h.send(ctx, method, path, payload)
		if err == nil {
			return respBody, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}

		h.logger.Warn("HubSpot request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return nil, err
	}

	respBody, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(h.MaxTries),
		backoff.WithMaxElapsedTime(h.MaxElapsed))
	if err != nil {
		return nil, err
	}
	return respBody, nil
}

func (h *HubSpot) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.BaseURL+path, bodyReader)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.logger.Debug("HubSpot request", zap.String("method", method), zap.String("path", path))

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error issuing http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	return respBody, nil
}

// errorMessage pulls "message" out of a HubSpot error response, falling back to the raw body
func errorMessage(body []byte) string {
	parsed, err := parseJSON(body)
	if err == nil {
		if message := stringValue(parsed, "message"); message != "" {
			return message
		}
	}
	return strings.TrimSpace(string(body))
}

// parseJSON decodes numbers as json.Number so ids keep their exact digits
func parseJSON(body []byte) (*gabs.Container, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return gabs.ParseJSONDecoder(dec)
}

// stringValue returns the value at hierarchy as a string, or "" when it is
// missing or null. Numbers keep the digits they were sent with.
func stringValue(c *gabs.Container, hierarchy ...string) string {
	if c == nil {
		return ""
	}
	child := c.Search(hierarchy...)
	if child == nil {
		return ""
	}
	switch v := child.Data().(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}
