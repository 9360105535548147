package formspree

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

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/config"
)

// ErrEndpointUnavailable is returned while the circuit breaker is open
var ErrEndpointUnavailable = errors.New("form endpoint unavailable")

// maxErrorBody caps how much of a failed response is kept for logs
const maxErrorBody = 4 << 10

// StatusError is returned when the endpoint answers outside the 2xx range
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("form endpoint error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("form endpoint error: status %d, body: %s", e.StatusCode, e.Body)
}

// errorResponse is the JSON error document the endpoint returns with Accept: application/json
type errorResponse struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field,omitempty"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Submitter forwards a form to the hosted form-processing endpoint
type Submitter interface {
	Submit(ctx context.Context, fields url.Values) error
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates a new form endpoint client
func NewClient(cfg config.FormEndpointConfig, logger *zap.Logger) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(cfg.URL),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "form-endpoint",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// Submit posts the fields form-encoded. Any 2xx status is success.
// Only transport errors and 5xx responses count against the breaker.
func (c *Client) Submit(ctx context.Context, fields url.Values) error {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		statusErr, err := c.post(ctx, fields)
		if err != nil {
			return nil, err
		}
		if statusErr != nil && statusErr.StatusCode >= http.StatusInternalServerError {
			return nil, statusErr
		}
		return statusErr, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Form endpoint circuit open", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrEndpointUnavailable, err)
	}
	if err != nil {
		return err
	}
	if statusErr, ok := result.(*StatusError); ok && statusErr != nil {
		return statusErr
	}
	return nil
}

func (c *Client) post(ctx context.Context, fields url.Values) (*StatusError, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil {
		statusErr.Message = parsed.message()
	}
	return statusErr, nil
}

func (r errorResponse) message() string {
	if len(r.Errors) > 0 {
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return r.Error
}
