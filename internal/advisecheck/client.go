package advisecheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/okian/upskill/pkg/logger"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// StatusError is a non-200 answer from the service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client talks to the advisor API. Every call waits on the rate limiter and
// runs through a circuit breaker that only counts transport errors and 5xx.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a client for baseURL. A non-positive rps disables pacing.
func NewClient(baseURL string, timeout time.Duration, rps float64) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	settings := gobreaker.Settings{
		Name:        "advise-check",
		MaxRequests: 1,
		Timeout:     BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Get().Warn(context.Background(), "circuit breaker state changed",
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
		IsSuccessful: isSuccessful,
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code < http.StatusInternalServerError
}

// Get performs a GET and returns the 200 body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a JSON POST and returns the 200 body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data)
}

// GetJSON performs a GET and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	body, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	return unmarshalJSON(body, v)
}

// State reports the breaker state.
func (c *Client) State() string {
	return c.breaker.State().String()
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.breaker.Execute(func() ([]byte, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		data, err := readResponseBody(resp)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			if len(data) > maxErrorBody {
				data = data[:maxErrorBody]
			}
			return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}
		return data, nil
	})
}

func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	return io.ReadAll(resp.Body)
}
