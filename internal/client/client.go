package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/resilience"
)

// DefaultBaseURL is the address of a locally running desktop.
const DefaultBaseURL = "http://localhost:8000"

// Config configures a Client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultConfig returns settings for a local desktop.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      10 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
	}
}

// APIError is an error response from the desktop API.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("desktop api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("desktop api: %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the desktop API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to a desktop over its JSON API. Transient failures and 5xx
// responses are retried; repeated failures open a circuit breaker.
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
}

// New creates a client for cfg.BaseURL.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "luminctl/1.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	breaker := resilience.New("desktop-api", resilience.Settings{
		MaxRequests: 1,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{resty: restyClient, breaker: breaker}
}

// BaseURL returns the desktop address.
func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

type call struct {
	method string
	path   string
	query  map[string]string
	body   interface{}
	out    interface{}
}

// do runs one API call. Client errors (4xx) are returned as *APIError
// without counting against the breaker.
func (c *Client) do(ctx context.Context, cl call) error {
	var apiErr *APIError

	err := c.breaker.Do(ctx, func() error {
		req := c.resty.R().
			SetContext(ctx).
			SetError(&APIError{})
		if cl.query != nil {
			req.SetQueryParams(cl.query)
		}
		if cl.body != nil {
			req.SetBody(cl.body)
		}
		if cl.out != nil {
			req.SetResult(cl.out)
		}

		resp, err := req.Execute(cl.method, cl.path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
		}
		if !resp.IsError() {
			return nil
		}

		e, _ := resp.Error().(*APIError)
		if e == nil {
			e = &APIError{}
		}
		e.Status = resp.StatusCode()
		if e.Status < http.StatusInternalServerError {
			apiErr = e
			return nil
		}
		return e
	})
	if err != nil {
		return err
	}
	if apiErr != nil {
		return apiErr
	}
	return nil
}
