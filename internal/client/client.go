package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 15 * time.Second

type messageBody struct {
	Message string `json:"message"`
}

// Client talks to the staffing REST API. A 2xx status is the only success
// signal; nothing is retried or cached.
type Client struct {
	http        *resty.Client
	timeout     time.Duration
	rateLimiter *rate.Limiter
	session     string
}

type Option func(*Client)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests. Zero disables the limit.
func WithRateLimit(maxRequestsPerSecond float64) Option {
	return func(c *Client) {
		if maxRequestsPerSecond > 0 {
			c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
		}
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).SetBaseURL(c.http.BaseURL)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    resty.New().SetBaseURL(baseURL),
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.session != "" {
		c.restoreSession(c.session)
	}

	c.http.
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return c
}

func (c *Client) do(ctx context.Context, req *resty.Request, method, path string) (*resty.Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, &TransportError{Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if !resp.IsSuccess() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var body messageBody
		if json.Unmarshal(resp.Body(), &body) == nil {
			apiErr.Message = body.Message
		}
		return resp, apiErr
	}

	return resp, nil
}

// get decodes the JSON response of path into result. query may be nil.
func (c *Client) get(ctx context.Context, path string, query map[string]string, result any) error {
	req := c.http.R()
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := c.do(ctx, req, http.MethodGet, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("error decoding %s response: %w", path, err)
	}

	return nil
}

// send issues a request with a JSON body and returns the "message" field of
// the response, if any.
func (c *Client) send(ctx context.Context, method, path string, body any) (string, error) {
	req := c.http.R()
	if body != nil {
		req.SetBody(body)
	}

	resp, err := c.do(ctx, req, method, path)
	if err != nil {
		return "", err
	}

	// A 2xx without a JSON message body still counts as success.
	var msg messageBody
	_ = json.Unmarshal(resp.Body(), &msg)
	return msg.Message, nil
}
