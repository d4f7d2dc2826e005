package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/goliatone/go-weatherform/pkg/prediction"
)

var (
	// ErrCircuitOpen is returned without contacting the server while the
	// breaker is open.
	ErrCircuitOpen = errors.New("client: circuit breaker is open")
	// ErrContractMismatch is returned in strict mode when a response does not
	// match the contract.
	ErrContractMismatch = errors.New("client: response does not match contract")

	errServerStatus = errors.New("server error status")
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// HeaderRequestID carries the per-call request id.
const HeaderRequestID = "X-Request-ID"

// Client posts prediction requests to a remote endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[reply]
	cfg      config
}

// reply is a fully read response.
type reply struct {
	status int
	body   []byte
}

var _ prediction.Client = (*Client)(nil)

// New constructs a Client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func New(endpoint string, options ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("client: parse endpoint: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("client: endpoint %q must be an absolute http(s) URL", endpoint)
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	c := &Client{
		endpoint: parsed.String(),
		http:     cfg.httpClient,
		cfg:      cfg,
	}
	if cfg.failureThreshold > 0 {
		c.breaker = newBreaker(parsed.Host, cfg)
	}
	return c, nil
}

func newBreaker(host string, cfg config) *gobreaker.CircuitBreaker[reply] {
	threshold := cfg.failureThreshold
	return gobreaker.NewCircuitBreaker[reply](gobreaker.Settings{
		Name:        "prediction:" + host,
		MaxRequests: 1,
		Timeout:     cfg.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Cancellation is the caller's doing, not the server's.
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			cfg.logger.Warn("prediction circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict posts req as JSON and decodes the response body. Server failures
// reported in the body (success false, any status) are returned as a
// Response, not an error.
func (c *Client) Predict(ctx context.Context, req prediction.Request) (prediction.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return prediction.Response{}, fmt.Errorf("client: encode request: %w", err)
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return prediction.Response{}, fmt.Errorf("client: build request: %w", err)
	}
	requestID := c.cfg.requestID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.cfg.userAgent)
	httpReq.Header.Set(HeaderRequestID, requestID)

	log := c.cfg.logger.With("request_id", requestID, "endpoint", c.endpoint)
	start := time.Now()
	log.Debug("posting prediction request", "date", req.Date)

	var resp reply
	if c.breaker != nil {
		resp, err = c.breaker.Execute(func() (reply, error) { return c.exchange(httpReq) })
	} else {
		resp, err = c.exchange(httpReq)
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return prediction.Response{}, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	if err != nil && !errors.Is(err, errServerStatus) {
		return prediction.Response{}, err
	}
	body := resp.body

	var out prediction.Response
	if err := json.Unmarshal(body, &out); err != nil {
		return prediction.Response{}, fmt.Errorf("client: decode response (status %d): %w", resp.status, err)
	}

	log.Debug("prediction response received",
		"status", resp.status,
		"success", out.Success,
		"duration", time.Since(start))

	if c.cfg.validator != nil {
		if verr := c.cfg.validator.ValidateResponse(body); verr != nil {
			if c.cfg.strict {
				return prediction.Response{}, fmt.Errorf("%w: %w", ErrContractMismatch, verr)
			}
			log.Warn("prediction response does not match contract", slog.Any("error", verr))
		}
	}

	return out, nil
}

// exchange performs the round trip and reads the body. A 5xx reply whose body
// is not JSON is reported as errServerStatus alongside the reply; a 5xx that
// carries a JSON body is an answer from the server and is not an error.
func (c *Client) exchange(req *http.Request) (reply, error) {
	r, err := c.http.Do(req)
	if err != nil {
		return reply{}, fmt.Errorf("client: post %s: %w", c.endpoint, err)
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return reply{}, fmt.Errorf("client: read response: %w", err)
	}
	out := reply{status: r.StatusCode, body: body}
	if r.StatusCode >= http.StatusInternalServerError && !json.Valid(body) {
		return out, fmt.Errorf("%w %d", errServerStatus, r.StatusCode)
	}
	return out, nil
}
