package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEndpoint is the prediction endpoint of a locally running server.
const DefaultEndpoint = "http://localhost:5000/predict"

// DefaultUserAgent identifies the client on outbound requests.
const DefaultUserAgent = "weatherform/1.0"

// DefaultOpenTimeout is how long an enabled breaker stays open when
// WithBreaker is given no positive timeout.
const DefaultOpenTimeout = 30 * time.Second

// ResponseValidator checks a raw response body. *contract.Contract satisfies
// it.
type ResponseValidator interface {
	ValidateResponse(body []byte) error
}

// Option configures a Client.
type Option func(*config)

type config struct {
	httpClient       *http.Client
	timeout          time.Duration
	userAgent        string
	logger           *slog.Logger
	validator        ResponseValidator
	strict           bool
	failureThreshold uint32
	openTimeout      time.Duration
	requestID        func() string
}

func defaultConfig() config {
	return config{
		httpClient:       &http.Client{},
		userAgent:        DefaultUserAgent,
		logger:           slog.Default(),
		openTimeout:      DefaultOpenTimeout,
		requestID:        uuid.NewString,
	}
}

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		if client != nil {
			cfg.httpClient = client
		}
	}
}

// WithTimeout bounds every call. Zero leaves calls bounded only by the
// caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		if timeout >= 0 {
			cfg.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(cfg *config) {
		if agent = strings.TrimSpace(agent); agent != "" {
			cfg.userAgent = agent
		}
	}
}

// WithLogger routes request and contract diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithResponseValidator checks every decoded body with v. Mismatches are
// logged unless WithStrictContract is also set.
func WithResponseValidator(v ResponseValidator) Option {
	return func(cfg *config) {
		cfg.validator = v
	}
}

// WithStrictContract turns contract mismatches into ErrContractMismatch.
func WithStrictContract() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// WithBreaker enables a circuit breaker that opens after threshold
// consecutive outages and stays open for openTimeout. Only transport errors
// and 5xx replies without a JSON body count as outages. A zero threshold
// leaves the breaker off, which is the default.
func WithBreaker(threshold uint32, openTimeout time.Duration) Option {
	return func(cfg *config) {
		cfg.failureThreshold = threshold
		if openTimeout > 0 {
			cfg.openTimeout = openTimeout
		}
	}
}

// WithRequestIDFunc overrides the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.requestID = fn
		}
	}
}
