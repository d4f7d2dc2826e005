package controller

import (
	"log/slog"
	"time"
)

// Messages holds the user-facing texts shown in the error panel.
type Messages struct {
	FutureDate string
	Fallback   string
	Connection string
}

// DefaultMessages returns the stock error panel texts.
func DefaultMessages() Messages {
	return Messages{
		FutureDate: "Please select a future date for prediction.",
		Fallback:   "Prediction failed. Please try again.",
		Connection: "Failed to connect to the prediction server.",
	}
}

func (m Messages) merge(override Messages) Messages {
	if override.FutureDate != "" {
		m.FutureDate = override.FutureDate
	}
	if override.Fallback != "" {
		m.Fallback = override.Fallback
	}
	if override.Connection != "" {
		m.Connection = override.Connection
	}
	return m
}

// DefaultBusyLabel is shown on the submit control while a call is in flight.
const DefaultBusyLabel = "Predicting..."

// Option configures a Controller.
type Option func(*config)

type config struct {
	now       func() time.Time
	location  *time.Location
	logger    *slog.Logger
	messages  Messages
	idleLabel string
	busyLabel string
	handler   SubmitHandler
}

// WithClock overrides the clock used for the default date and validation.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithLocation sets the location calendar dates are evaluated in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(cfg *config) {
		if loc != nil {
			cfg.location = loc
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMessages overrides error panel texts. Empty entries keep the defaults.
func WithMessages(messages Messages) Option {
	return func(cfg *config) {
		cfg.messages = cfg.messages.merge(messages)
	}
}

// WithButtonLabels overrides the submit control's idle and busy labels. An
// empty idle label keeps the label found on the page.
func WithButtonLabels(idle, busy string) Option {
	return func(cfg *config) {
		cfg.idleLabel = idle
		if busy != "" {
			cfg.busyLabel = busy
		}
	}
}

// WithSubmitHandler installs the handler used for prediction calls, taking
// precedence over the client passed to New.
func WithSubmitHandler(handler SubmitHandler) Option {
	return func(cfg *config) {
		if handler != nil {
			cfg.handler = handler
		}
	}
}
