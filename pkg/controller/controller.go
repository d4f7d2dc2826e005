package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
)

// Outcome reports how a submission ended.
type Outcome string

const (
	// OutcomePredicted means a prediction was rendered into the result panel.
	OutcomePredicted Outcome = "predicted"
	// OutcomeRejected means the backend reported a failure.
	OutcomeRejected Outcome = "rejected"
	// OutcomeInvalid means the date failed validation; no call was made.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeFailed means the call or its decoding failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeBusy means another submission was in flight; nothing changed.
	OutcomeBusy Outcome = "busy"
)

// SubmitHandler performs the prediction call for a submission.
type SubmitHandler func(ctx context.Context, req prediction.Request) (prediction.Response, error)

var errDateNotInFuture = errors.New("controller: date is not after today")

// Controller drives one weather form. Construct it once per page.
type Controller struct {
	handlerMu sync.RWMutex
	handler   SubmitHandler
	client    prediction.Client

	fields     map[string]page.Element
	display    map[string]page.Element
	button     page.Element
	result     page.Element
	errPanel   page.Element
	errMessage page.Element

	now       func() time.Time
	location  *time.Location
	logger    *slog.Logger
	messages  Messages
	idleLabel string
	busyLabel string

	inflight *semaphore.Weighted
}

// New resolves the form elements on p and returns a controller submitting
// through client. Every missing required element is reported in the error.
func New(p page.Page, client prediction.Client, options ...Option) (*Controller, error) {
	if p == nil {
		return nil, errors.New("controller: page is required")
	}

	cfg := config{
		now:       time.Now,
		location:  time.Local,
		logger:    slog.Default(),
		messages:  DefaultMessages(),
		busyLabel: DefaultBusyLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if client == nil && cfg.handler == nil {
		return nil, errors.New("controller: prediction client or submit handler is required")
	}

	c := &Controller{
		client:    client,
		handler:   cfg.handler,
		fields:    make(map[string]page.Element, len(page.FormFieldIDs())),
		display:   make(map[string]page.Element),
		now:       cfg.now,
		location:  cfg.location,
		logger:    cfg.logger,
		messages:  cfg.messages,
		busyLabel: cfg.busyLabel,
		inflight:  semaphore.NewWeighted(1),
	}
	if c.handler == nil {
		c.handler = client.Predict
	}

	var missing []error
	require := func(id string) page.Element {
		el, ok := p.ElementByID(id)
		if !ok {
			missing = append(missing, fmt.Errorf("%w: #%s", page.ErrElementNotFound, id))
			return nil
		}
		return el
	}

	for _, id := range page.FormFieldIDs() {
		c.fields[id] = require(id)
	}
	c.button = require(page.IDPredictButton)
	c.result = require(page.IDResult)
	c.errPanel = require(page.IDError)
	for _, id := range page.ResultFieldIDs() {
		c.display[id] = require(id)
	}
	for _, id := range page.ExtendedResultFieldIDs() {
		if el, ok := p.ElementByID(id); ok {
			c.display[id] = el
		}
	}
	if c.errPanel != nil {
		msg, ok := p.Query(page.IDError, page.SelectorErrorMessage)
		if !ok {
			missing = append(missing, fmt.Errorf("%w: #%s %s", page.ErrElementNotFound, page.IDError, page.SelectorErrorMessage))
		}
		c.errMessage = msg
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("controller: resolve elements: %w", errors.Join(missing...))
	}

	c.idleLabel = cfg.idleLabel
	if c.idleLabel == "" {
		c.idleLabel = c.button.Text()
	}
	if c.idleLabel == "" {
		c.idleLabel = page.DefaultButtonLabel
	}

	return c, nil
}

// RegisterSubmitHandler replaces the prediction call used by Submit. A nil
// handler restores the client passed to New, when there is one.
func (c *Controller) RegisterSubmitHandler(handler SubmitHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()

	if handler == nil {
		if c.client == nil {
			return
		}
		handler = c.client.Predict
	}
	c.handler = handler
}

func (c *Controller) submitHandler() SubmitHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.handler
}

// Init sets the date control to tomorrow.
func (c *Controller) Init() {
	c.fields[page.IDDate].SetValue(Tomorrow(c.now(), c.location))
}

// Request reads the current form values.
func (c *Controller) Request() prediction.Request {
	values := make(map[string]string, len(c.fields))
	for id, el := range c.fields {
		values[id] = el.Value()
	}
	return prediction.RequestFromValues(values)
}

// Submit runs one submission: validate, call, render. It never returns an
// error; every failure is surfaced in the error panel and the outcome.
func (c *Controller) Submit(ctx context.Context) Outcome {
	if !c.inflight.TryAcquire(1) {
		return OutcomeBusy
	}
	defer c.inflight.Release(1)

	c.result.SetVisible(false)
	c.errPanel.SetVisible(false)

	req := c.Request()
	if err := c.validateDate(req.Date); err != nil {
		c.logger.Debug("prediction date rejected", "date", req.Date, "error", err)
		c.showError(c.messages.FutureDate)
		return OutcomeInvalid
	}

	c.button.SetDisabled(true)
	c.button.SetText(c.busyLabel)
	defer func() {
		c.button.SetDisabled(false)
		c.button.SetText(c.idleLabel)
	}()

	resp, err := c.call(ctx, req)
	if err != nil {
		c.logger.Error("prediction request failed", "date", req.Date, "error", err)
		c.showError(c.messages.Connection)
		return OutcomeFailed
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = c.messages.Fallback
		}
		c.showError(msg)
		return OutcomeRejected
	}
	if resp.Prediction == nil {
		c.logger.Warn("prediction response reported success without a prediction", "date", req.Date)
		c.showError(c.messages.Fallback)
		return OutcomeRejected
	}

	c.showPrediction(*resp.Prediction)
	return OutcomePredicted
}

func (c *Controller) call(ctx context.Context, req prediction.Request) (resp prediction.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("controller: submit handler panic: %v", r)
		}
	}()
	return c.submitHandler()(ctx, req)
}

func (c *Controller) validateDate(raw string) error {
	if err := (prediction.Request{Date: raw}).Validate(); err != nil {
		return err
	}
	selected, err := time.ParseInLocation(prediction.DateLayout, raw, c.location)
	if err != nil {
		return fmt.Errorf("controller: parse date: %w", err)
	}
	if !selected.After(Midnight(c.now(), c.location)) {
		return errDateNotInFuture
	}
	return nil
}

func (c *Controller) showError(message string) {
	c.errMessage.SetText(message)
	c.errPanel.SetVisible(true)
}

func (c *Controller) showPrediction(p prediction.Prediction) {
	c.display[page.IDPredictionDate].SetText(p.Date)
	c.display[page.IDPredictionTemp].SetText(FormatTemperature(p.PredictedTemp))
	c.display[page.IDPredictionClimate].SetText(p.Condition)
	c.display[page.IDPredictionPrecip].SetText(FormatPrecipitation(p.PredictedPrecip))
	c.display[page.IDPredictionVisibility].SetText(FormatVisibility(p.PredictedVisibility))

	if el, ok := c.display[page.IDPredictionCloud]; ok {
		if p.PredictedCloud != nil {
			setOptional(el, FormatCloudCover(*p.PredictedCloud))
		} else {
			setOptional(el, "")
		}
	}

	if el, ok := c.display[page.IDPredictionWind]; ok {
		if p.PredictedWindSpeed != nil {
			var direction *float64
			if dir, ok := p.WindDirection(); ok {
				d := dir.Float64()
				direction = &d
			}
			setOptional(el, FormatWind(*p.PredictedWindSpeed, direction))
		} else {
			setOptional(el, "")
		}
	}

	if el, ok := c.display[page.IDCalculationTime]; ok {
		setOptional(el, p.CalculationTime)
	}

	c.result.SetVisible(true)
}

func setOptional(el page.Element, text string) {
	el.SetText(text)
	el.SetVisible(text != "")
}
