// Package testsupport holds fixtures shared by renderer and CLI tests: sample
// prediction payloads and page snapshots produced by a real controller run.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/goliatone/go-weatherform/pkg/controller"
	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
)

// Today is the fixed "now" of fixtures; Tomorrow is the default date it
// produces.
const (
	Today    = "2025-01-01"
	Tomorrow = "2025-01-02"
)

// Clock returns a clock pinned to noon UTC on Today.
func Clock() func() time.Time {
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

// BasicPayload is the response shape of the basic layout.
const BasicPayload = `{"success":true,"prediction":{"date":"2025-01-02","predicted_temp":21.5,"climate_condition":"Sunny","predicted_precip":0.0,"predicted_visibility":15}}`

// ExtendedPayload is the richer response shape, using the legacy climate key.
const ExtendedPayload = `{"success":true,"prediction":{"date":"2025-01-02","predicted_temp":18.25,"likely_climate":"Rain","predicted_precip":4.2,"predicted_visibility":7,"predicted_cloud":85,"predicted_wind_speed":12.34,"input_parameters":{"wind_direction":"270"},"calculation_time":"0.042s"}}`

// MustResponse decodes a response payload.
func MustResponse(t *testing.T, payload string) prediction.Response {
	t.Helper()

	var resp prediction.Response
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("decode response fixture: %v", err)
	}
	return resp
}

// Submit runs one controller submission on a fresh document. The submit
// handler answers with resp and err. The document and the outcome are
// returned for further assertions.
func Submit(t *testing.T, resp prediction.Response, err error, options ...page.DocumentOption) (*page.Document, controller.Outcome) {
	t.Helper()

	doc := page.NewDocument(options...)
	handler := prediction.ClientFunc(func(context.Context, prediction.Request) (prediction.Response, error) {
		return resp, err
	})
	ctrl, cerr := controller.New(doc, handler,
		controller.WithClock(Clock()),
		controller.WithLocation(time.UTC),
		controller.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if cerr != nil {
		t.Fatalf("controller: %v", cerr)
	}
	ctrl.Init()
	return doc, ctrl.Submit(Context())
}

// Snapshot is Submit followed by doc.Snapshot().
func Snapshot(t *testing.T, resp prediction.Response, err error, options ...page.DocumentOption) page.Snapshot {
	t.Helper()

	doc, _ := Submit(t, resp, err, options...)
	return doc.Snapshot()
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
