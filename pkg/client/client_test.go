package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-weatherform/pkg/controller"
	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
	"github.com/goliatone/go-weatherform/pkg/testsupport"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest() prediction.Request {
	return prediction.Request{
		Date:             "2025-01-02",
		CurrentTemp:      "18",
		Humidity:         "50",
		Pressure:         "1013",
		WindSpeed:        "10",
		WindDirection:    "180",
		CloudCover:       "30",
		ClimateCondition: "Partly Cloudy",
	}
}

func newTestClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	c, err := New(url, opts...)
	require.NoError(t, err)
	return c
}

func TestPredictPostsJSONWithHeaders(t *testing.T) {
	var (
		gotMethod  string
		gotHeaders http.Header
		gotBody    map[string]string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"prediction":{"date":"2025-01-02","predicted_temp":21.5,"climate_condition":"Sunny","predicted_precip":0.0,"predicted_visibility":15}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/predict",
		WithUserAgent("weatherform-test/1.0"),
		WithRequestIDFunc(func() string { return "req-123" }),
	)

	resp, err := c.Predict(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, "weatherform-test/1.0", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "req-123", gotHeaders.Get(HeaderRequestID))
	assert.Equal(t, sampleRequest().Values(), gotBody)

	require.True(t, resp.Success)
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, 21.5, resp.Prediction.PredictedTemp)
	assert.Equal(t, "Sunny", resp.Prediction.Condition)
}

func TestPredictDecodesErrorStatusBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"bad input"}`))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL).Predict(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "bad input", resp.Error)
}

func TestPredictRejectsNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Predict(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client: decode response")
}

func TestPredictTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Predict(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCircuitOpen))
}

func TestPredictHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestClient(t, server.URL, WithTimeout(20*time.Millisecond)).Predict(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPredictOpensBreakerAfterConsecutiveOutages(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<html>upstream unavailable</html>`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithBreaker(3, time.Minute))

	for i := 0; i < 3; i++ {
		_, err := c.Predict(context.Background(), sampleRequest())
		require.Error(t, err, "call %d", i)
		assert.Contains(t, err.Error(), "decode response (status 503)")
	}

	_, err := c.Predict(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, int32(3), hits.Load())
}

func TestPredictBreakerIgnoresServerAnswers(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"model not loaded"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithBreaker(2, time.Minute))

	for i := 0; i < 5; i++ {
		resp, err := c.Predict(context.Background(), sampleRequest())
		require.NoError(t, err, "call %d", i)
		assert.Equal(t, "model not loaded", resp.Error)
	}
	assert.Equal(t, int32(5), hits.Load())
}

func TestPredictBreakerIgnoresCancellation(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error":"bad input"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithBreaker(1, time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Predict(ctx, sampleRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCircuitOpen))

	resp, err := c.Predict(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "bad input", resp.Error)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSubmitReachesServerOnEveryServerError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"model not loaded"}`))
	}))
	defer server.Close()

	doc := page.NewDocument()
	ctrl, err := controller.New(doc, newTestClient(t, server.URL),
		controller.WithClock(testsupport.Clock()),
		controller.WithLocation(time.UTC),
		controller.WithLogger(quietLogger()),
	)
	require.NoError(t, err)
	ctrl.Init()

	message, ok := doc.Query(page.IDError, page.SelectorErrorMessage)
	require.True(t, ok)

	for i := 1; i <= 6; i++ {
		outcome := ctrl.Submit(context.Background())
		assert.Equal(t, controller.OutcomeRejected, outcome, "submit %d", i)
		assert.Equal(t, int32(i), hits.Load(), "submit %d", i)
		assert.Equal(t, "model not loaded", message.Text(), "submit %d", i)
	}
}

type validatorFunc func([]byte) error

func (f validatorFunc) ValidateResponse(body []byte) error { return f(body) }

func TestPredictContractMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"prediction":{"date":"2025-01-02"}}`))
	}))
	defer server.Close()

	mismatch := validatorFunc(func([]byte) error { return errors.New("predicted_temp is required") })

	resp, err := newTestClient(t, server.URL, WithResponseValidator(mismatch)).Predict(context.Background(), sampleRequest())
	require.NoError(t, err, "lenient mode only logs mismatches")
	assert.True(t, resp.Success)

	_, err = newTestClient(t, server.URL, WithResponseValidator(mismatch), WithStrictContract()).Predict(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContractMismatch))
}

func TestNewValidatesEndpoint(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.Endpoint())

	for _, endpoint := range []string{"localhost:5000/predict", "ftp://example.com/predict", "/predict"} {
		_, err := New(endpoint)
		assert.Error(t, err, endpoint)
	}
}
