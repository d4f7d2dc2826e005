package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-weatherform/pkg/contract"
	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
	"github.com/goliatone/go-weatherform/pkg/render"
	"github.com/goliatone/go-weatherform/pkg/testsupport"
)

func TestNewViewPredictedExtended(t *testing.T) {
	snap := testsupport.Snapshot(t, testsupport.MustResponse(t, testsupport.ExtendedPayload), nil)

	view := render.NewView(snap, render.RenderOptions{})
	if view.Status != render.StatusPredicted {
		t.Fatalf("expected predicted status, got %q", view.Status)
	}

	want := []render.ResultLine{
		{ID: page.IDPredictionDate, Label: "Date", Value: "2025-01-02"},
		{ID: page.IDPredictionTemp, Label: "Temperature", Value: "18.25°C"},
		{ID: page.IDPredictionClimate, Label: "Condition", Value: "Rain"},
		{ID: page.IDPredictionPrecip, Label: "Precipitation", Value: "4.2 mm"},
		{ID: page.IDPredictionVisibility, Label: "Visibility", Value: "7 km"},
		{ID: page.IDPredictionCloud, Label: "Cloud Cover", Value: "85%"},
		{ID: page.IDPredictionWind, Label: "Wind", Value: "12.3 km/h (270°)"},
		{ID: page.IDCalculationTime, Label: "Calculation Time", Value: "0.042s"},
	}
	if diff := cmp.Diff(want, view.Result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if view.Error != "" {
		t.Fatalf("expected no error, got %q", view.Error)
	}
}

func TestNewViewOmitsAbsentOptionalLines(t *testing.T) {
	snap := testsupport.Snapshot(t, testsupport.MustResponse(t, testsupport.BasicPayload), nil)

	view := render.NewView(snap, render.RenderOptions{})
	ids := make([]string, 0, len(view.Result))
	for _, line := range view.Result {
		ids = append(ids, line.ID)
	}
	if diff := cmp.Diff(page.ResultFieldIDs(), ids); diff != "" {
		t.Fatalf("result ids mismatch (-want +got):\n%s", diff)
	}
}

func TestNewViewError(t *testing.T) {
	tests := []struct {
		name string
		resp prediction.Response
		err  error
		want string
	}{
		{name: "server message", resp: prediction.Response{Error: "bad <b>input</b> & more"}, want: "bad input & more"},
		{name: "fallback", resp: prediction.Response{}, want: "Prediction failed. Please try again."},
		{name: "transport", err: errors.New("connection refused"), want: "Failed to connect to the prediction server."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := render.NewView(testsupport.Snapshot(t, tt.resp, tt.err), render.RenderOptions{})
			if view.Status != render.StatusError {
				t.Fatalf("expected error status, got %q", view.Status)
			}
			if view.Error != tt.want {
				t.Fatalf("error mismatch\nwant: %q\n got: %q", tt.want, view.Error)
			}
			if len(view.Result) != 0 {
				t.Fatalf("expected no result lines, got %v", view.Result)
			}
		})
	}
}

func TestNewViewFieldsFollowContractLabels(t *testing.T) {
	doc := page.NewDocument(page.WithValues(map[string]string{"date": "2025-01-05", "humidity": "40"}))

	view := render.NewView(doc.Snapshot(), render.RenderOptions{
		Title: "Forecast",
		Fields: []contract.Field{
			{Name: "date", Label: "Date"},
			{Name: "humidity"},
		},
		Notice: `<p onclick="x()">Service <a href="https://example.com">status</a></p><script>alert(1)</script>`,
	})

	if view.Title != "Forecast" || view.Status != render.StatusIdle {
		t.Fatalf("unexpected title/status %q/%q", view.Title, view.Status)
	}
	want := []render.FieldView{
		{Name: "date", Label: "Date", Value: "2025-01-05"},
		{Name: "humidity", Label: "humidity", Value: "40"},
	}
	if diff := cmp.Diff(want, view.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{`<p>Service <a href="https://example.com"`, "nofollow", ">status</a></p>"} {
		if !strings.Contains(view.Notice, want) {
			t.Fatalf("expected notice to contain %q, got %q", want, view.Notice)
		}
	}
	for _, banned := range []string{"onclick", "<script", "alert"} {
		if strings.Contains(view.Notice, banned) {
			t.Fatalf("expected notice to drop %q, got %q", banned, view.Notice)
		}
	}
}

func TestNewViewDefaultsTitleAndFields(t *testing.T) {
	view := render.NewView(page.NewDocument().Snapshot(), render.RenderOptions{})
	if view.Title != render.DefaultTitle {
		t.Fatalf("expected default title, got %q", view.Title)
	}
	if len(view.Fields) != len(page.FormFieldIDs()) {
		t.Fatalf("expected %d fields, got %d", len(page.FormFieldIDs()), len(view.Fields))
	}
}
