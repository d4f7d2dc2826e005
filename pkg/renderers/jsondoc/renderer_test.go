package jsondoc

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
	"github.com/goliatone/go-weatherform/pkg/render"
	"github.com/goliatone/go-weatherform/pkg/testsupport"
)

func TestRenderPredictionDocument(t *testing.T) {
	snap := testsupport.Snapshot(t, testsupport.MustResponse(t, testsupport.BasicPayload), nil, page.WithLayout(page.LayoutBasic))

	out, err := New(WithIndent("")).Render(testsupport.Context(), snap, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}

	if got["status"] != "predicted" || got["layout"] != "basic" {
		t.Fatalf("unexpected status/layout: %v/%v", got["status"], got["layout"])
	}
	if _, ok := got["elements"]; ok {
		t.Fatalf("expected elements to be omitted by default")
	}

	result, ok := got["result"].([]any)
	if !ok || len(result) != 5 {
		t.Fatalf("expected five result lines, got %v", got["result"])
	}
	wantTemp := map[string]any{"id": "prediction-temp", "label": "Temperature", "value": "21.5°C"}
	if diff := cmp.Diff(wantTemp, result[1]); diff != "" {
		t.Fatalf("temperature line mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderErrorDocumentWithElements(t *testing.T) {
	snap := testsupport.Snapshot(t, prediction.Response{Error: "bad input"}, nil)

	out, err := New(WithElements(true)).Render(testsupport.Context(), snap, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got Document
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Status != render.StatusError || got.Error != "bad input" {
		t.Fatalf("unexpected status/error: %q/%q", got.Status, got.Error)
	}
	if len(got.Result) != 0 {
		t.Fatalf("expected no result lines, got %v", got.Result)
	}

	wantButton := page.ElementState{Text: page.DefaultButtonLabel, Visible: true}
	if diff := cmp.Diff(wantButton, got.Elements[page.IDPredictButton]); diff != "" {
		t.Fatalf("button state mismatch (-want +got):\n%s", diff)
	}
	if !got.Elements[page.IDError].Visible || got.Elements[page.IDResult].Visible {
		t.Fatalf("expected error panel visible and result hidden")
	}
}
