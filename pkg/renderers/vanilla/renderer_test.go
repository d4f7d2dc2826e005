package vanilla

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
	"github.com/goliatone/go-weatherform/pkg/render"
	"github.com/goliatone/go-weatherform/pkg/testsupport"
)

func TestRenderPredictedPage(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	snap := testsupport.Snapshot(t, testsupport.MustResponse(t, testsupport.ExtendedPayload), nil)
	out, err := renderer.Render(testsupport.Context(), snap, render.RenderOptions{
		Notice:   `<em>Beta</em> forecasts<script>alert(1)</script>`,
		Endpoint: "http://localhost:5000/predict",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<title>Weather Prediction</title>`,
		`data-theme="default" data-variant="light"`,
		`--wf-color-background: #f5f7fa;`,
		`class="weatherform weatherform--predicted" data-layout="extended"`,
		`<aside class="notice"><em>Beta</em> forecasts</aside>`,
		`<dd id="prediction-temp">18.25°C</dd>`,
		`<dd id="prediction-wind">12.3 km/h (270°)</dd>`,
		`<dd id="calculation-time">0.042s</dd>`,
		`<dd id="date">2025-01-02</dd>`,
		`Endpoint: http://localhost:5000/predict`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	for _, banned := range []string{`<script>`, `id="error"`, `<link rel="stylesheet"`} {
		if strings.Contains(html, banned) {
			t.Fatalf("expected output not to contain %q\n%s", banned, html)
		}
	}
}

func TestRenderErrorPageEscapesMessage(t *testing.T) {
	renderer, err := New(WithTheme("default", "dark"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	snap := testsupport.Snapshot(t, prediction.Response{Error: `date "x" rejected`}, nil)
	out, err := renderer.Render(testsupport.Context(), snap, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`data-variant="dark"`,
		`--wf-color-background: #111827;`,
		`--wf-radius: 8px;`,
		`<p class="error-message">date &quot;x&quot; rejected</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, `id="result"`) {
		t.Fatalf("expected result panel to be omitted\n%s", html)
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := renderer.Render(ctx, page.NewDocument().Snapshot(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewRejectsUnknownTheme(t *testing.T) {
	if _, err := New(WithTheme("acme", "")); err == nil {
		t.Fatalf("expected unknown theme to fail")
	}
	if _, err := New(WithTheme("default", "sepia")); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestCustomThemeOverridesPageAndAssets(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			PartialPage: "acme/page.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/acme/",
			Files: map[string]string{
				AssetStylesheet: "acme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{
					Files: map[string]string{AssetStylesheet: "acme.dark.css"},
				},
			},
		},
	}
	files := fstest.MapFS{
		"acme/page.tmpl": {Data: []byte(`{{ theme.stylesheet }}|{% for var in theme.vars %}{{ var.name }}={{ var.value }}{% endfor %}|{{ view.status }}`)},
	}

	renderer, err := New(
		WithTemplatesFS(files),
		WithThemeSelector(NewManifestSelector("acme", "base", manifest)),
		WithTheme("", "dark"),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	cfg := renderer.Theme()
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if diff := cmp.Diff(map[string]string{"--wf-brand": "#654321"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}

	out, err := renderer.Render(testsupport.Context(), page.NewDocument().Snapshot(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "/assets/acme/acme.dark.css|--wf-brand=#654321|idle"; got != want {
		t.Fatalf("custom page mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestTemplatesFSContainsPage(t *testing.T) {
	if _, err := TemplatesFS().Open(PageTemplate); err != nil {
		t.Fatalf("expected embedded page template: %v", err)
	}
}
