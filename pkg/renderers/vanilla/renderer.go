// Package vanilla renders a page snapshot as a standalone HTML document. The
// page template runs on the pongo2 engine and the selected theme's tokens are
// emitted as CSS custom properties.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/render"
	rendertemplate "github.com/goliatone/go-weatherform/pkg/render/template"
	gotemplate "github.com/goliatone/go-weatherform/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

// Option configures the html renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	variant          string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves themes through selector instead of the built-in
// manifest.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// WithTheme picks the theme and variant passed to the selector.
func WithTheme(name, variant string) Option {
	return func(cfg *config) {
		cfg.themeName = strings.TrimSpace(name)
		cfg.variant = strings.TrimSpace(variant)
	}
}

// Renderer renders snapshots through the themed page template.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

// New constructs the html renderer applying any provided options. The theme
// is resolved once, so an unknown theme fails here rather than per render.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.selector == nil {
		cfg.selector = NewManifestSelector(DefaultTheme, DefaultVariant, DefaultManifest())
	}

	selection, err := cfg.selector.Select(cfg.themeName, cfg.variant)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, theme: RendererConfig(selection)}, nil
}

// Name returns the registry name.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports UTF-8 HTML.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme reports the resolved theme configuration.
func (r *Renderer) Theme() *theme.RendererConfig {
	return r.theme
}

// Render executes the page template with the view and theme context.
func (r *Renderer) Render(ctx context.Context, snapshot page.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(r.pageTemplate(), map[string]any{
		"view":  render.NewView(snapshot, options),
		"theme": r.themeContext(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageTemplate() string {
	if r.theme != nil {
		if partial := strings.TrimSpace(r.theme.Partials[PartialPage]); partial != "" {
			return partial
		}
	}
	return PageTemplate
}

func (r *Renderer) themeContext() map[string]any {
	if r.theme == nil {
		return map[string]any{}
	}
	ctx := map[string]any{
		"name":    r.theme.Theme,
		"variant": r.theme.Variant,
		"vars":    sortedCSSVars(r.theme.CSSVars),
	}
	if r.theme.AssetURL != nil {
		if href := r.theme.AssetURL(AssetStylesheet); href != "" {
			ctx["stylesheet"] = href
		}
	}
	return ctx
}
