package vanilla

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-weatherform/pkg/render/template/gotemplate"
)

// Theme defaults.
const (
	DefaultTheme   = "default"
	DefaultVariant = "light"

	// PartialPage lets a theme swap the page template.
	PartialPage = "weatherform.page"
	// AssetStylesheet names an optional stylesheet linked from the page.
	AssetStylesheet = "weatherform.stylesheet"

	cssVarPrefix = "wf"
)

// DefaultManifest is the built-in theme with a light base and a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color.background": "#f5f7fa",
			"color.surface":    "#ffffff",
			"color.text":       "#1f2933",
			"color.muted":      "#52606d",
			"color.accent":     "#2563eb",
			"color.error":      "#b91c1c",
			"radius":           "8px",
			"font.body":        "system-ui, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color.background": "#111827",
					"color.surface":    "#1f2937",
					"color.text":       "#f9fafb",
					"color.muted":      "#9ca3af",
					"color.accent":     "#60a5fa",
					"color.error":      "#f87171",
				},
			},
		},
	}
}

// ManifestSelector resolves themes from an in-memory manifest set.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. Empty defaults fall back to
// DefaultTheme and DefaultVariant.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *ManifestSelector {
	if defaultTheme == "" {
		defaultTheme = DefaultTheme
	}
	if defaultVariant == "" {
		defaultVariant = DefaultVariant
	}
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, m := range manifests {
		if m != nil && m.Name != "" {
			s.manifests[m.Name] = m
		}
	}
	return s
}

// Select implements theme.ThemeSelector. The default variant names the base
// tokens; any other variant must be declared by the manifest.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = s.defaultTheme
	}
	if variant = strings.TrimSpace(variant); variant == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("vanilla renderer: theme %q not found", name)
	}
	if variant != s.defaultVariant {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("vanilla renderer: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base ones and every token gets a CSS custom property.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars[gotemplate.CSSVarName(cssVarPrefix, key)] = value
	}

	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(manifest.Templates, variant.Templates),
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedCSSVars(vars map[string]string) []cssVar {
	out := make([]cssVar, 0, len(vars))
	for name, value := range vars {
		out = append(out, cssVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
