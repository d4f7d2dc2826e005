// Package text renders a page snapshot as aligned plain text for terminals.
package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "pretty"

// Option configures the pretty renderer.
type Option func(*Renderer)

// WithInputs lists the submitted form values above the outcome.
func WithInputs(show bool) Option {
	return func(r *Renderer) {
		r.showInputs = show
	}
}

// Renderer writes a snapshot as aligned plain text for terminals.
type Renderer struct {
	showInputs bool
}

var _ render.Renderer = (*Renderer)(nil)

// New returns the pretty renderer. Inputs are shown by default.
func New(options ...Option) *Renderer {
	r := &Renderer{showInputs: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name returns the registry name.
func (r *Renderer) Name() string { return Name }

// ContentType reports plain UTF-8 text.
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the title, the inputs table and the outcome section.
func (r *Renderer) Render(ctx context.Context, snapshot page.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view := render.NewView(snapshot, options)

	var buf bytes.Buffer
	fmt.Fprintln(&buf, view.Title)
	fmt.Fprintln(&buf, strings.Repeat("=", len([]rune(view.Title))))

	if view.Notice != "" {
		fmt.Fprintln(&buf, render.PlainText(view.Notice))
	}

	if r.showInputs && len(view.Fields) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Inputs")
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		for _, field := range view.Fields {
			value := field.Value
			if value == "" {
				value = "-"
			}
			fmt.Fprintf(tw, "  %s\t%s\n", field.Label, value)
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("text renderer: %w", err)
		}
	}

	fmt.Fprintln(&buf)
	switch view.Status {
	case render.StatusPredicted:
		fmt.Fprintln(&buf, "Prediction")
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		for _, line := range view.Result {
			fmt.Fprintf(tw, "  %s\t%s\n", line.Label, line.Value)
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("text renderer: %w", err)
		}
	case render.StatusError:
		fmt.Fprintf(&buf, "Error: %s\n", view.Error)
	default:
		fmt.Fprintln(&buf, "No prediction yet.")
	}

	return buf.Bytes(), nil
}
