// Package jsondoc renders a page snapshot as a JSON document for scripting.
package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "json"

// Option configures the json renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the document with indent. An empty indent yields
// compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithElements adds the raw element states to the document.
func WithElements(include bool) Option {
	return func(r *Renderer) {
		r.elements = include
	}
}

// Renderer encodes a snapshot's view as JSON.
type Renderer struct {
	indent   string
	elements bool
}

var _ render.Renderer = (*Renderer)(nil)

// Document is the JSON payload.
type Document struct {
	render.View
	Elements map[string]page.ElementState `json:"elements,omitempty"`
}

// New returns the json renderer, indenting with two spaces by default.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name returns the registry name.
func (r *Renderer) Name() string { return Name }

// ContentType reports JSON.
func (r *Renderer) ContentType() string { return "application/json" }

// Render encodes the view, plus element states when enabled, with a
// trailing newline.
func (r *Renderer) Render(ctx context.Context, snapshot page.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Document{View: render.NewView(snapshot, options)}
	if doc.Fields == nil {
		doc.Fields = []render.FieldView{}
	}
	if r.elements {
		doc.Elements = snapshot.Elements
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode: %w", err)
	}
	return append(out, '\n'), nil
}
