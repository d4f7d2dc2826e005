// Package weatherform wires the weather prediction form together: the
// embedded contract, the HTTP client, the form controller and the output
// renderers.
package weatherform

import (
	"context"
	"fmt"
	"io/fs"

	internalcontract "github.com/goliatone/go-weatherform/internal/contract"
	"github.com/goliatone/go-weatherform/pkg/client"
	"github.com/goliatone/go-weatherform/pkg/contract"
	"github.com/goliatone/go-weatherform/pkg/controller"
	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
	"github.com/goliatone/go-weatherform/pkg/render"
	"github.com/goliatone/go-weatherform/pkg/renderers/jsondoc"
	"github.com/goliatone/go-weatherform/pkg/renderers/text"
	"github.com/goliatone/go-weatherform/pkg/renderers/vanilla"
)

// Outcome aliases controller.Outcome for callers that only import the root
// package.
type Outcome = controller.Outcome

// NewParser constructs a contract parser backed by the internal kin-openapi
// implementation while keeping the concrete type hidden from consumers.
func NewParser() contract.Parser {
	return internalcontract.New()
}

// LoadContract parses the embedded contract for the prediction operation.
func LoadContract(ctx context.Context) (*contract.Contract, error) {
	c, err := NewParser().Parse(ctx, embeddedContract, OperationID)
	if err != nil {
		return nil, fmt.Errorf("weatherform: load contract: %w", err)
	}
	return c, nil
}

// NewClient builds an HTTP prediction client whose responses are checked
// against the embedded contract.
func NewClient(ctx context.Context, endpoint string, options ...client.Option) (*client.Client, error) {
	c, err := LoadContract(ctx)
	if err != nil {
		return nil, err
	}
	opts := append([]client.Option{client.WithResponseValidator(c)}, options...)
	return client.New(endpoint, opts...)
}

// NewDocument builds an in-memory page prefilled with the contract defaults.
func NewDocument(c *contract.Contract, options ...page.DocumentOption) *page.Document {
	opts := options
	if c != nil {
		opts = append([]page.DocumentOption{page.WithValues(c.Defaults())}, options...)
	}
	return page.NewDocument(opts...)
}

// NewController is a shortcut for controller.New.
func NewController(p page.Page, predictor prediction.Client, options ...controller.Option) (*controller.Controller, error) {
	return controller.New(p, predictor, options...)
}

// NewRendererRegistry returns a registry holding the built-in pretty, json
// and html renderers.
func NewRendererRegistry(options ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("weatherform: html renderer: %w", err)
	}

	registry := render.NewRegistry()
	for _, r := range []render.Renderer{text.New(), jsondoc.New(), html} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
