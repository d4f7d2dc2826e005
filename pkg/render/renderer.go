package render

import (
	"context"

	"github.com/goliatone/go-weatherform/pkg/page"
)

// Renderer converts a page snapshot into a byte representation (text, JSON,
// HTML).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot page.Snapshot, options RenderOptions) ([]byte, error)
}
