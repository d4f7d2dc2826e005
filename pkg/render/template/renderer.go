package template

import (
	"io"
)

// TemplateRenderer is the engine seam used by the html renderer. Callers can
// inject their own engine as long as it renders named templates from its
// configured filesystem.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
