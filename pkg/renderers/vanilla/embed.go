package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// PageTemplate is the template rendered for every snapshot unless the theme
// overrides the PartialPage partial.
const PageTemplate = "templates/page.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can extend or
// replace the page template.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
