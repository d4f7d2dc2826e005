package render

import "github.com/goliatone/go-weatherform/pkg/contract"

// RenderOptions describe per-call data renderers use to label and annotate
// their output without touching the snapshot.
type RenderOptions struct {
	// Title heads the document. DefaultTitle applies when empty.
	Title string
	// Fields labels the form values, in order. When empty the values are
	// listed by id in form order.
	Fields []contract.Field
	// Notice is optional operator markup shown above the result. Renderers
	// sanitize it before output.
	Notice string
	// Endpoint records where the request was sent.
	Endpoint string
}

// DefaultTitle heads rendered documents.
const DefaultTitle = "Weather Prediction"
