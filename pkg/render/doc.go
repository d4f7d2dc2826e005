// Package render turns a page snapshot into an output document. Renderers are
// looked up by name through a Registry; View gives every renderer the same
// reading of the snapshot.
package render
