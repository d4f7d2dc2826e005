// Package page abstracts the form markup the controller reads and writes.
//
// A Page resolves elements by id (and nested elements by selector) and each
// Element exposes the handful of properties the controller touches: the
// control value, the text content, visibility and the disabled flag. Document
// is an in-memory Page mirroring the original markup; it backs tests, the CLI
// and the output renderers through Snapshot.
package page
