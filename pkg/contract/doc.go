// Package contract exposes the prediction endpoint contract to the rest of the
// module without leaking kin-openapi types. The implementation lives in
// internal/contract; the root weatherform package wires the embedded document.
package contract
