// Package client implements prediction.Client over HTTP. Every call is a JSON
// POST; responses are decoded whatever their status code and optionally
// checked against the published contract. A circuit breaker can be enabled
// with WithBreaker.
package client
