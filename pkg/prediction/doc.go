// Package prediction defines the payloads exchanged with the weather prediction
// endpoint and the Client capability the form controller depends on.
//
// Requests carry every form value as the raw string read from its control.
// Responses decode into one canonical schema: the condition is read from
// `climate_condition` and falls back to the legacy `likely_climate` key, and
// the richer fields (cloud cover, wind speed, wind direction, calculation
// time) are optional.
package prediction
