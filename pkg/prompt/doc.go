// Package prompt fills the prediction form from a terminal. Prompts go
// through a Driver so the flow can be scripted in tests; the default driver
// is backed by survey.
package prompt
