package prediction

import "context"

// Client performs a prediction call. Implementations return an error only for
// transport or decoding failures; a backend rejection is a Response with
// Success set to false.
type Client interface {
	Predict(ctx context.Context, req Request) (Response, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (Response, error)

// Predict calls f.
func (f ClientFunc) Predict(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
