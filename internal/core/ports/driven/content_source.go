package driven

import "context"

// ContentSource fetches a raw content document from one tier of the load
// cascade (remote content API, bundled static document).
type ContentSource interface {
	// Name identifies the tier in logs and load results
	Name() string

	// Fetch returns the raw document bytes.
	// Transport failures and non-success responses are returned as errors.
	Fetch(ctx context.Context) ([]byte, error)
}
