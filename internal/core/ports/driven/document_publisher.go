package driven

import (
	"context"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// DocumentPublisher sends the whole document to an external automation hook
// (for example a repository dispatch that rebuilds the static site).
type DocumentPublisher interface {
	// Enabled reports whether a credential and endpoint are configured
	Enabled() bool

	// Publish posts the document. Returns domain.ErrPublisherDisabled when not enabled.
	Publish(ctx context.Context, doc domain.ContentDocument) error
}
