package driven

import (
	"context"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// ContentReplicator mirrors a single applied operation to the remote
// content API. The operation always carries its resolved section.
type ContentReplicator interface {
	Replicate(ctx context.Context, op domain.Operation) error
}
