package driving

import (
	"context"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// EditorService drives the editor session state machine and its autosave loop.
type EditorService interface {
	// Session returns a copy of the current session state
	Session() domain.EditorSession

	// Handle applies a trigger (key combo, escape, click outside...)
	Handle(ctx context.Context, trigger domain.EditorTrigger) (domain.EditorSession, error)

	// LogoClick registers one logo click; the fifth quick click opens the editor
	LogoClick(ctx context.Context) domain.EditorSession

	// SetAutoSave enables or disables the autosave timer
	SetAutoSave(ctx context.Context, enabled bool) domain.EditorSession

	// SaveAndClose saves the whole document and closes the editor on success
	SaveAndClose(ctx context.Context) (bool, domain.EditorSession)

	// Stop closes the session and stops the autosave loop
	Stop()
}
