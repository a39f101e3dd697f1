package domain

import (
	"strings"
	"time"
)

// ChangeAction classifies a change-log entry.
type ChangeAction string

const (
	ActionEdit        ChangeAction = "edit"
	ActionAdd         ChangeAction = "add"
	ActionDelete      ChangeAction = "delete"
	ActionSave        ChangeAction = "save"
	ActionUpload      ChangeAction = "upload"
	ActionReset       ChangeAction = "reset"
	ActionReload      ChangeAction = "reload"
	ActionRevert      ChangeAction = "revert"
	ActionImageUpload ChangeAction = "image_upload"
	ActionImageDelete ChangeAction = "image_delete"
	ActionError       ChangeAction = "error"
)

// Valid reports whether a is a known action
func (a ChangeAction) Valid() bool {
	switch a {
	case ActionEdit, ActionAdd, ActionDelete, ActionSave, ActionUpload, ActionReset,
		ActionReload, ActionRevert, ActionImageUpload, ActionImageDelete, ActionError:
		return true
	}
	return false
}

// DefaultChangeLogCapacity is the number of entries kept before the oldest is dropped.
const DefaultChangeLogCapacity = 50

// ChangeLogEntry records one user-visible event.
//
// Before holds the document as it was just before the event and is what a
// revert restores. It is not serialized.
type ChangeLogEntry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Action    ChangeAction    `json:"action"`
	Details   string          `json:"details"`
	Before    ContentDocument `json:"-"`
}

// Matches reports whether the entry passes an action filter.
// An empty filter or "all" matches everything; otherwise the action must
// contain the filter as a substring.
func (e *ChangeLogEntry) Matches(filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	return strings.Contains(string(e.Action), filter)
}

// Revertible reports whether restoring the entry's snapshot makes sense
func (e *ChangeLogEntry) Revertible() bool {
	return e.Before != nil && e.Action != ActionRevert
}
