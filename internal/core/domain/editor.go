package domain

import (
	"fmt"
	"time"
)

// EditorState is the open/closed state of the in-page editor.
type EditorState string

const (
	EditorClosed EditorState = "closed"
	EditorOpen   EditorState = "open"
)

// EditorTrigger is an input that may move the editor between states.
type EditorTrigger string

const (
	TriggerKeyCombo     EditorTrigger = "key_combo"
	TriggerLogoClicks   EditorTrigger = "logo_clicks"
	TriggerCustomEvent  EditorTrigger = "custom_event"
	TriggerEscape       EditorTrigger = "escape"
	TriggerClickOutside EditorTrigger = "click_outside"
	TriggerCloseControl EditorTrigger = "close_control"
)

// Valid reports whether t is a known trigger
func (t EditorTrigger) Valid() bool {
	switch t {
	case TriggerKeyCombo, TriggerLogoClicks, TriggerCustomEvent,
		TriggerEscape, TriggerClickOutside, TriggerCloseControl:
		return true
	}
	return false
}

// EditorSession tracks the editor state machine.
type EditorSession struct {
	ID          string        `json:"id,omitempty"`
	State       EditorState   `json:"state"`
	OpenedBy    EditorTrigger `json:"opened_by,omitempty"`
	OpenedAt    *time.Time    `json:"opened_at,omitempty"`
	ClosedAt    *time.Time    `json:"closed_at,omitempty"`
	AutoSave    bool          `json:"auto_save"`
	LastSavedAt *time.Time    `json:"last_saved_at,omitempty"`
}

// NewEditorSession returns a closed session
func NewEditorSession(autoSave bool) *EditorSession {
	return &EditorSession{State: EditorClosed, AutoSave: autoSave}
}

// IsOpen reports whether the editor is open
func (s *EditorSession) IsOpen() bool {
	return s.State == EditorOpen
}

// Handle applies a trigger and reports whether the state changed.
//
// key_combo toggles. logo_clicks and custom_event only open; escape,
// click_outside and close_control only close. Triggers that do not apply to
// the current state are ignored.
func (s *EditorSession) Handle(trigger EditorTrigger, now time.Time) (bool, error) {
	if !trigger.Valid() {
		return false, fmt.Errorf("%w: unknown editor trigger %q", ErrInvalidInput, trigger)
	}

	switch trigger {
	case TriggerKeyCombo:
		if s.IsOpen() {
			s.close(now)
		} else {
			s.open(trigger, now)
		}
		return true, nil
	case TriggerLogoClicks, TriggerCustomEvent:
		if s.IsOpen() {
			return false, nil
		}
		s.open(trigger, now)
		return true, nil
	default:
		if !s.IsOpen() {
			return false, nil
		}
		s.close(now)
		return true, nil
	}
}

func (s *EditorSession) open(trigger EditorTrigger, now time.Time) {
	s.State = EditorOpen
	s.OpenedBy = trigger
	s.OpenedAt = &now
	s.ClosedAt = nil
}

func (s *EditorSession) close(now time.Time) {
	s.State = EditorClosed
	s.ClosedAt = &now
}

// Logo gesture defaults
const (
	DefaultClickThreshold = 5
	DefaultClickWindow    = 3 * time.Second
)

// ClickCounter detects the hidden logo gesture: Threshold clicks with no
// more than Window between consecutive clicks.
type ClickCounter struct {
	Threshold int
	Window    time.Duration

	count int
	last  time.Time
}

// NewClickCounter returns a counter with the default gesture settings
func NewClickCounter() *ClickCounter {
	return &ClickCounter{Threshold: DefaultClickThreshold, Window: DefaultClickWindow}
}

// Click registers a click and reports whether the gesture completed.
func (c *ClickCounter) Click(now time.Time) bool {
	if c.count > 0 && now.Sub(c.last) > c.Window {
		c.count = 0
	}
	c.count++
	c.last = now
	if c.count >= c.Threshold {
		c.count = 0
		return true
	}
	return false
}

// Count returns clicks registered in the current run
func (c *ClickCounter) Count() int {
	return c.count
}
