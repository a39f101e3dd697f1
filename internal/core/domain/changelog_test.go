package domain

import "testing"

func TestChangeLogEntry_Matches(t *testing.T) {
	tests := []struct {
		action ChangeAction
		filter string
		want   bool
	}{
		{ActionEdit, "", true},
		{ActionEdit, "all", true},
		{ActionEdit, "edit", true},
		{ActionEdit, "save", false},
		{ActionImageUpload, "upload", true},
		{ActionUpload, "upload", true},
		{ActionImageDelete, "delete", true},
		{ActionReset, "re", true},
	}

	for _, tt := range tests {
		e := &ChangeLogEntry{Action: tt.action}
		if got := e.Matches(tt.filter); got != tt.want {
			t.Errorf("%s.Matches(%q) = %v, want %v", tt.action, tt.filter, got, tt.want)
		}
	}
}

func TestChangeLogEntry_Revertible(t *testing.T) {
	doc := DefaultDocument()
	tests := []struct {
		name  string
		entry ChangeLogEntry
		want  bool
	}{
		{"edit with snapshot", ChangeLogEntry{Action: ActionEdit, Before: doc}, true},
		{"edit without snapshot", ChangeLogEntry{Action: ActionEdit}, false},
		{"revert entry", ChangeLogEntry{Action: ActionRevert, Before: doc}, false},
		{"reload entry", ChangeLogEntry{Action: ActionReload, Before: doc}, true},
		{"reset entry", ChangeLogEntry{Action: ActionReset, Before: doc}, true},
		{"save entry", ChangeLogEntry{Action: ActionSave, Before: doc}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Revertible(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOperationKind_Action(t *testing.T) {
	tests := map[OperationKind]ChangeAction{
		OpSetField:        ActionEdit,
		OpSetNestedField:  ActionEdit,
		OpSetArrayItem:    ActionEdit,
		OpAppendArrayItem: ActionAdd,
		OpRemoveArrayItem: ActionDelete,
	}
	for kind, want := range tests {
		if got := kind.Action(); got != want {
			t.Errorf("%s.Action() = %s, want %s", kind, got, want)
		}
	}
}

func TestOperation_Describe(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{SetField("name", "x"), "Updated hero.name"},
		{SetNestedField("social", "facebook.url", "x"), "Updated hero.social.facebook.url"},
		{SetArrayItem("works", 2, nil), "Updated hero.works[2]"},
		{AppendArrayItem("works", nil), "Added item to hero.works"},
		{RemoveArrayItem("works", 0), "Removed hero.works[0]"},
	}
	for _, tt := range tests {
		if got := tt.op.Describe(SectionHero); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestChangeAction_Valid(t *testing.T) {
	for _, a := range []ChangeAction{ActionEdit, ActionUpload, ActionImageDelete, ActionError} {
		if !a.Valid() {
			t.Errorf("expected %q to be valid", a)
		}
	}
	for _, a := range []ChangeAction{"", "upload_all", "EDIT"} {
		if a.Valid() {
			t.Errorf("expected %q to be invalid", a)
		}
	}
}
