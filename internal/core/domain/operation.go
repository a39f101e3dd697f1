package domain

import (
	"fmt"
	"strings"
)

// OperationKind identifies one of the five content mutations.
type OperationKind string

const (
	OpSetField        OperationKind = "setField"
	OpSetNestedField  OperationKind = "setNestedField"
	OpSetArrayItem    OperationKind = "setArrayItem"
	OpAppendArrayItem OperationKind = "appendArrayItem"
	OpRemoveArrayItem OperationKind = "removeArrayItem"
)

// Valid reports whether k is a known operation kind
func (k OperationKind) Valid() bool {
	switch k {
	case OpSetField, OpSetNestedField, OpSetArrayItem, OpAppendArrayItem, OpRemoveArrayItem:
		return true
	}
	return false
}

// IsArray reports whether the operation targets an array field
func (k OperationKind) IsArray() bool {
	return k == OpSetArrayItem || k == OpAppendArrayItem || k == OpRemoveArrayItem
}

// Action returns the change-log action recorded for this kind
func (k OperationKind) Action() ChangeAction {
	switch k {
	case OpAppendArrayItem:
		return ActionAdd
	case OpRemoveArrayItem:
		return ActionDelete
	default:
		return ActionEdit
	}
}

// Operation is a single content mutation.
//
// Section is optional. When empty the section is inferred from the current
// document (see ResolveSection); Hints steer inference for array operations.
type Operation struct {
	Kind    OperationKind `json:"kind"`
	Section Section       `json:"section,omitempty"`
	Field   string        `json:"field"`
	SubPath string        `json:"subPath,omitempty"`
	Index   int           `json:"index,omitempty"`
	Value   any           `json:"value,omitempty"`
	Hints   []Section     `json:"hints,omitempty"`
}

// SetField replaces a whole field
func SetField(field string, value any) Operation {
	return Operation{Kind: OpSetField, Field: field, Value: value}
}

// SetNestedField writes key or first.second under an object field
func SetNestedField(field, subPath string, value any) Operation {
	return Operation{Kind: OpSetNestedField, Field: field, SubPath: subPath, Value: value}
}

// SetArrayItem shallow-merges partial into the element at index
func SetArrayItem(field string, index int, partial any, hints ...Section) Operation {
	return Operation{Kind: OpSetArrayItem, Field: field, Index: index, Value: partial, Hints: hints}
}

// AppendArrayItem appends item to an array field, creating it if absent
func AppendArrayItem(field string, item any, hints ...Section) Operation {
	return Operation{Kind: OpAppendArrayItem, Field: field, Value: item, Hints: hints}
}

// RemoveArrayItem removes the element at index
func RemoveArrayItem(field string, index int, hints ...Section) Operation {
	return Operation{Kind: OpRemoveArrayItem, Field: field, Index: index, Hints: hints}
}

// In returns a copy of the operation pinned to section.
func (o Operation) In(section Section) Operation {
	o.Section = section
	return o
}

// Validate checks the operation is well formed without looking at a document.
func (o Operation) Validate() error {
	if !o.Kind.Valid() {
		return fmt.Errorf("%w: unknown operation kind %q", ErrInvalidInput, o.Kind)
	}
	if strings.TrimSpace(o.Field) == "" {
		return fmt.Errorf("%w: field is required", ErrInvalidInput)
	}
	if o.Section != "" && !o.Section.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, o.Section)
	}
	if o.Kind == OpSetNestedField {
		if _, err := splitSubPath(o.SubPath); err != nil {
			return err
		}
	}
	return nil
}

// Describe renders a short human description for the change log.
func (o Operation) Describe(section Section) string {
	target := fmt.Sprintf("%s.%s", section, o.Field)
	switch o.Kind {
	case OpSetNestedField:
		return fmt.Sprintf("Updated %s.%s", target, o.SubPath)
	case OpSetArrayItem:
		return fmt.Sprintf("Updated %s[%d]", target, o.Index)
	case OpAppendArrayItem:
		return fmt.Sprintf("Added item to %s", target)
	case OpRemoveArrayItem:
		return fmt.Sprintf("Removed %s[%d]", target, o.Index)
	default:
		return fmt.Sprintf("Updated %s", target)
	}
}

// MutationResult reports the outcome of a mutation request.
type MutationResult struct {
	Kind    OperationKind `json:"kind"`
	Section Section       `json:"section,omitempty"`
	Field   string        `json:"field"`
	Applied bool          `json:"applied"`
	Reason  string        `json:"reason,omitempty"`
}

func splitSubPath(subPath string) ([]string, error) {
	if subPath == "" {
		return nil, fmt.Errorf("%w: empty sub-path", ErrInvalidPath)
	}
	parts := strings.Split(subPath, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q is deeper than two levels", ErrInvalidPath, subPath)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, subPath)
		}
	}
	return parts, nil
}
