package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section names a top-level grouping of the site content.
type Section string

const (
	SectionHero            Section = "hero"
	SectionAbout           Section = "about"
	SectionPortfolio       Section = "portfolio"
	SectionVideoRepertoire Section = "videoRepertoire"
	SectionContact         Section = "contact"
)

// Sections returns every section in resolver priority order.
func Sections() []Section {
	return []Section{
		SectionHero,
		SectionAbout,
		SectionPortfolio,
		SectionVideoRepertoire,
		SectionContact,
	}
}

// Valid reports whether s is one of the fixed sections.
func (s Section) Valid() bool {
	switch s {
	case SectionHero, SectionAbout, SectionPortfolio, SectionVideoRepertoire, SectionContact:
		return true
	}
	return false
}

// ContentDocument is the whole site content: section -> field -> JSON value.
//
// Values are the shapes produced by encoding/json: string, float64, bool, nil,
// map[string]any and []any. Documents are treated as immutable once built;
// Apply returns new documents that share untouched sections with the input.
type ContentDocument map[Section]map[string]any

// Shape classifies a field value for shape-stability checks.
type Shape int

const (
	ShapeNull Shape = iota
	ShapeScalar
	ShapeObject
	ShapeArray
)

// String returns the shape name
func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "scalar"
	}
}

// ShapeOf classifies a JSON value.
func ShapeOf(v any) Shape {
	switch v.(type) {
	case nil:
		return ShapeNull
	case map[string]any:
		return ShapeObject
	case []any:
		return ShapeArray
	default:
		return ShapeScalar
	}
}

// ParseDocument decodes and validates raw content.
//
// The top level must be an object, every known section present must be an
// object, and at least one known section must be present. Unknown top-level
// keys are dropped and missing sections are filled with empty mappings.
func ParseDocument(data []byte) (ContentDocument, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedDocument)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedDocument)
	}

	doc := make(ContentDocument, len(Sections()))
	found := 0
	for _, section := range Sections() {
		value, ok := raw[string(section)]
		if !ok {
			continue
		}
		fields, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: section %q is %s, want object", ErrMalformedDocument, section, ShapeOf(value))
		}
		doc[section] = fields
		found++
	}
	if found == 0 {
		return nil, fmt.Errorf("%w: no known sections", ErrMalformedDocument)
	}

	return doc.Normalize(), nil
}

// Normalize returns a document containing exactly the fixed sections.
func (d ContentDocument) Normalize() ContentDocument {
	out := make(ContentDocument, len(Sections()))
	for _, section := range Sections() {
		fields := d[section]
		if fields == nil {
			fields = map[string]any{}
		}
		out[section] = fields
	}
	return out
}

// Marshal serializes the document as compact JSON.
func (d ContentDocument) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy of the document.
func (d ContentDocument) Clone() ContentDocument {
	if d == nil {
		return nil
	}
	out := make(ContentDocument, len(d))
	for section, fields := range d {
		out[section] = cloneMap(fields)
	}
	return out
}

// Field returns a field value and whether it exists.
func (d ContentDocument) Field(section Section, field string) (any, bool) {
	fields, ok := d[section]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}

// CloneValue deep-copies a JSON value.
func CloneValue(v any) any {
	return cloneValue(v)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// copyMap makes a shallow copy; nil input yields an empty map.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
