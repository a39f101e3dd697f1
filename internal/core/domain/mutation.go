package domain

import "fmt"

// Apply returns a new document with op applied.
//
// The input document is never modified: the returned document copies the
// top-level map, the target section and the changed field, and shares every
// other section and field with doc. On error doc is returned unchanged.
func Apply(doc ContentDocument, op Operation) (ContentDocument, Section, error) {
	if err := op.Validate(); err != nil {
		return doc, op.Section, err
	}

	section := ResolveSection(doc, op)
	if !section.Valid() {
		return doc, section, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	fields := doc[section]
	current, exists := fields[op.Field]

	var next any
	switch op.Kind {
	case OpSetField:
		if exists {
			if err := checkShape(current, op.Value); err != nil {
				return doc, section, err
			}
		}
		next = cloneValue(op.Value)

	case OpSetNestedField:
		obj, err := nestedWrite(current, op.SubPath, op.Value)
		if err != nil {
			return doc, section, err
		}
		next = obj

	case OpSetArrayItem:
		arr, err := asArray(current, exists)
		if err != nil {
			return doc, section, err
		}
		if op.Index < 0 || op.Index >= len(arr) {
			return doc, section, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, op.Index, len(arr))
		}
		out := make([]any, len(arr))
		copy(out, arr)
		out[op.Index] = mergeItem(arr[op.Index], op.Value)
		next = out

	case OpAppendArrayItem:
		arr, err := asArray(current, exists)
		if err != nil {
			return doc, section, err
		}
		out := make([]any, len(arr), len(arr)+1)
		copy(out, arr)
		next = append(out, cloneValue(op.Value))

	case OpRemoveArrayItem:
		arr, err := asArray(current, exists)
		if err != nil {
			return doc, section, err
		}
		if op.Index < 0 || op.Index >= len(arr) {
			return doc, section, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, op.Index, len(arr))
		}
		out := make([]any, 0, len(arr)-1)
		out = append(out, arr[:op.Index]...)
		next = append(out, arr[op.Index+1:]...)
	}

	updated := copyMap(fields)
	updated[op.Field] = next

	result := make(ContentDocument, len(doc)+1)
	for s, f := range doc {
		result[s] = f
	}
	result[section] = updated
	return result, section, nil
}

// checkShape rejects writes that would turn an object or array into a
// different shape. Nulls on either side are always accepted.
func checkShape(current, next any) error {
	from, to := ShapeOf(current), ShapeOf(next)
	if from == ShapeNull || to == ShapeNull || from == to {
		return nil
	}
	if from == ShapeScalar && to == ShapeScalar {
		return nil
	}
	return fmt.Errorf("%w: cannot replace %s with %s", ErrShapeMismatch, from, to)
}

func nestedWrite(current any, subPath string, value any) (map[string]any, error) {
	parts, err := splitSubPath(subPath)
	if err != nil {
		return nil, err
	}
	outer, err := asObject(current)
	if err != nil {
		return nil, err
	}

	out := copyMap(outer)
	if len(parts) == 1 {
		if prev, ok := out[parts[0]]; ok {
			if err := checkShape(prev, value); err != nil {
				return nil, err
			}
		}
		out[parts[0]] = cloneValue(value)
		return out, nil
	}

	inner, err := asObject(out[parts[0]])
	if err != nil {
		return nil, err
	}
	innerOut := copyMap(inner)
	if prev, ok := innerOut[parts[1]]; ok {
		if err := checkShape(prev, value); err != nil {
			return nil, err
		}
	}
	innerOut[parts[1]] = cloneValue(value)
	out[parts[0]] = innerOut
	return out, nil
}

func asObject(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: cannot descend into %s", ErrShapeMismatch, ShapeOf(v))
	}
	return obj, nil
}

func asArray(v any, exists bool) ([]any, error) {
	if !exists || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: holds %s", ErrNotArray, ShapeOf(v))
	}
	return arr, nil
}

// mergeItem shallow-merges an object partial over an object element.
// Any other combination replaces the element.
func mergeItem(existing, partial any) any {
	base, ok1 := existing.(map[string]any)
	patch, ok2 := partial.(map[string]any)
	if !ok1 || !ok2 {
		return cloneValue(partial)
	}
	out := copyMap(base)
	for k, v := range patch {
		out[k] = cloneValue(v)
	}
	return out
}
