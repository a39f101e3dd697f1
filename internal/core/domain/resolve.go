package domain

// ResolveSection picks the section an operation applies to.
//
// An explicit op.Section always wins. Otherwise the first section in priority
// order holding the field is chosen; array operations only match sections
// where the field is an array, and check op.Hints first. When nothing
// matches the per-kind default is used: hero for setField, contact for
// setNestedField, the first hint (or portfolio) for array operations.
func ResolveSection(doc ContentDocument, op Operation) Section {
	if op.Section != "" {
		return op.Section
	}

	switch {
	case op.Kind.IsArray():
		for _, hint := range op.Hints {
			if hint.Valid() && hasArray(doc, hint, op.Field) {
				return hint
			}
		}
		for _, section := range Sections() {
			if hasArray(doc, section, op.Field) {
				return section
			}
		}
		for _, hint := range op.Hints {
			if hint.Valid() {
				return hint
			}
		}
		return SectionPortfolio

	case op.Kind == OpSetNestedField:
		if section, ok := findField(doc, op.Field); ok {
			return section
		}
		return SectionContact

	default:
		if section, ok := findField(doc, op.Field); ok {
			return section
		}
		return SectionHero
	}
}

func findField(doc ContentDocument, field string) (Section, bool) {
	for _, section := range Sections() {
		if _, ok := doc[section][field]; ok {
			return section, true
		}
	}
	return "", false
}

func hasArray(doc ContentDocument, section Section, field string) bool {
	_, ok := doc[section][field].([]any)
	return ok
}
