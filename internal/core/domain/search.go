package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SearchMatch is a string value whose text matched a content search.
type SearchMatch struct {
	Section Section `json:"section"`
	Path    string  `json:"path"`
	Value   string  `json:"value"`
}

// Search finds string values containing query, case-insensitively.
// Paths use dots for object keys and [i] for array positions, for
// example "works[1].title". Sections are walked in priority order and
// object keys in sorted order.
func Search(doc ContentDocument, query string) []SearchMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []SearchMatch
	for _, section := range Sections() {
		fields, ok := doc[section]
		if !ok {
			continue
		}
		walk(fields, "", func(path, value string) {
			if strings.Contains(strings.ToLower(value), query) {
				matches = append(matches, SearchMatch{Section: section, Path: path, Value: value})
			}
		})
	}
	return matches
}

func walk(v any, path string, visit func(path, value string)) {
	switch t := v.(type) {
	case string:
		visit(path, t)
	case []any:
		for i, item := range t {
			walk(item, fmt.Sprintf("%s[%d]", path, i), visit)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			next := k
			if path != "" {
				next = path + "." + k
			}
			walk(t[k], next, visit)
		}
	}
}
