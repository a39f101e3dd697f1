package domain

import (
	"reflect"
	"sort"
)

// FieldChanges lists setField operations that turn from into to, one per
// field whose value differs. Fields missing from to are set to nil.
// Operations carry an explicit section and come out in priority order,
// then by field name.
func FieldChanges(from, to ContentDocument) []Operation {
	var ops []Operation
	for _, section := range Sections() {
		before, after := from[section], to[section]

		names := make(map[string]struct{}, len(before)+len(after))
		for k := range before {
			names[k] = struct{}{}
		}
		for k := range after {
			names[k] = struct{}{}
		}
		sorted := make([]string, 0, len(names))
		for k := range names {
			sorted = append(sorted, k)
		}
		sort.Strings(sorted)

		for _, field := range sorted {
			prev, had := before[field]
			next, has := after[field]
			if had == has && reflect.DeepEqual(prev, next) {
				continue
			}
			ops = append(ops, SetField(field, next).In(section))
		}
	}
	return ops
}
