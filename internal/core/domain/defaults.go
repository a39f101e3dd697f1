package domain

import (
	_ "embed"
	"fmt"
)

//go:embed default_content.json
var defaultContent []byte

var defaultDocument ContentDocument

func init() {
	doc, err := ParseDocument(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("embedded default content: %v", err))
	}
	defaultDocument = doc
}

// DefaultDocument returns a fresh copy of the built-in content.
// It is the last tier of the load cascade and the reset target.
func DefaultDocument() ContentDocument {
	return defaultDocument.Clone()
}
