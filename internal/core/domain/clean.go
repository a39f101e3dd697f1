package domain

import "strings"

// externalImageHosts are fragments of image URLs that expire or are blocked
// when hot-linked from social networks.
var externalImageHosts = []string{"facebook", "fbcdn", "instagram", "scontent"}

// IsExternalImage reports whether url points at a social network CDN
func IsExternalImage(url string) bool {
	for _, host := range externalImageHosts {
		if strings.Contains(url, host) {
			return true
		}
	}
	return false
}

// ExternalImageOperations returns the operations that blank every
// hot-linked social image: hero.profileImage, portfolio.works[].image and
// videoRepertoire.videos[].thumbnail. It returns nil when nothing matches.
func ExternalImageOperations(doc ContentDocument) []Operation {
	var ops []Operation

	if url, ok := doc[SectionHero]["profileImage"].(string); ok && IsExternalImage(url) {
		ops = append(ops, SetField("profileImage", "").In(SectionHero))
	}

	ops = append(ops, cleanItems(doc, SectionPortfolio, "works", "image")...)
	ops = append(ops, cleanItems(doc, SectionVideoRepertoire, "videos", "thumbnail")...)
	return ops
}

func cleanItems(doc ContentDocument, section Section, field, attr string) []Operation {
	items, _ := doc[section][field].([]any)

	var ops []Operation
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if url, ok := obj[attr].(string); ok && IsExternalImage(url) {
			ops = append(ops, SetArrayItem(field, i, map[string]any{attr: ""}).In(section))
		}
	}
	return ops
}
