package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsExternalImage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://scontent.xx.fbcdn.net/v/t39/abc.jpg", true},
		{"https://www.facebook.com/photo.php?id=1", true},
		{"https://cdninstagram.com/x.jpg", true},
		{"/roman-syniuk-portfolio/images/theater/a.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsExternalImage(tt.url); got != tt.want {
			t.Errorf("IsExternalImage(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestExternalImageOperations(t *testing.T) {
	doc := ContentDocument{
		SectionHero: {"profileImage": "https://scontent.cdn/me.jpg"},
		SectionPortfolio: {
			"works": []any{
				map[string]any{"id": float64(1), "image": "/local.jpg"},
				map[string]any{"id": float64(2), "image": "https://fbcdn.net/x.jpg"},
			},
		},
		SectionVideoRepertoire: {
			"videos": []any{
				map[string]any{"id": float64(1), "thumbnail": "https://instagram.com/t.jpg"},
			},
		},
	}

	ops := ExternalImageOperations(doc)
	want := []Operation{
		SetField("profileImage", "").In(SectionHero),
		SetArrayItem("works", 1, map[string]any{"image": ""}).In(SectionPortfolio),
		SetArrayItem("videos", 0, map[string]any{"thumbnail": ""}).In(SectionVideoRepertoire),
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	for _, op := range ops {
		var err error
		doc, _, err = Apply(doc, op)
		if err != nil {
			t.Fatalf("apply %+v: %v", op, err)
		}
	}
	if again := ExternalImageOperations(doc); again != nil {
		t.Errorf("expected no operations after cleaning, got %v", again)
	}
	works := doc[SectionPortfolio]["works"].([]any)
	if works[0].(map[string]any)["image"] != "/local.jpg" {
		t.Error("local image should be kept")
	}
}

func TestExternalImageOperations_CleanDefaults(t *testing.T) {
	if ops := ExternalImageOperations(DefaultDocument()); ops != nil {
		t.Errorf("default document should have no external images, got %v", ops)
	}
}
