package moods

import (
	"strings"
	"testing"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Happy", Positive},
		{"Fluttery", Positive},
		{"Peaceful", Positive},
		{"Energetic", Positive},
		{"Sad", Negative},
		{"Stressed", Negative},
		{"Lonely", Negative},
		{"Tired", Negative},
		{"Focus", Neutral},
		{"Rage", Neutral},   // unknown labels fall back to neutral
		{"happy", Neutral},  // lookup is case sensitive
		{"", Neutral},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.label); got != tt.want {
			t.Errorf("CategoryOf(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("Happy")
	if !ok {
		t.Fatal("Happy missing from the dictionary")
	}
	if d.Emoji == "" || d.Color == "" {
		t.Errorf("Happy missing display metadata: %+v", d)
	}

	if _, ok := Lookup("Unknown"); ok {
		t.Errorf("unknown label should not resolve")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, ok := Lookup(DefaultLabel); !ok {
		t.Errorf("default label %q missing", DefaultLabel)
	}
}

func TestArtworkFor(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		wantDiff bool
	}{
		{"keyword match", "A happy little tune", true},
		{"case insensitive", "Feeling SAD today", true},
		{"keyword inside headline", "Quietly nostalgic evening", true},
		{"no keyword", "Something entirely else", false},
		{"empty headline", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArtworkFor(tt.headline)
			if got == "" {
				t.Fatal("ArtworkFor returned empty URL")
			}
			if tt.wantDiff && got == DefaultArtworkURL {
				t.Errorf("ArtworkFor(%q) fell back to the default", tt.headline)
			}
			if !tt.wantDiff && got != DefaultArtworkURL {
				t.Errorf("ArtworkFor(%q) = %q, want the default", tt.headline, got)
			}
		})
	}
}

func TestArtworkForDeterministic(t *testing.T) {
	// "happy" appears before "sad" in the match order, so a headline with
	// both always picks the happy image.
	headline := "happy but also sad"
	first := ArtworkFor(headline)
	for i := 0; i < 10; i++ {
		if got := ArtworkFor(headline); got != first {
			t.Fatalf("ArtworkFor is not deterministic")
		}
	}
	if !strings.Contains(first, "photo-1511671782779") {
		t.Errorf("ArtworkFor(%q) = %q, want the happy image", headline, first)
	}
}
