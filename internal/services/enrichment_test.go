package services

import (
	"context"
	"testing"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/moods"
)

func TestEnrichFillsVideoData(t *testing.T) {
	result := validResult("Upbeat afternoon")
	lookup := &fakeLookup{refs: map[string]*models.VideoRef{}}
	for i, song := range result.Recommendations {
		lookup.refs[song.SearchQuery] = &models.VideoRef{
			VideoID:   "vid0000000" + string(rune('0'+i)),
			Thumbnail: "https://img.youtube.com/vi/x/hqdefault.jpg",
		}
	}

	enricher := NewEnricher(lookup)
	enriched := enricher.Enrich(context.Background(), result, nil)

	for i, song := range enriched.Recommendations {
		want := lookup.refs[result.Recommendations[i].SearchQuery]
		if song.YoutubeVideoID != want.VideoID {
			t.Errorf("song %d video = %q, want %q", i, song.YoutubeVideoID, want.VideoID)
		}
		if song.Thumbnail != want.Thumbnail {
			t.Errorf("song %d thumbnail = %q", i, song.Thumbnail)
		}
	}

	// The input result is untouched.
	for i, song := range result.Recommendations {
		if song.YoutubeVideoID != "" {
			t.Errorf("input song %d was mutated", i)
		}
	}
}

func TestEnrichPartialFailureKeepsPlaceholders(t *testing.T) {
	result := validResult("Mixed signals")
	failing := result.Recommendations[1].SearchQuery
	lookup := &fakeLookup{
		refs:    map[string]*models.VideoRef{},
		failFor: map[string]bool{failing: true},
	}
	for i, song := range result.Recommendations {
		if i == 1 {
			continue
		}
		lookup.refs[song.SearchQuery] = &models.VideoRef{VideoID: "abcdefghij" + string(rune('0'+i))}
	}

	enricher := NewEnricher(lookup)
	enriched := enricher.Enrich(context.Background(), result, nil)

	if enriched.Recommendations[1].YoutubeVideoID != "" {
		t.Errorf("failed lookup should leave the video ID empty")
	}
	if enriched.Recommendations[1].Thumbnail != moods.DefaultArtworkURL {
		t.Errorf("failed lookup thumbnail = %q, want placeholder", enriched.Recommendations[1].Thumbnail)
	}
	if enriched.Recommendations[0].YoutubeVideoID == "" || enriched.Recommendations[2].YoutubeVideoID == "" {
		t.Errorf("successful lookups should still be applied")
	}
}

func TestEnrichProgressOrderedAndBounded(t *testing.T) {
	result := validResult("Counting along")
	lookup := &fakeLookup{refs: map[string]*models.VideoRef{}}

	var steps []string
	var percents []int
	enricher := NewEnricher(lookup)
	enricher.Enrich(context.Background(), result, func(step string, percent int) {
		steps = append(steps, step)
		percents = append(percents, percent)
	})

	if len(percents) != len(result.Recommendations) {
		t.Fatalf("got %d progress reports, want %d", len(percents), len(result.Recommendations))
	}
	last := 0
	for i, p := range percents {
		if p < enrichProgressStart || p > enrichProgressEnd {
			t.Errorf("percent %d out of the enrichment band", p)
		}
		if p < last {
			t.Errorf("progress went backwards at report %d: %v", i, percents)
		}
		last = p
	}
	if percents[len(percents)-1] != enrichProgressEnd {
		t.Errorf("final percent = %d, want %d", percents[len(percents)-1], enrichProgressEnd)
	}

	// Steps follow the song order, not lookup completion order.
	for i, step := range steps {
		song := result.Recommendations[i]
		want := "Finding a video for " + song.Title + " by " + song.Artist
		if step != want {
			t.Errorf("step %d = %q, want %q", i, step, want)
		}
	}
}

func TestEnrichIdempotent(t *testing.T) {
	result := validResult("Twice over")
	lookup := &fakeLookup{refs: map[string]*models.VideoRef{}}
	for _, song := range result.Recommendations {
		lookup.refs[song.SearchQuery] = &models.VideoRef{VideoID: "stablevidid", Thumbnail: "thumb"}
	}

	enricher := NewEnricher(lookup)
	once := enricher.Enrich(context.Background(), result, nil)
	twice := enricher.Enrich(context.Background(), once, nil)

	for i := range once.Recommendations {
		if once.Recommendations[i].YoutubeVideoID != twice.Recommendations[i].YoutubeVideoID {
			t.Errorf("song %d changed on re-enrichment", i)
		}
		if once.Recommendations[i].Thumbnail != twice.Recommendations[i].Thumbnail {
			t.Errorf("song %d thumbnail changed on re-enrichment", i)
		}
	}
}

func TestEnrichNilAndEmpty(t *testing.T) {
	enricher := NewEnricher(&fakeLookup{})

	if got := enricher.Enrich(context.Background(), nil, nil); got != nil {
		t.Errorf("nil result should pass through")
	}

	empty := &models.AnalysisResult{Headline: "Nothing to do"}
	if got := enricher.Enrich(context.Background(), empty, nil); got != empty {
		t.Errorf("empty result should pass through unchanged")
	}
}
