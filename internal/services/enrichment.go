package services

import (
	"context"
	"fmt"
	"log"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/moods"
)

// ProgressFunc receives a human readable step name and an overall percent.
type ProgressFunc func(step string, percent int)

// The enrichment stage owns the 40-90 band of the overall progress bar;
// classification covers the first 40 and finalization the last 10.
const (
	enrichProgressStart = 40
	enrichProgressEnd   = 90
)

// Enricher resolves each recommendation's search query into a concrete
// video reference. Lookups run concurrently, but results are applied and
// progress is reported strictly in song index order.
type Enricher struct {
	lookup VideoLookup
}

func NewEnricher(lookup VideoLookup) *Enricher {
	return &Enricher{lookup: lookup}
}

// Enrich returns a copy of result with video IDs and thumbnails filled in.
// Songs whose lookup fails or returns nothing keep their placeholder
// thumbnail; the batch never aborts on partial failure. Re-enriching an
// already enriched result is safe. No side effects beyond the return.
func (e *Enricher) Enrich(ctx context.Context, result *models.AnalysisResult, onProgress ProgressFunc) *models.AnalysisResult {
	if result == nil || len(result.Recommendations) == 0 {
		return result
	}

	enriched := *result
	enriched.Recommendations = make([]models.SongRecommendation, len(result.Recommendations))
	copy(enriched.Recommendations, result.Recommendations)

	n := len(enriched.Recommendations)
	refs := make([]*models.VideoRef, n)
	done := make([]chan struct{}, n)
	for i := range done {
		done[i] = make(chan struct{})
	}

	for i := range enriched.Recommendations {
		go func(i int, query string) {
			defer close(done[i])
			ref, err := e.lookup.Resolve(ctx, query)
			if err != nil {
				log.Printf("⚠️ Video lookup failed for %q: %v", query, err)
				return
			}
			refs[i] = ref
		}(i, enriched.Recommendations[i].SearchQuery)
	}

	for i := range enriched.Recommendations {
		<-done[i]
		song := &enriched.Recommendations[i]
		if ref := refs[i]; ref != nil {
			song.YoutubeVideoID = ref.VideoID
			song.Thumbnail = ref.Thumbnail
		} else if song.Thumbnail == "" {
			song.Thumbnail = moods.DefaultArtworkURL
		}
		if onProgress != nil {
			percent := enrichProgressStart + (i+1)*(enrichProgressEnd-enrichProgressStart)/n
			onProgress(fmt.Sprintf("Finding a video for %s by %s", song.Title, song.Artist), percent)
		}
	}

	return &enriched
}
