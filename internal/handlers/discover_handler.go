package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/services"
)

// DiscoverHandler serves the trending feed and the personalized mixtape.
type DiscoverHandler struct {
	lookup       services.VideoLookup
	personalizer *services.Personalizer
	enricher     *services.Enricher
	actions      *services.ActionService
}

func NewDiscoverHandler(
	lookup services.VideoLookup,
	personalizer *services.Personalizer,
	enricher *services.Enricher,
	actions *services.ActionService,
) *DiscoverHandler {
	return &DiscoverHandler{
		lookup:       lookup,
		personalizer: personalizer,
		enricher:     enricher,
		actions:      actions,
	}
}

// Trending serves region scoped trending music. Provider failures degrade
// to an empty list; stale cache (when present) was already preferred by
// the lookup service.
func (h *DiscoverHandler) Trending(c *gin.Context) {
	region := c.DefaultQuery("region", "US")

	videos, err := h.lookup.FetchTrending(c.Request.Context(), region)
	if err != nil {
		log.Printf("⚠️ Trending feed degraded for region %s: %v", region, err)
		videos = []models.VideoRef{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   videos,
	})
}

// Mixtape builds the personalized message and recommendation set, then
// enriches and filters the recommendations. Personalization never fails;
// at worst the result is absent and only the message is returned.
func (h *DiscoverHandler) Mixtape(c *gin.Context) {
	userID := c.GetUint("user_id")
	moodOverride := c.Query("mood")

	mixtape := h.personalizer.BuildMixtape(c.Request.Context(), userID, moodOverride)
	if mixtape.Result != nil {
		mixtape.Result = h.enricher.Enrich(c.Request.Context(), mixtape.Result, nil)
		mixtape.Result.Recommendations = h.actions.FilterRecommendations(userID, mixtape.Result.Recommendations)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   mixtape,
	})
}

// MixtapeMessage returns only the personalized message, for the header
// card that renders before the full mixtape loads.
func (h *DiscoverHandler) MixtapeMessage(c *gin.Context) {
	userID := c.GetUint("user_id")
	moodOverride := c.Query("mood")

	message := h.personalizer.BuildMessage(c.Request.Context(), userID, moodOverride)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"message": message},
	})
}
