package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/repository"
	"github.com/neocaptain/Rhythmish/internal/services"
)

// SongHandler covers the per-song user actions: the favorites toggle,
// negative style feedback, playlists and sharing.
type SongHandler struct {
	likedRepo repository.LikedSongRepository
	actions   *services.ActionService
}

func NewSongHandler(likedRepo repository.LikedSongRepository, actions *services.ActionService) *SongHandler {
	return &SongHandler{
		likedRepo: likedRepo,
		actions:   actions,
	}
}

type likeRequest struct {
	Song     models.SongRecommendation `json:"song" binding:"required"`
	UserMood models.EmotionScores      `json:"user_mood"`
}

// ToggleFavorite likes a song, or unlikes it when the same (title, artist)
// is already liked. Idempotent per tuple; never creates duplicates.
func (h *SongHandler) ToggleFavorite(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	song := req.Song
	liked := &models.LikedSong{
		UserID:         userID,
		Title:          song.Title,
		Artist:         song.Artist,
		MatchScore:     song.MatchScore,
		YoutubeVideoID: song.YoutubeVideoID,
		SongMoods:      models.EmotionList(song.Emotions),
		UserMood:       req.UserMood,
		Tags:           models.StringList(song.Tags),
		Duration:       song.Duration,
	}

	nowLiked, err := h.likedRepo.ToggleLike(liked)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"liked": nowLiked},
	})
}

func (h *SongHandler) GetFavorites(c *gin.Context) {
	userID := c.GetUint("user_id")

	songs, err := h.likedRepo.GetLikedSongs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   songs,
	})
}

// RemoveFavorite deletes one favorite by document ID. Removing a song
// that is not liked is a no-op.
func (h *SongHandler) RemoveFavorite(c *gin.Context) {
	userID := c.GetUint("user_id")
	id := c.Param("id")

	if err := h.likedRepo.RemoveLikedSong(userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Favorite removed",
	})
}

type feedbackRequest struct {
	Song  models.SongRecommendation `json:"song" binding:"required"`
	Genre string                    `json:"genre"`
}

// ReportFeedback records a "don't recommend this style" signal. Best
// effort: the response reports whether the event was stored, but a store
// failure never fails the request.
func (h *SongHandler) ReportFeedback(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	recorded := h.actions.ReportNegativeFeedback(userID, req.Song, req.Genre)

	c.JSON(http.StatusAccepted, gin.H{
		"status": "success",
		"data":   gin.H{"recorded": recorded},
	})
}

type playlistRequest struct {
	PlaylistName string                    `json:"playlist_name"`
	Song         models.SongRecommendation `json:"song" binding:"required"`
}

func (h *SongHandler) AddToPlaylist(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	added := h.actions.AddToPlaylist(userID, req.PlaylistName, req.Song)

	c.JSON(http.StatusAccepted, gin.H{
		"status": "success",
		"data":   gin.H{"added": added},
	})
}

type shareRequest struct {
	Song models.SongRecommendation `json:"song" binding:"required"`
	Mood string                    `json:"mood"`
}

// Share returns the share text and the best watch URL for a song.
func (h *SongHandler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"text": services.ShareText(req.Song.Title, req.Mood),
			"url":  services.WatchURL(req.Song),
		},
	})
}
