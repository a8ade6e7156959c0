package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/repository"
)

// ActionService handles the per-song actions: playlist append, negative
// feedback, share text and watch URLs. Feedback events feed a per-user
// artist blacklist cache consulted for advisory filtering.
type ActionService struct {
	playlistRepo repository.PlaylistRepository
	feedbackRepo repository.FeedbackRepository

	mu        sync.RWMutex
	blacklist map[uint]map[string]bool // userID -> lowercased artists
}

func NewActionService(playlistRepo repository.PlaylistRepository, feedbackRepo repository.FeedbackRepository) *ActionService {
	return &ActionService{
		playlistRepo: playlistRepo,
		feedbackRepo: feedbackRepo,
		blacklist:    make(map[uint]map[string]bool),
	}
}

// AddToPlaylist appends a song snapshot to a named playlist. Best effort:
// failures are logged and reported as false, never escalated.
func (s *ActionService) AddToPlaylist(userID uint, playlistName string, song models.SongRecommendation) bool {
	if playlistName == "" {
		playlistName = "My Playlist"
	}
	entry := &models.PlaylistEntry{
		UserID:       userID,
		PlaylistName: playlistName,
		SongID:       song.ID,
		Title:        song.Title,
	}
	if err := s.playlistRepo.AddEntry(entry); err != nil {
		log.Printf("⚠️ Failed to add %q to playlist %q: %v", song.Title, playlistName, err)
		return false
	}
	return true
}

// ReportNegativeFeedback records a "don't recommend this style" event and
// updates the blacklist cache.
func (s *ActionService) ReportNegativeFeedback(userID uint, song models.SongRecommendation, genre string) bool {
	if genre == "" {
		genre = "unknown"
	}
	event := &models.FeedbackEvent{
		UserID: userID,
		SongID: song.ID,
		Artist: song.Artist,
		Genre:  genre,
		Type:   models.FeedbackDislikeStyle,
	}
	if err := s.feedbackRepo.CreateFeedback(event); err != nil {
		log.Printf("⚠️ Feedback write failed for user %d: %v", userID, err)
		return false
	}

	s.mu.Lock()
	if s.blacklist[userID] == nil {
		s.blacklist[userID] = make(map[string]bool)
	}
	s.blacklist[userID][strings.ToLower(song.Artist)] = true
	s.mu.Unlock()
	return true
}

// RefreshBlacklist rebuilds the cached artist set from stored feedback.
func (s *ActionService) RefreshBlacklist(userID uint) error {
	events, err := s.feedbackRepo.GetFeedbackForUser(userID)
	if err != nil {
		return err
	}
	set := make(map[string]bool, len(events))
	for _, e := range events {
		if e.Type == models.FeedbackDislikeStyle && e.Artist != "" {
			set[strings.ToLower(e.Artist)] = true
		}
	}
	s.mu.Lock()
	s.blacklist[userID] = set
	s.mu.Unlock()
	return nil
}

// IsStyleBlacklisted reports whether the user disliked this artist's
// style. Read-through: the first query for a user loads from the store.
func (s *ActionService) IsStyleBlacklisted(userID uint, artist string) bool {
	s.mu.RLock()
	set, loaded := s.blacklist[userID]
	s.mu.RUnlock()

	if !loaded {
		if err := s.RefreshBlacklist(userID); err != nil {
			log.Printf("⚠️ Blacklist refresh degraded for user %d: %v", userID, err)
			return false
		}
		s.mu.RLock()
		set = s.blacklist[userID]
		s.mu.RUnlock()
	}
	return set[strings.ToLower(artist)]
}

// FilterRecommendations drops songs by blacklisted artists. Advisory only;
// an empty blacklist passes everything through untouched.
func (s *ActionService) FilterRecommendations(userID uint, songs []models.SongRecommendation) []models.SongRecommendation {
	filtered := make([]models.SongRecommendation, 0, len(songs))
	for _, song := range songs {
		if s.IsStyleBlacklisted(userID, song.Artist) {
			continue
		}
		filtered = append(filtered, song)
	}
	return filtered
}

// WatchURL returns the direct watch URL when the song carries a resolved
// video ID, falling back to a search URL otherwise.
func WatchURL(song models.SongRecommendation) string {
	if len(song.YoutubeVideoID) == 11 {
		return "https://www.youtube.com/watch?v=" + song.YoutubeVideoID
	}
	query := url.QueryEscape(song.Artist + " " + song.Title)
	return "https://www.youtube.com/results?search_query=" + query
}

// ShareText builds the share message for a song and mood headline.
func ShareText(songTitle, mood string) string {
	return fmt.Sprintf("I'm feeling %q today and found this perfect track: %s! Check my rhythm on Rhythmish.", mood, songTitle)
}
