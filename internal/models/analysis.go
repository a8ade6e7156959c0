package models

// Emotion is one weighted emotion entry of an analysis. The color and icon
// tags come straight from the classifier and are passed through to clients.
type Emotion struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// SongRecommendation is one candidate track produced by the classifier.
// YoutubeVideoID and Thumbnail are left empty by the classifier and filled
// in by the enrichment pipeline; SearchQuery drives that lookup.
type SongRecommendation struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Artist         string    `json:"artist"`
	MatchScore     int       `json:"matchScore"`
	Emotions       []Emotion `json:"emotions"`
	Tags           []string  `json:"tags"`
	YoutubeVideoID string    `json:"youtubeVideoId"`
	Thumbnail      string    `json:"thumbnail"`
	Duration       string    `json:"duration"`
	SearchQuery    string    `json:"searchQuery"`
}

// AnalysisResult is the structured output of one mood classification call.
// Exactly 3 emotions, 3-5 recommendations, and every recommendation reuses
// the same 3 emotion labels as the top level list. Not persisted as a
// whole; only MoodRecord and LikedSong projections reach the database.
type AnalysisResult struct {
	Headline        string               `json:"headline"`
	Summary         string               `json:"summary"`
	Emotions        []Emotion            `json:"emotions"`
	Recommendations []SongRecommendation `json:"recommendations"`
}

// VideoRef is a resolved playable video.
type VideoRef struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}
