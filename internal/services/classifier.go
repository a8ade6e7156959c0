package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/neocaptain/Rhythmish/internal/config"
	"github.com/neocaptain/Rhythmish/internal/models"
)

var (
	// ErrClassifierService covers network and provider failures. Fatal to
	// the current action; the caller returns the session to home.
	ErrClassifierService = errors.New("mood classifier request failed")
	// ErrClassifierParse covers unparseable or schema-violating output.
	ErrClassifierParse = errors.New("mood classifier response could not be parsed")
)

// ImageInput is an optional photo submitted alongside the mood text.
type ImageInput struct {
	Data     []byte
	MimeType string
}

type MoodClassifier interface {
	Classify(ctx context.Context, userText string, image *ImageInput) (*models.AnalysisResult, error)
}

// GeminiClassifier calls the Gemini generateContent endpoint. One attempt
// per call, no retry or backoff.
type GeminiClassifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClassifier() MoodClassifier {
	c := &GeminiClassifier{
		model:   "gemini-2.0-flash",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	if cfg := config.GlobalConfig; cfg != nil {
		c.apiKey = cfg.GeminiAPIKey
		if cfg.GeminiModel != "" {
			c.model = cfg.GeminiModel
		}
	}
	return c
}

const analysisPrompt = `Analyze the following user mood description %s and provide a structured JSON response for a music recommendation app called "Rhythmish".
User Input: "%s"

The JSON must follow this exact structure:
{
  "headline": "A short, catchy headline describing the mood (e.g., 'A bit nostalgic but hopeful')",
  "summary": "A one-sentence poetic analysis of why these songs were chosen",
  "emotions": [
    { "label": "Joy", "value": 30, "color": "text-yellow-400", "icon": "sentiment_very_satisfied" },
    { "label": "Calm", "value": 70, "color": "text-blue-400", "icon": "water_drop" },
    { "label": "Nostalgia", "value": 45, "color": "text-orange-400", "icon": "history" }
  ],
  "recommendations": [
    {
      "id": "1",
      "title": "Song Title",
      "artist": "Artist Name",
      "matchScore": 99,
      "emotions": [
        { "label": "Joy", "value": 25, "color": "text-yellow-400", "icon": "sentiment_very_satisfied" },
        { "label": "Calm", "value": 75, "color": "text-blue-400", "icon": "water_drop" },
        { "label": "Nostalgia", "value": 40, "color": "text-orange-400", "icon": "history" }
      ],
      "tags": ["#Tag1", "#Tag2"],
      "youtubeVideoId": "",
      "thumbnail": "",
      "duration": "3:45",
      "searchQuery": "Artist - Song Title official audio"
    }
  ]
}

Choose exactly 3 emotions that best fit the mood.
Provide 3-5 song recommendations.

CRITICAL INSTRUCTIONS for Emotion Matching:
1. For each song in 'recommendations', provide an 'emotions' array that uses the EXACT SAME 3 'label' names as the top-level 'emotions' array.
2. The 'value' for each emotion in a song should represent how much that specific song embodies that emotion.
3. The 'matchScore' should be a reflection of how closely the song's emotion values align with the user's emotion values.

CRITICAL INSTRUCTIONS for YouTube recommendations:
1. Only recommend REAL, well-known songs that exist on YouTube.
2. Always provide a perfect 'searchQuery' (e.g., 'Artist Name - Song Title official music video') that reflects the headline and emotions discovered.
3. The 'searchQuery' should be optimized for YouTube search to find the most relevant official video or high-quality audio.
4. Leave 'youtubeVideoId' as an empty string - the system will fetch it using your search query.
5. Leave 'thumbnail' as an empty string.

Each song MUST have different metadata.
Ensure matchScore values vary between songs (e.g., 95%%, 88%%, 82%%).
Return ONLY the raw JSON string.`

func buildAnalysisPrompt(userText string, withImage bool) string {
	imageClause := ""
	if withImage {
		imageClause = "and the provided image"
	}
	return fmt.Sprintf(analysisPrompt, imageClause, userText)
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClassifier) Classify(ctx context.Context, userText string, image *ImageInput) (*models.AnalysisResult, error) {
	parts := []geminiPart{{Text: buildAnalysisPrompt(userText, image != nil)}}
	if image != nil {
		mimeType := image.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image.Data),
		}})
	}

	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierService, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrClassifierService, resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierParse, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrClassifierParse)
	}

	return ParseAnalysisText(gr.Candidates[0].Content.Parts[0].Text)
}

// ParseAnalysisText extracts the first balanced JSON object from raw model
// output (which may be wrapped in prose or markdown fences), parses it and
// validates the analysis schema.
func ParseAnalysisText(text string) (*models.AnalysisResult, error) {
	raw, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrClassifierParse)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierParse, err)
	}
	if err := ValidateAnalysisResult(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierParse, err)
	}
	return &result, nil
}

// extractJSONObject returns the first balanced {...} span of s, tracking
// string literals and escapes so braces inside values don't confuse the
// depth count.
func extractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", false
}

// ValidateAnalysisResult enforces the analysis schema: exactly 3 emotions,
// 3-5 recommendations, every song reusing the identical 3 labels, and all
// scores within 0-100.
func ValidateAnalysisResult(result *models.AnalysisResult) error {
	if result.Headline == "" {
		return errors.New("missing headline")
	}
	if len(result.Emotions) != 3 {
		return fmt.Errorf("expected 3 emotions, got %d", len(result.Emotions))
	}
	labels := make(map[string]bool, 3)
	for _, e := range result.Emotions {
		if e.Label == "" {
			return errors.New("emotion with empty label")
		}
		if e.Value < 0 || e.Value > 100 {
			return fmt.Errorf("emotion %q value %d out of range", e.Label, e.Value)
		}
		labels[e.Label] = true
	}
	if len(labels) != 3 {
		return errors.New("duplicate emotion labels")
	}

	if len(result.Recommendations) < 3 || len(result.Recommendations) > 5 {
		return fmt.Errorf("expected 3-5 recommendations, got %d", len(result.Recommendations))
	}
	for _, song := range result.Recommendations {
		if song.Title == "" || song.Artist == "" {
			return fmt.Errorf("recommendation %q missing title or artist", song.ID)
		}
		if song.MatchScore < 0 || song.MatchScore > 100 {
			return fmt.Errorf("song %q matchScore %d out of range", song.Title, song.MatchScore)
		}
		if len(song.Emotions) != 3 {
			return fmt.Errorf("song %q has %d emotions, want 3", song.Title, len(song.Emotions))
		}
		seen := make(map[string]bool, 3)
		for _, e := range song.Emotions {
			if !labels[e.Label] {
				return fmt.Errorf("song %q uses unknown emotion label %q", song.Title, e.Label)
			}
			if seen[e.Label] {
				return fmt.Errorf("song %q repeats emotion label %q", song.Title, e.Label)
			}
			seen[e.Label] = true
			if e.Value < 0 || e.Value > 100 {
				return fmt.Errorf("song %q emotion %q value %d out of range", song.Title, e.Label, e.Value)
			}
		}
	}
	return nil
}
