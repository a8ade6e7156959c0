// Package moods holds the static mood dictionary: the fixed mapping from
// emotion labels to coarse sentiment categories plus display metadata.
// It is configuration data, loaded once and validated at startup.
package moods

import (
	"fmt"
)

type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// DefaultLabel is the mood assumed for users with no history.
const DefaultLabel = "Peaceful"

type Detail struct {
	Label    string
	Category Category
	Emoji    string
	Color    string
}

var dictionary = map[string]Detail{
	// Positive group
	"Happy":     {Label: "Happy", Category: Positive, Emoji: "😊", Color: "text-yellow-400"},
	"Fluttery":  {Label: "Fluttery", Category: Positive, Emoji: "💖", Color: "text-pink-400"},
	"Peaceful":  {Label: "Peaceful", Category: Positive, Emoji: "🌿", Color: "text-green-400"},
	"Energetic": {Label: "Energetic", Category: Positive, Emoji: "⚡", Color: "text-orange-400"},

	// Negative group
	"Sad":      {Label: "Sad", Category: Negative, Emoji: "😢", Color: "text-blue-400"},
	"Stressed": {Label: "Stressed", Category: Negative, Emoji: "😫", Color: "text-red-400"},
	"Lonely":   {Label: "Lonely", Category: Negative, Emoji: "🌊", Color: "text-indigo-400"},
	"Tired":    {Label: "Tired", Category: Negative, Emoji: "😴", Color: "text-slate-400"},

	// Neutral / contextual group
	"Focus": {Label: "Focus", Category: Neutral, Emoji: "🎧", Color: "text-purple-400"},
}

// Lookup returns the dictionary entry for a label.
func Lookup(label string) (Detail, bool) {
	d, ok := dictionary[label]
	return d, ok
}

// CategoryOf classifies a label into its coarse category. Unknown labels
// fall back to Neutral; this never fails.
func CategoryOf(label string) Category {
	if d, ok := dictionary[label]; ok {
		return d.Category
	}
	return Neutral
}

// Validate checks the dictionary for completeness. Run once at startup.
func Validate() error {
	if _, ok := dictionary[DefaultLabel]; !ok {
		return fmt.Errorf("mood dictionary is missing the default label %q", DefaultLabel)
	}
	for label, d := range dictionary {
		switch d.Category {
		case Positive, Negative, Neutral:
		default:
			return fmt.Errorf("mood %q has unknown category %q", label, d.Category)
		}
		if d.Emoji == "" || d.Color == "" {
			return fmt.Errorf("mood %q is missing display metadata", label)
		}
		if d.Label != label {
			return fmt.Errorf("mood %q has mismatched label %q", label, d.Label)
		}
	}
	return nil
}
