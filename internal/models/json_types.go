package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EmotionScore is one (emotion, score) pair of a persisted mood snapshot.
type EmotionScore struct {
	Emotion string `json:"emotion"`
	Score   int    `json:"score"`
}

// EmotionScores is stored as a jsonb column.
type EmotionScores []EmotionScore

func (e EmotionScores) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *EmotionScores) Scan(value interface{}) error {
	return scanJSON(value, e)
}

// EmotionList is stored as a jsonb column.
type EmotionList []Emotion

func (e EmotionList) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *EmotionList) Scan(value interface{}) error {
	return scanJSON(value, e)
}

// StringList is stored as a jsonb column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
