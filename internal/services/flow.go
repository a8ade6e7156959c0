package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/neocaptain/Rhythmish/internal/models"
)

// Screen names for the analysis flow.
type Screen string

const (
	ScreenHome            Screen = "home"
	ScreenAnalyzing       Screen = "analyzing"
	ScreenResult          Screen = "result"
	ScreenRecommendations Screen = "recommendations"
)

// ErrAnalysisSuperseded means the session was cancelled or re-triggered
// while an analysis was in flight; the late result was discarded.
var ErrAnalysisSuperseded = errors.New("analysis superseded before completion")

// ErrNoResult means a screen transition needs an analysis result the
// session does not hold.
var ErrNoResult = errors.New("no analysis result available")

// Session is the per-user navigation state: the current screen, the
// in-flight analysis result and a generation counter acting as the "still
// relevant" token for late results.
type Session struct {
	ID     string
	UserID uint

	mu         sync.Mutex
	screen     Screen
	generation uint64
	result     *models.AnalysisResult
	step       string
	progress   int
}

// SessionState is a read-only snapshot served to clients.
type SessionState struct {
	ID       string                 `json:"id"`
	Screen   Screen                 `json:"screen"`
	Step     string                 `json:"step,omitempty"`
	Progress int                    `json:"progress"`
	Result   *models.AnalysisResult `json:"result,omitempty"`
}

func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:       s.ID,
		Screen:   s.screen,
		Step:     s.step,
		Progress: s.progress,
		Result:   s.result,
	}
}

// FlowService drives the home -> analyzing -> result -> recommendations
// state machine and wires the classifier, enrichment pipeline and history
// save together.
type FlowService struct {
	classifier MoodClassifier
	enricher   *Enricher
	history    *MoodHistoryService

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewFlowService(classifier MoodClassifier, enricher *Enricher, history *MoodHistoryService) *FlowService {
	return &FlowService{
		classifier: classifier,
		enricher:   enricher,
		history:    history,
		sessions:   make(map[string]*Session),
	}
}

func (f *FlowService) StartSession(userID uint) *Session {
	session := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		screen: ScreenHome,
	}
	f.mu.Lock()
	f.sessions[session.ID] = session
	f.mu.Unlock()
	return session
}

func (f *FlowService) Get(id string) (*Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	return session, ok
}

// Analyze runs classification and enrichment for one user input. The
// result is applied only while the session generation captured at the
// start is still current; Cancel bumps the generation, so results landing
// afterwards are discarded without touching session state. The history
// save is fired asynchronously and is independent of the enrichment
// ordering.
func (f *FlowService) Analyze(ctx context.Context, session *Session, text string, image *ImageInput, inputType string) (*models.AnalysisResult, error) {
	if inputType == "" {
		inputType = models.InputTypeText
		if image != nil {
			inputType = models.InputTypeCamera
		}
	}

	session.mu.Lock()
	session.generation++
	gen := session.generation
	session.screen = ScreenAnalyzing
	session.result = nil
	session.step = "Analyzing your emotions"
	session.progress = 0
	session.mu.Unlock()

	setProgress := func(step string, percent int) {
		session.mu.Lock()
		if session.generation == gen && percent >= session.progress {
			session.step = step
			session.progress = percent
		}
		session.mu.Unlock()
	}

	setProgress("Analyzing your emotions", 10)
	result, err := f.classifier.Classify(ctx, text, image)
	if err != nil {
		session.mu.Lock()
		if session.generation == gen {
			session.screen = ScreenHome
			session.step = ""
			session.progress = 0
		}
		session.mu.Unlock()
		return nil, err
	}
	setProgress("Mood analysis complete", enrichProgressStart)

	enriched := f.enricher.Enrich(ctx, result, setProgress)

	session.mu.Lock()
	if session.generation != gen {
		session.mu.Unlock()
		return nil, ErrAnalysisSuperseded
	}
	session.result = enriched
	session.screen = ScreenResult
	session.step = "Ready"
	session.progress = 100
	session.mu.Unlock()

	go f.history.SaveAnalysis(session.UserID, enriched, inputType, text, "", "")

	return enriched, nil
}

// Cancel invalidates any in-flight analysis and returns to home.
func (f *FlowService) Cancel(session *Session) {
	session.mu.Lock()
	session.generation++
	session.screen = ScreenHome
	session.result = nil
	session.step = ""
	session.progress = 0
	session.mu.Unlock()
}

// ShowRecommendations moves a session holding a result to the
// recommendations screen.
func (f *FlowService) ShowRecommendations(session *Session) error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.result == nil {
		return ErrNoResult
	}
	session.screen = ScreenRecommendations
	return nil
}

// BackToResult returns from recommendations to the result screen.
func (f *FlowService) BackToResult(session *Session) error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.result == nil {
		return ErrNoResult
	}
	session.screen = ScreenResult
	return nil
}
