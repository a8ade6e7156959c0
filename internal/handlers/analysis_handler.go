package handlers

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neocaptain/Rhythmish/internal/moods"
	"github.com/neocaptain/Rhythmish/internal/services"
)

// AnalysisHandler exposes the analysis session state machine: start a
// session, run an analysis, poll progress, cancel, move between screens.
type AnalysisHandler struct {
	flow *services.FlowService
}

func NewAnalysisHandler(flow *services.FlowService) *AnalysisHandler {
	return &AnalysisHandler{flow: flow}
}

type analyzeRequest struct {
	Text          string `json:"text" binding:"required"`
	InputType     string `json:"input_type"`
	ImageBase64   string `json:"image_base64"`
	ImageMimeType string `json:"image_mime_type"`
}

func (h *AnalysisHandler) StartSession(c *gin.Context) {
	userID := c.GetUint("user_id")
	session := h.flow.StartSession(userID)

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   session.Snapshot(),
	})
}

func (h *AnalysisHandler) session(c *gin.Context) *services.Session {
	session, ok := h.flow.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Session not found",
		})
		return nil
	}
	if session.UserID != c.GetUint("user_id") {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Session belongs to another user",
		})
		return nil
	}
	return session
}

func (h *AnalysisHandler) Analyze(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	var image *services.ImageInput
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid image encoding",
			})
			return
		}
		image = &services.ImageInput{Data: data, MimeType: req.ImageMimeType}
	}

	result, err := h.flow.Analyze(c.Request.Context(), session, req.Text, image, req.InputType)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisSuperseded) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "cancelled",
				"message": "Analysis was cancelled",
			})
			return
		}
		log.Printf("❌ Analysis failed for user %d: %v", session.UserID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "AI analysis failed. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"result":  result,
			"artwork": moods.ArtworkFor(result.Headline),
		},
	})
}

func (h *AnalysisHandler) State(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   session.Snapshot(),
	})
}

func (h *AnalysisHandler) Cancel(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	h.flow.Cancel(session)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Analysis cancelled",
		"data":    session.Snapshot(),
	})
}

func (h *AnalysisHandler) ShowRecommendations(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	if err := h.flow.ShowRecommendations(session); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "No analysis result to show",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   session.Snapshot(),
	})
}

func (h *AnalysisHandler) BackToResult(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	if err := h.flow.BackToResult(session); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "No analysis result to show",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   session.Snapshot(),
	})
}
