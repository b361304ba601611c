package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/http/response"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/services"
)

type EmotionHandler struct {
	log            *logger.Logger
	emotionService services.EmotionService
}

func NewEmotionHandler(log *logger.Logger, emotionService services.EmotionService) *EmotionHandler {
	return &EmotionHandler{
		log:            log.With("handler", "EmotionHandler"),
		emotionService: emotionService,
	}
}

type addEmotionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (eh *EmotionHandler) Add(c *gin.Context) {
	var req addEmotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	emo, err := eh.emotionService.Add(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Emotion added successfully",
		"emotion": emo,
	})
}

func (eh *EmotionHandler) List(c *gin.Context) {
	emotions, err := eh.emotionService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotions": emotions})
}

// Frequency returns the caller's most frequent emotions across their
// thought records.
func (eh *EmotionHandler) Frequency(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	counts, err := eh.emotionService.FrequencyForUser(c.Request.Context(), usr.UID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, counts)
}
