package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/http/response"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/services"
)

type EmotionRecordHandler struct {
	log           *logger.Logger
	recordService services.EmotionRecordService
}

func NewEmotionRecordHandler(log *logger.Logger, recordService services.EmotionRecordService) *EmotionRecordHandler {
	return &EmotionRecordHandler{
		log:           log.With("handler", "EmotionRecordHandler"),
		recordService: recordService,
	}
}

type createEmotionRecordRequest struct {
	Timestamp            *time.Time `json:"timestamp"`
	Title                *string    `json:"title"`
	SituationDescription *string    `json:"situation_description"`
	Emotion              string     `json:"emotion" binding:"required"`
	UnderlyingBelief     *string    `json:"underlying_belief"`
}

func (eh *EmotionRecordHandler) Create(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	var req createEmotionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := eh.recordService.Create(c.Request.Context(), usr.UID, services.EmotionRecordInput{
		Timestamp:            req.Timestamp,
		Title:                req.Title,
		SituationDescription: req.SituationDescription,
		Emotion:              req.Emotion,
		UnderlyingBelief:     req.UnderlyingBelief,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

func (eh *EmotionRecordHandler) List(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	filter, err := recordFilterFromQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	records, err := eh.recordService.List(c.Request.Context(), usr.UID, filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, records)
}

func (eh *EmotionRecordHandler) Patterns(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	patterns, err := eh.recordService.Patterns(c.Request.Context(), usr.UID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, patterns)
}

func (eh *EmotionRecordHandler) Update(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := eh.recordService.Update(c.Request.Context(), usr.UID, c.Param("record_id"), req.toUpdate())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

func (eh *EmotionRecordHandler) Delete(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	if err := eh.recordService.Delete(c.Request.Context(), usr.UID, c.Param("record_id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Record deleted successfully"})
}
