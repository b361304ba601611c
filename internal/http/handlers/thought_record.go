package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/http/response"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/services"
)

type ThoughtRecordHandler struct {
	log           *logger.Logger
	recordService services.ThoughtRecordService
}

func NewThoughtRecordHandler(log *logger.Logger, recordService services.ThoughtRecordService) *ThoughtRecordHandler {
	return &ThoughtRecordHandler{
		log:           log.With("handler", "ThoughtRecordHandler"),
		recordService: recordService,
	}
}

type createThoughtRecordRequest struct {
	Timestamp            *time.Time `json:"timestamp"`
	Title                *string    `json:"title"`
	SituationDescription *string    `json:"situation_description"`
	Emotion              string     `json:"emotion" binding:"required"`
	UnderlyingBelief     *string    `json:"underlying_belief"`
	Symptoms             []string   `json:"symptoms"`
}

type updateRecordRequest struct {
	Timestamp            *time.Time `json:"timestamp"`
	Title                *string    `json:"title"`
	SituationDescription *string    `json:"situation_description"`
	Emotion              *string    `json:"emotion"`
	UnderlyingBelief     *string    `json:"underlying_belief"`
	Symptoms             []string   `json:"symptoms"`
}

func (r updateRecordRequest) toUpdate() domain.RecordUpdate {
	return domain.RecordUpdate{
		Timestamp:            r.Timestamp,
		Title:                r.Title,
		SituationDescription: r.SituationDescription,
		Emotion:              r.Emotion,
		UnderlyingBelief:     r.UnderlyingBelief,
		Symptoms:             r.Symptoms,
	}
}

func (th *ThoughtRecordHandler) Create(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	var req createThoughtRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := th.recordService.Create(c.Request.Context(), usr.UID, services.ThoughtRecordInput{
		Timestamp:            req.Timestamp,
		Title:                req.Title,
		SituationDescription: req.SituationDescription,
		Emotion:              req.Emotion,
		UnderlyingBelief:     req.UnderlyingBelief,
		Symptoms:             req.Symptoms,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

func (th *ThoughtRecordHandler) List(c *gin.Context) {
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
	records, err := th.recordService.List(c.Request.Context(), usr.UID, filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, records)
}

func (th *ThoughtRecordHandler) Patterns(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	patterns, err := th.recordService.Patterns(c.Request.Context(), usr.UID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, patterns)
}

// InsightsSummary bundles the aggregate reads in one response.
func (th *ThoughtRecordHandler) InsightsSummary(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	summary, err := th.recordService.InsightsSummary(c.Request.Context(), usr.UID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (th *ThoughtRecordHandler) Update(c *gin.Context) {
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
	rec, err := th.recordService.Update(c.Request.Context(), usr.UID, c.Param("record_id"), req.toUpdate())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

func (th *ThoughtRecordHandler) Delete(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	if err := th.recordService.Delete(c.Request.Context(), usr.UID, c.Param("record_id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Record deleted successfully"})
}
