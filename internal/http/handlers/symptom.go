package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/http/response"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/services"
)

type SymptomHandler struct {
	log            *logger.Logger
	symptomService services.SymptomService
}

func NewSymptomHandler(log *logger.Logger, symptomService services.SymptomService) *SymptomHandler {
	return &SymptomHandler{
		log:            log.With("handler", "SymptomHandler"),
		symptomService: symptomService,
	}
}

type addSymptomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (sh *SymptomHandler) Add(c *gin.Context) {
	var req addSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sym, err := sh.symptomService.Add(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Symptom added successfully",
		"symptom": sym,
	})
}

func (sh *SymptomHandler) List(c *gin.Context) {
	symptoms, err := sh.symptomService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"symptoms": symptoms})
}

// TimePatterns correlates the caller's symptoms with time-of-day buckets.
func (sh *SymptomHandler) TimePatterns(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	patterns, err := sh.symptomService.TimePatternsForUser(c.Request.Context(), usr.UID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, patterns)
}
