package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/http/response"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

// Login verifies the bearer credential and provisions the local user on
// first sight. The middleware already resolved the caller, so this is a
// read of the request data.
func (ah *AuthHandler) Login(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Login successful",
		"user":    usr,
	})
}

// Me returns the resolved caller.
func (ah *AuthHandler) Me(c *gin.Context) {
	usr := currentUser(c)
	if usr == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authentication credentials"))
		return
	}
	response.RespondOK(c, gin.H{"user": usr})
}

// VerifyToken checks a credential without touching the graph. The token may
// arrive as a bearer header or an id_token query parameter.
func (ah *AuthHandler) VerifyToken(c *gin.Context) {
	tokenString := c.Query("id_token")
	if tokenString == "" {
		if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			tokenString = h[7:]
		}
	}
	if tokenString == "" {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
		return
	}
	usr, err := ah.authService.VerifyToken(c.Request.Context(), tokenString)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Token is valid",
		"uid":     usr.UID,
	})
}
