package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/requestdata"
)

// currentUser returns the caller resolved by the auth middleware, or nil
// when the route was reached without authentication.
func currentUser(c *gin.Context) *domain.User {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return nil
	}
	return rd.User
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// recordFilterFromQuery reads the shared list filters off the request.
func recordFilterFromQuery(c *gin.Context) (domain.RecordFilter, error) {
	var f domain.RecordFilter
	start, err := parseTimeQuery(c, "start_date")
	if err != nil {
		return f, err
	}
	end, err := parseTimeQuery(c, "end_date")
	if err != nil {
		return f, err
	}
	f.StartDate = start
	f.EndDate = end
	f.Emotion = c.Query("emotion")
	f.Symptom = c.Query("symptom")
	return f, nil
}
