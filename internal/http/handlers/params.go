package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/nutrilog-backend/internal/http/response"
	"github.com/yungbote/nutrilog-backend/internal/pkg/ctxutil"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
)

const dayLayout = "2006-01-02"

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondServiceError(c, apperr.NewValidation(name, "must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}

// queryDay reads ?date=YYYY-MM-DD, defaulting to the current UTC day.
func queryDay(c *gin.Context, now func() time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return now().UTC(), true
	}
	day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		response.RespondServiceError(c, apperr.NewValidation("date", "must be YYYY-MM-DD"))
		return time.Time{}, false
	}
	return day, true
}
