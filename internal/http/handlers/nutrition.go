package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/nutrilog-backend/internal/http/response"
	"github.com/yungbote/nutrilog-backend/internal/services"
)

type NutritionHandler struct {
	nutrition services.NutritionService
	now       func() time.Time
}

func NewNutritionHandler(nutrition services.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutrition: nutrition, now: time.Now}
}

// GET /api/nutrition/daily?date=YYYY-MM-DD
func (h *NutritionHandler) Daily(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	day, ok := queryDay(c, h.now)
	if !ok {
		return
	}
	response.RespondOK(c, h.nutrition.DailySummary(c.Request.Context(), userID, day))
}
