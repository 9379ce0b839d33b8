package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/http/response"
	"github.com/yungbote/nutrilog-backend/internal/services"
)

type MealHandler struct {
	ledger services.MealLedger
	now    func() time.Time
}

func NewMealHandler(ledger services.MealLedger) *MealHandler {
	return &MealHandler{ledger: ledger, now: time.Now}
}

// POST /api/meals/log
func (h *MealHandler) Log(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.LogFoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	line, err := h.ledger.LogFood(c.Request.Context(), userID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"line": line})
}

// GET /api/meals?date=YYYY-MM-DD
func (h *MealHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	day, ok := queryDay(c, h.now)
	if !ok {
		return
	}
	out, err := h.ledger.DailyMeals(c.Request.Context(), userID, day)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if out == nil {
		out = []*types.Meal{}
	}
	response.RespondOK(c, gin.H{"date": day.Format(dayLayout), "meals": out})
}

// DELETE /api/meals/lines/:id
func (h *MealHandler) DeleteLine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	lineID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.RemoveLine(c.Request.Context(), userID, lineID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
