package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/http/response"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
	"github.com/yungbote/nutrilog-backend/internal/services"
)

type FoodHandler struct {
	log     *logger.Logger
	search  services.SearchService
	catalog services.CatalogService
}

func NewFoodHandler(log *logger.Logger, search services.SearchService, catalog services.CatalogService) *FoodHandler {
	return &FoodHandler{
		log:     log.With("handler", "FoodHandler"),
		search:  search,
		catalog: catalog,
	}
}

// GET /api/foods/search?q=
func (h *FoodHandler) Search(c *gin.Context) {
	response.RespondOK(c, h.search.Search(c.Request.Context(), c.Query("q")))
}

// GET /api/foods/search/remote?q=
func (h *FoodHandler) SearchRemote(c *gin.Context) {
	res, err := h.search.SearchRemote(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.Warn("Remote search failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/foods/barcode/:code
func (h *FoodHandler) SearchBarcode(c *gin.Context) {
	res, err := h.search.SearchBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/foods
func (h *FoodHandler) List(c *gin.Context) {
	foods, err := h.catalog.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if foods == nil {
		foods = []*types.FoodRecord{}
	}
	response.RespondOK(c, gin.H{"foods": foods})
}

// POST /api/foods
func (h *FoodHandler) Create(c *gin.Context) {
	var in types.FoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	food, err := h.catalog.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"food": food})
}

// POST /api/foods/promote
func (h *FoodHandler) Promote(c *gin.Context) {
	var in types.FoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	food, err := h.catalog.Promote(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"food": food})
}

// PUT /api/foods/:id
func (h *FoodHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in types.FoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	food, err := h.catalog.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"food": food})
}

// DELETE /api/foods/:id
func (h *FoodHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
