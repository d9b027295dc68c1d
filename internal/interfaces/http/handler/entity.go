package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/application/entity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/dto"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// criteriaPrefix marks equality filters in the entity query string
const criteriaPrefix = "criteria."

// EntityHandler exposes the generic entity adapter
type EntityHandler struct {
	BaseHandler
	entityService *entity.Service
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(entityService *entity.Service) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// Filter godoc
// @Summary      Returns the rows matching the equality criteria
// @Description  Returns the rows matching the equality criteria.
// @Tags         entities
// @Produce      json
// @Param        entity path string true "Entity name"
// @Param        order_by query string false "Sort column, prefix - for descending"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} dto.Response{data=[]object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /entities/{entity} [get]
func (h *EntityHandler) Filter(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	rows, err := h.entityService.Filter(c.Request.Context(), middleware.GetPrincipal(c), c.Param("entity"), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Create godoc
// @Summary      Inserts a row
// @Description  Inserts a row.
// @Tags         entities
// @Accept       json
// @Produce      json
// @Param        entity path string true "Entity name"
// @Param        request body object true "Column values"
// @Success      201 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /entities/{entity} [post]
func (h *EntityHandler) Create(c *gin.Context) {
	var fields map[string]any
	if !h.bindJSON(c, &fields) {
		return
	}

	row, err := h.entityService.Create(c.Request.Context(), middleware.GetPrincipal(c), c.Param("entity"), fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Update godoc
// @Summary      Applies a partial update to a row
// @Description  Applies a partial update to a row.
// @Tags         entities
// @Accept       json
// @Produce      json
// @Param        entity path string true "Entity name"
// @Param        id path string true "Row ID" format(uuid)
// @Param        request body object true "Columns to change"
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /entities/{entity}/{id} [patch]
func (h *EntityHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var patch map[string]any
	if !h.bindJSON(c, &patch) {
		return
	}

	row, err := h.entityService.Update(c.Request.Context(), middleware.GetPrincipal(c), c.Param("entity"), id, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Delete godoc
// @Summary      Removes a row
// @Description  Removes a row.
// @Tags         entities
// @Produce      json
// @Param        entity path string true "Entity name"
// @Param        id path string true "Row ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /entities/{entity}/{id} [delete]
func (h *EntityHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), middleware.GetPrincipal(c), c.Param("entity"), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *EntityHandler) parseQuery(c *gin.Context) (shared.Query, bool) {
	criteria := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		column, ok := strings.CutPrefix(key, criteriaPrefix)
		if !ok || column == "" || len(values) == 0 {
			continue
		}
		criteria[column] = values[0]
	}
	q := shared.NewQuery(criteria).Order(c.Query("order_by"))

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "limit must be a non-negative integer")
			return shared.Query{}, false
		}
		q = q.Take(limit)
	}
	return q, true
}
