package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spravochnik/database"
	apperrors "spravochnik/server/errors"
	"spravochnik/server/middleware"
)

// ConversionsResponse страница журнала конвертаций
type ConversionsResponse struct {
	Conversions []database.Entry `json:"conversions"`
	Total       int              `json:"total"`
}

// HandleConversions последние записи журнала
// @Summary История конвертаций
// @Tags conversions
// @Produce json
// @Param limit query int false "Сколько записей вернуть (по умолчанию 50)"
// @Success 200 {object} ConversionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Журнал отключён"
// @Router /conversions [get]
func (h *Handler) HandleConversions(c *gin.Context) {
	if h.history == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, middleware.ErrorResponse{Error: "журнал конвертаций отключён"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			middleware.AbortWithError(c, apperrors.NewValidationError("limit должен быть числом от 1 до 1000", err))
			return
		}
		limit = n
	}

	entries, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, apperrors.WrapError(err, "не удалось прочитать журнал"))
		return
	}
	if entries == nil {
		entries = []database.Entry{}
	}
	c.JSON(http.StatusOK, ConversionsResponse{Conversions: entries, Total: len(entries)})
}

// HandleConversion одна запись журнала с полным отчётом
// @Summary Отчёт о конвертации
// @Tags conversions
// @Produce json
// @Param id path string true "Идентификатор конвертации"
// @Success 200 {object} database.Entry
// @Failure 404 {object} middleware.ErrorResponse
// @Router /conversions/{id} [get]
func (h *Handler) HandleConversion(c *gin.Context) {
	if h.history == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, middleware.ErrorResponse{Error: "журнал конвертаций отключён"})
		return
	}

	entry, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		middleware.AbortWithError(c, apperrors.NewNotFoundError("конвертация не найдена", err))
		return
	}
	if err != nil {
		middleware.AbortWithError(c, apperrors.WrapError(err, "не удалось прочитать журнал"))
		return
	}
	c.JSON(http.StatusOK, entry)
}
