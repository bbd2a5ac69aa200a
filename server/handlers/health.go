package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse состояние сервиса
type HealthResponse struct {
	Status  string   `json:"status"`
	Time    string   `json:"time"`
	Formats []string `json:"formats"`
	Journal bool     `json:"journal"`
}

// HandleHealth проверка работоспособности
// @Summary Проверка работоспособности
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Time:    time.Now().Format(time.RFC3339),
		Formats: h.conv.Registry().Names(),
		Journal: h.history != nil,
	})
}
