package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spravochnik/server/errors"
)

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortWithError логирует ошибку и отвечает JSON с кодом из AppError.
// Ошибки, не являющиеся AppError, отдаются как 500.
func AbortWithError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("внутренняя ошибка сервера", err)
	}

	slog.Error("HTTP error",
		"error", appErr.Err,
		"user_message", appErr.Message,
		"context", appErr.Context,
		"status_code", appErr.Code,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Code, ErrorResponse{
		Error:     appErr.Message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}
