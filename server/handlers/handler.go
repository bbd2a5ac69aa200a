package handlers

import (
	"context"
	"log/slog"

	"spravochnik/converter"
	"spravochnik/database"
)

// History журнал конвертаций
type History interface {
	List(ctx context.Context, limit int) ([]database.Entry, error)
	Get(ctx context.Context, id string) (*database.Entry, error)
}

// Handler обработчики HTTP API
type Handler struct {
	conv       *converter.Converter
	history    History
	maxUpload  int64
	scratchDir string
	logger     *slog.Logger
}

// Config параметры обработчиков
type Config struct {
	MaxUploadBytes int64
	ScratchDir     string
}

// NewHandler создает обработчики. history может быть nil.
func NewHandler(conv *converter.Converter, history History, cfg Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	return &Handler{
		conv:       conv,
		history:    history,
		maxUpload:  cfg.MaxUploadBytes,
		scratchDir: cfg.ScratchDir,
		logger:     logger,
	}
}
