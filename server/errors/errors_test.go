package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spravochnik/converter"
	"spravochnik/formats"
	"spravochnik/workbook"
)

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewValidationError("плохой файл", inner)

	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.Equal(t, "плохой файл", err.UserMessage())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "плохой файл: disk full", err.Error())
}

func TestNewInternalErrorHidesDetails(t *testing.T) {
	err := NewInternalError("journal write failed", errors.New("database is locked"))

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Внутренняя ошибка сервера", err.UserMessage())
	assert.Contains(t, err.Err.Error(), "database is locked")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "x"))

	wrapped := WrapError(NewNotFoundError("нет записи", nil).WithContext("journal"), "история")
	assert.Equal(t, http.StatusNotFound, wrapped.Code)
	assert.Equal(t, "история: нет записи", wrapped.Message)
	assert.Equal(t, "journal", wrapped.Context)

	plain := WrapError(errors.New("boom"), "история")
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
}

func TestFromConversion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"no valid sheet", fmt.Errorf("%w: лист пуст", converter.ErrNoValidSheet), http.StatusBadRequest},
		{"unknown format", fmt.Errorf("%w «XYZ»", formats.ErrUnknownFormat), http.StatusBadRequest},
		{"unsupported file", fmt.Errorf("open a.pdf: %w", workbook.ErrUnsupportedFormat), http.StatusBadRequest},
		{"other", errors.New("permission denied"), http.StatusInternalServerError},
		{"already app error", NewTooLargeError("большой", nil), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromConversion(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
		})
	}
	assert.Nil(t, FromConversion(nil))
}
