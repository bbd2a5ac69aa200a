package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"spravochnik/scratch"
	apperrors "spravochnik/server/errors"
	"spravochnik/workbook"
)

// upload загруженный справочник во временном каталоге запроса
type upload struct {
	dir    *scratch.Dir
	path   string
	name   string
	format string
}

func (u *upload) Close() error {
	return u.dir.Close()
}

// receiveUpload принимает multipart-поля file и format
func (h *Handler) receiveUpload(c *gin.Context) (*upload, error) {
	tooLarge := func(err error) error {
		return apperrors.NewTooLargeError(fmt.Sprintf("файл больше допустимых %d МБ", h.maxUpload>>20), err)
	}
	if c.Request.ContentLength > h.maxUpload {
		return nil, tooLarge(nil)
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(err)
		}
		return nil, apperrors.NewValidationError("не передан файл (поле file)", err)
	}

	format := strings.TrimSpace(c.PostForm("format"))
	if format == "" {
		format = strings.TrimSpace(c.Query("format"))
	}
	if format == "" {
		return nil, apperrors.NewValidationError("не указан формат справочника (поле format)", nil)
	}
	if _, err := h.conv.Registry().Lookup(format); err != nil {
		return nil, apperrors.FromConversion(err)
	}

	name := filepath.Base(filepath.Clean("/" + fh.Filename))
	if !workbook.Supported(name) {
		return nil, apperrors.FromConversion(fmt.Errorf("%w: %s", workbook.ErrUnsupportedFormat, name))
	}

	dir, err := scratch.Acquire(h.scratchDir, "upload", h.logger)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to acquire scratch dir", err)
	}
	path := dir.File(name)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		dir.Close()
		return nil, apperrors.NewInternalError("failed to save upload", err)
	}

	return &upload{dir: dir, path: path, name: name, format: format}, nil
}

// vcfName имя файла ответа: имя исходника с расширением .vcf
func vcfName(source string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" {
		base = "contacts"
	}
	return base + ".vcf"
}
