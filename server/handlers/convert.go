package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spravochnik/converter"
	apperrors "spravochnik/server/errors"
	"spravochnik/server/middleware"
	"spravochnik/vcard"
)

// ValidateResponse результат проверки справочника
type ValidateResponse struct {
	Report   *converter.Report `json:"report"`
	Contacts []vcard.Contact   `json:"contacts"`
}

// HandleConvert конвертирует загруженный справочник в vCard
// @Summary Конвертировать справочник в vCard
// @Description Принимает книгу (.xlsx, .xls, .csv, .html) и формат справочника, возвращает файл .vcf
// @Tags conversion
// @Accept multipart/form-data
// @Produce text/vcard
// @Param file formData file true "Книга со справочником"
// @Param format formData string true "Формат: ВПК, ВЗК, ВИЦ, ЗЗГТ"
// @Success 200 {file} file "vCard 3.0"
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос или нет подходящих листов"
// @Failure 413 {object} middleware.ErrorResponse "Файл слишком большой"
// @Failure 429 {object} middleware.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} middleware.ErrorResponse "Внутренняя ошибка сервера"
// @Router /convert [post]
func (h *Handler) HandleConvert(c *gin.Context) {
	up, err := h.receiveUpload(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	defer up.Close()

	// Буфер, чтобы при ошибке не отдать клиенту половину файла
	var buf bytes.Buffer
	rep, err := h.conv.ConvertTo(c.Request.Context(), converter.Request{
		Source: up.path,
		Format: up.format,
		Name:   up.name,
	}, &buf)
	if err != nil {
		middleware.AbortWithError(c, apperrors.FromConversion(err).WithContext(up.name))
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": vcfName(up.name)}))
	c.Header("X-Conversion-ID", rep.ID)
	c.Header("X-Contacts-Written", strconv.Itoa(rep.ContactsWritten))
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", buf.Bytes())
}

// HandleValidate проверяет справочник без выдачи vCard
// @Summary Проверить справочник
// @Description Проходит весь конвейер и возвращает отчёт по листам и собранные контакты
// @Tags conversion
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Книга со справочником"
// @Param format formData string true "Формат: ВПК, ВЗК, ВИЦ, ЗЗГТ"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /validate [post]
func (h *Handler) HandleValidate(c *gin.Context) {
	up, err := h.receiveUpload(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	defer up.Close()

	rep, contacts, err := h.conv.Validate(c.Request.Context(), up.path, up.format)
	if err != nil {
		middleware.AbortWithError(c, apperrors.FromConversion(err).WithContext(up.name))
		return
	}
	rep.Source = up.name
	c.JSON(http.StatusOK, ValidateResponse{Report: rep, Contacts: contacts})
}
