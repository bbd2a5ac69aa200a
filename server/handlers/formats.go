package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FormatInfo описание формата справочника
type FormatInfo struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Aliases   []string `json:"aliases,omitempty"`
	Signature []string `json:"signature"`
	SheetName string   `json:"sheet_name_guard,omitempty"`
}

// HandleFormats список известных форматов
// @Summary Список форматов справочников
// @Tags formats
// @Produce json
// @Success 200 {array} FormatInfo
// @Router /formats [get]
func (h *Handler) HandleFormats(c *gin.Context) {
	all := h.conv.Registry().All()
	out := make([]FormatInfo, 0, len(all))
	for _, f := range all {
		info := FormatInfo{
			Name:      f.Name(),
			Title:     f.Title(),
			Aliases:   f.Aliases(),
			Signature: f.RawSignature(),
		}
		if re, ok := f.SheetGuard(); ok {
			info.SheetName = re.String()
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, out)
}
