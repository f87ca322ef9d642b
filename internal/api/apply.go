package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"datalyhub/internal/importer"
)

// Apply 편집된 엑셀(ZIP: 엑셀 + 단일 JSON)을 원본 JSON에 역반영
// POST /api/apply (multipart: file=ZIP, form: sheet, skip_blank)
func (h *Handler) Apply(c *gin.Context) {
	data, filename, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드 파일을 읽을 수 없습니다"})
		return
	}

	sheet := c.PostForm("sheet")
	if sheet == "" {
		sheet = h.convert.SheetName
	}
	skipBlank := c.DefaultPostForm("skip_blank", strconv.FormatBool(h.convert.SkipBlank)) == "true"

	logID, _ := h.store.CreateConvertLog("apply", filename, int64(len(data)))

	out, outName, err := importer.ApplyFromArchive(data, sheet, skipBlank)
	if err != nil {
		h.finishLog(logID, 0, 0, "failed", err.Error())
		status := http.StatusInternalServerError
		if errors.Is(err, importer.ErrJSONNotFound) ||
			errors.Is(err, importer.ErrSheetNotFound) ||
			errors.Is(err, importer.ErrRequiredColumns) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	token := h.downloads.put(out, outName, "application/json; charset=utf-8", downloadTTL)
	h.finishLog(logID, 0, 0, "success", "")

	c.JSON(http.StatusOK, gin.H{
		"id":       logID,
		"filename": outName,
		"download": "/api/download/" + token,
	})
}
