package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"datalyhub/internal/corpus"
	"datalyhub/internal/exporter"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export 말뭉치 JSON을 엑셀로 변환
// POST /api/export (multipart: file=말뭉치 JSON)
func (h *Handler) Export(c *gin.Context) {
	data, filename, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드 파일을 읽을 수 없습니다"})
		return
	}

	logID, _ := h.store.CreateConvertLog("export", filename, int64(len(data)))

	corp, err := corpus.Parse(data)
	if err != nil {
		h.finishLog(logID, 0, 0, "failed", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := exporter.Extract(corp)
	out, err := exporter.Render(rows)
	if err != nil {
		h.finishLog(logID, len(corp.Documents()), len(rows), "failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	outName := strings.TrimSuffix(filename, ".json") + ".xlsx"
	token := h.downloads.put(out, outName, xlsxContentType, downloadTTL)
	h.finishLog(logID, len(corp.Documents()), len(rows), "success", "")

	c.JSON(http.StatusOK, gin.H{
		"id":       logID,
		"filename": outName,
		"docs":     len(corp.Documents()),
		"rows":     len(rows),
		"download": "/api/download/" + token,
	})
}
