package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"datalyhub/internal/corpus"
	"datalyhub/internal/linter"
)

// Lint SRL argument 정리 규칙을 적용하고 정리된 JSON과 리포트를 내려준다
// POST /api/lint (multipart: file=말뭉치 JSON)
func (h *Handler) Lint(c *gin.Context) {
	data, filename, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드 파일을 읽을 수 없습니다"})
		return
	}

	logID, _ := h.store.CreateConvertLog("lint", filename, int64(len(data)))

	corp, err := corpus.Parse(data)
	if err != nil {
		h.finishLog(logID, 0, 0, "failed", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := linter.Clean(corp, filename)

	out, err := corp.Marshal()
	if err != nil {
		h.finishLog(logID, 0, 0, "failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sum := linter.Summary{TotalFiles: 1}
	if res.Changed {
		sum.ChangedFiles = 1
	} else {
		sum.SkippedFiles = 1
	}
	report, err := linter.MakeReport(sum, res.Log)
	if err != nil {
		h.finishLog(logID, 0, len(res.Log), "failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stem := strings.TrimSuffix(filename, ".json")
	jsonToken := h.downloads.put(out, stem+"_cleaned.json", "application/json; charset=utf-8", downloadTTL)
	reportToken := h.downloads.put(report, stem+"_srl_report.xlsx", xlsxContentType, downloadTTL)
	h.finishLog(logID, len(corp.Documents()), len(res.Log), "success", "")

	c.JSON(http.StatusOK, gin.H{
		"id":       logID,
		"changed":  res.Changed,
		"findings": len(res.Log),
		"download": "/api/download/" + jsonToken,
		"report":   "/api/download/" + reportToken,
	})
}
