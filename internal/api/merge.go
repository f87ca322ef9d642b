package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"datalyhub/internal/merger"
)

// Merge A/B 두 팀의 평가 JSON ZIP을 병합
// POST /api/merge (multipart: file=ZIP, form: week)
func (h *Handler) Merge(c *gin.Context) {
	data, filename, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드 파일을 읽을 수 없습니다"})
		return
	}

	week, err := strconv.Atoi(c.DefaultPostForm("week", "1"))
	if err != nil || week < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week는 1 이상의 정수여야 합니다"})
		return
	}

	logID, _ := h.store.CreateConvertLog("merge", filename, int64(len(data)))

	res, err := merger.Merge(data, week)
	if err != nil {
		h.finishLog(logID, 0, 0, "failed", err.Error())
		status := http.StatusInternalServerError
		if errors.Is(err, merger.ErrTeamFolders) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	outName := fmt.Sprintf("merged_%d주차.zip", week)
	token := h.downloads.put(res.Archive, outName, "application/zip", downloadTTL)
	h.finishLog(logID, res.Merged, 0, "success", "")

	c.JSON(http.StatusOK, gin.H{
		"id":       logID,
		"filename": outName,
		"merged":   res.Merged,
		"skipped":  res.Skipped,
		"download": "/api/download/" + token,
	})
}
