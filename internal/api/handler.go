package api

import (
	"io"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"datalyhub/internal/config"
	"datalyhub/internal/store"
)

// 변환 산출물 보관 시간
const downloadTTL = 10 * time.Minute

// Handler API 처리기
type Handler struct {
	store     *store.Store
	downloads *downloadStore
	convert   config.ConvertConfig
	startedAt time.Time
	version   string
}

// NewHandler API 처리기 생성
// convert는 역반영 폼 필드가 비었을 때 쓰는 기본값
func NewHandler(st *store.Store, version string, convert config.ConvertConfig) *Handler {
	return &Handler{
		store:     st,
		downloads: newDownloadStore(),
		convert:   convert,
		startedAt: time.Now(),
		version:   version,
	}
}

// RegisterRoutes API 라우트 등록
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 변환
	router.POST("/export", h.Export)
	router.POST("/apply", h.Apply)
	router.POST("/merge", h.Merge)
	router.POST("/lint", h.Lint)

	// 산출물/이력
	router.GET("/download/:token", h.Download)
	router.GET("/logs", h.ListLogs)
}

// readUpload multipart "file" 필드를 메모리로 읽는다
func readUpload(c *gin.Context) (data []byte, filename string, err error) {
	var fh *multipart.FileHeader
	fh, err = c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

// Download 토큰으로 보관 중인 산출물을 내려준다
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	d, ok := h.downloads.get(token)
	if !ok {
		c.JSON(404, gin.H{"error": "다운로드가 만료되었거나 존재하지 않습니다"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(d.filename))
	c.Data(200, d.contentType, d.data)
}

// finishLog 이력 마감. 기록 실패는 변환 결과에 영향을 주지 않는다
func (h *Handler) finishLog(id string, docCount, rowCount int, status, errMsg string) {
	if id == "" {
		return
	}
	_ = h.store.CompleteConvertLog(id, docCount, rowCount, status, errMsg)
}
