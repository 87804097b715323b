package handle

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/service"
)

// DownloadDocument 流式返回文档内容；?version=N 指定版本，缺省为最新版本.
func DownloadDocument(c *gin.Context) {
	versionNumber := 0

	if raw := c.Query("version"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(c, apperr.Validation("version must be a positive integer"))
			return
		}

		versionNumber = n
	}

	svc := service.NewDocumentService(c.Request.Context())

	content, version, err := svc.Download(c.Request.Context(), principalFrom(c), c.Param("id"), versionNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	defer func() { _ = content.Close() }()

	contentType := "application/octet-stream"
	if version.MimeType != nil && *version.MimeType != "" {
		contentType = *version.MimeType
	}

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", version.FileName),
	}

	c.DataFromReader(http.StatusOK, version.FileSize, contentType, content, extraHeaders)
}
