package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/service"
)

// ListVersions 按版本号升序返回文档的全部版本.
func ListVersions(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	resp, err := svc.ListVersions(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RestoreVersion 把目标版本的属性复制为一个新版本.
func RestoreVersion(c *gin.Context) {
	target, err := strconv.Atoi(c.Param("version"))
	if err != nil || target < 1 {
		writeError(c, apperr.Validation("version must be a positive integer"))
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	version, svcErr := svc.RestoreVersion(c.Request.Context(), principalFrom(c), c.Param("id"), target)
	if svcErr != nil {
		writeError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, version)
}
