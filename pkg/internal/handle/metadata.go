package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// GetMetadata 返回文档的全部元数据.
func GetMetadata(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	resp, err := svc.GetMetadata(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetMetadata 设置单个元数据键，upsert 语义.
func SetMetadata(c *gin.Context) {
	var req types.SetMetadataRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	if err := svc.SetMetadata(c.Request.Context(), principalFrom(c),
		c.Param("id"), c.Param("key"), req.Value); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": c.Param("key")})
}

// DeleteMetadata 删除单个元数据键.
func DeleteMetadata(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	if err := svc.DeleteMetadata(c.Request.Context(), principalFrom(c),
		c.Param("id"), c.Param("key")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("key")})
}
