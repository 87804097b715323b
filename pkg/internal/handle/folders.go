package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// CreateFolder 创建文件夹.
func CreateFolder(c *gin.Context) {
	var req types.CreateFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	folder, err := svc.CreateFolder(c.Request.Context(), principalFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders 文件夹列表.
func ListFolders(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	resp, err := svc.ListFolders(c.Request.Context(), principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddDocumentToFolder 文档加入文件夹，幂等.
func AddDocumentToFolder(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	if err := svc.AddDocumentToFolder(c.Request.Context(), principalFrom(c),
		c.Param("id"), c.Param("docID")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder_id": c.Param("id"), "document_id": c.Param("docID")})
}

// RemoveDocumentFromFolder 文档移出文件夹.
func RemoveDocumentFromFolder(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	if err := svc.RemoveDocumentFromFolder(c.Request.Context(), principalFrom(c),
		c.Param("id"), c.Param("docID")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": c.Param("docID")})
}
