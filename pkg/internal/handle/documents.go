package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// CreateDocument 创建不带文件的文档.
func CreateDocument(c *gin.Context) {
	var req types.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	doc, err := svc.CreateDocument(c.Request.Context(), principalFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// ListDocuments 分页列出文档及其最新版本摘要.
func ListDocuments(c *gin.Context) {
	var req types.ListDocumentsRequest
	if !bindQuery(c, &req) {
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	resp, err := svc.ListDocuments(c.Request.Context(), principalFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetDocument 文档详情.
func GetDocument(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	doc, err := svc.GetDocument(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// UpdateDocument 更新标题或分类.
func UpdateDocument(c *gin.Context) {
	var req types.UpdateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	doc, err := svc.UpdateDocument(c.Request.Context(), principalFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocument 级联删除文档.
func DeleteDocument(c *gin.Context) {
	svc := service.NewDocumentService(c.Request.Context())

	if err := svc.DeleteDocument(c.Request.Context(), principalFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
