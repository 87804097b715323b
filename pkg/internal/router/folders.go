package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterFolderRoutes 注册文件夹相关路由.
func RegisterFolderRoutes(g *gin.RouterGroup) {
	folders := g.Group("/folders")
	{
		folders.POST("", handle.CreateFolder)
		folders.GET("", handle.ListFolders)
		folders.PUT("/:id/documents/:docID", handle.AddDocumentToFolder)
		folders.DELETE("/:id/documents/:docID", handle.RemoveDocumentFromFolder)
	}
}
