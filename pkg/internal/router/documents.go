package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterDocumentRoutes 注册文档相关路由.
func RegisterDocumentRoutes(g *gin.RouterGroup) {
	docs := g.Group("/documents")
	{
		// 创建（不带文件）、上传与列表
		docs.POST("", handle.CreateDocument)
		docs.POST("/upload", handle.UploadDocument)
		docs.GET("", handle.ListDocuments)

		single := docs.Group("/:id")
		{
			single.GET("", handle.GetDocument)
			single.PATCH("", handle.UpdateDocument)
			single.DELETE("", handle.DeleteDocument)
			// 内容下载，?version=N 指定版本
			single.GET("/content", handle.DownloadDocument)

			versions := single.Group("/versions")
			{
				versions.GET("", handle.ListVersions)
				versions.POST("/:version/restore", handle.RestoreVersion)
			}

			meta := single.Group("/metadata")
			{
				meta.GET("", handle.GetMetadata)
				meta.PUT("/:key", handle.SetMetadata)
				meta.DELETE("/:key", handle.DeleteMetadata)
			}
		}
	}
}
