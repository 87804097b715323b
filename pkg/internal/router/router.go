// Package router 管理路由配置，将 /api/v1 下的路径绑定到 handle 包的处理器.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册全部业务路由到 /api/v1.
func RegisterAPIRoutes(engine *gin.Engine) {
	v1 := engine.Group("/api/v1")
	{
		RegisterAuthRoutes(v1)
		RegisterDocumentRoutes(v1)
		RegisterFolderRoutes(v1)
		RegisterTagRoutes(v1)
		RegisterAuditRoutes(v1)
		RegisterHealthRoutes(v1)
	}
}
