package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterTagRoutes 注册标签相关路由.
func RegisterTagRoutes(g *gin.RouterGroup) {
	g.POST("/tags", handle.AddTags)
}
