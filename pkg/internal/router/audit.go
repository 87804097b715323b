package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterAuditRoutes 注册审计查询路由.
func RegisterAuditRoutes(g *gin.RouterGroup) {
	g.GET("/audit", handle.QueryAudit)
}
