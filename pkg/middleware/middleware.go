// Package middleware 提供 gin 中间件：认证、日志、指标、追踪、限流与熔断.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/storage"
)

// StorageMiddleware 将存储管理器注入请求上下文.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
