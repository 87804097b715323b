package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/configs"
	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/auth"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// AuthMiddleware 从请求头提取 API Key，解析为主体并注入请求上下文.
// 每个请求只解析一次，后续授权判定读取上下文中的主体.
func AuthMiddleware(cfg configs.AuthConfig, resolver auth.Resolver) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	header := cfg.Header
	if header == "" {
		header = "X-API-Key"
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		apiKey := c.GetHeader(header)

		principal, err := resolver.Resolve(c.Request.Context(), apiKey)
		if err != nil {
			status := apperr.HTTPStatus(err)
			if status == http.StatusInternalServerError {
				nlog.Logger().Error().Err(err).Msg("principal resolution failed")
				c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})

				return
			}

			c.AbortWithStatusJSON(status, gin.H{"error": "invalid or missing API key"})

			return
		}

		ctx := ctxPkg.WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
