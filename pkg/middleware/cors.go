package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/configs"
)

// CORSMiddleware 放行前端跨域请求；凭证走 X-API-Key 头，需显式加入白名单.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "X-API-Key")
	c.AllowFiles = true
	c.MaxAge = 12 * time.Hour

	if cfg.Debug {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = []string{"*"}
	}

	return cors.New(c)
}
