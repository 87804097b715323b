package configs

import (
	"time"

	"github.com/spf13/viper"
)

// AuthConfig 控制基于 X-API-Key 请求头的身份认证.
type AuthConfig struct {
	Enabled   bool     `mapstructure:"enabled"`    // 开启认证校验
	Header    string   `mapstructure:"header"`     // 携带 API Key 的请求头名称
	SkipPaths []string `mapstructure:"skip_paths"` // 跳过认证的路径前缀（如 /metrics、/api/v1/health）
	// CacheTTL 主体解析结果的缓存时间；0 表示不缓存，每次请求都查库
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.header", "X-API-Key")
	v.SetDefault("auth.cache_ttl", "30s")
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
		"/api/v1/auth/login",
	})
}
