package configs

import "github.com/spf13/viper"

// RateLimitConfig 请求限流配置；上传是大请求，默认阈值偏保守.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
	// Key 限流维度：global、ip、header:Header-Name
	Key string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 25.0)
	v.SetDefault("rate_limit.burst", 50)
	v.SetDefault("rate_limit.key", "ip")
}
