package configs

import (
	"time"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 服务配置.
type ServerConfig struct {
	Host string `mapstructure:"host" rule:"ip"`
	Port int    `mapstructure:"port" rule:"min=1,max=65535"`
	// Timeout 单请求超时（秒）；下载流式响应不受此限制
	Timeout      int  `mapstructure:"timeout" rule:"min=1,max=600"`
	Debug        bool `mapstructure:"debug"`
	ReloadConfig bool `mapstructure:"reload_config"`
}

// TimeoutDuration Timeout 字段的 time.Duration 形式.
func (s *ServerConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

func (s *ServerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout", 60)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.reload_config", true)
}
