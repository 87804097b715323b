package configs

import "github.com/spf13/viper"

// CircuitBreakerConfig 熔断配置，隔离数据库和对象存储的持续故障.
type CircuitBreakerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// FailureRate 统计窗口内失败比例阈值，取值 [0,1]
	FailureRate float64 `mapstructure:"failure_rate"`
	// MinRequests 窗口内达到该请求数后才参与熔断判定
	MinRequests uint32 `mapstructure:"min_requests"`
	// IntervalSeconds 统计窗口长度
	IntervalSeconds int `mapstructure:"interval_seconds"`
	// TimeoutSeconds 打开状态维持时长，到期后转半开
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// MaxRequestsInHalf 半开状态放行的探测请求数
	MaxRequestsInHalf uint32 `mapstructure:"max_requests_in_half"`
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", false)
	v.SetDefault("circuit_breaker.failure_rate", 0.6)
	v.SetDefault("circuit_breaker.min_requests", 10)
	v.SetDefault("circuit_breaker.interval_seconds", 30)
	v.SetDefault("circuit_breaker.timeout_seconds", 20)
	v.SetDefault("circuit_breaker.max_requests_in_half", 3)
}
