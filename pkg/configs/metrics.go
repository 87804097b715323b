package configs

import (
	"time"

	"github.com/spf13/viper"
)

// MetricsConfig Prometheus 指标配置.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	// Pprof 同时在指标端口暴露 pprof
	Pprof           bool              `mapstructure:"pprof"`
	CollectInterval time.Duration     `mapstructure:"collect_interval"`
	RuntimeMetrics  bool              `mapstructure:"runtime_metrics"`
	Labels          map[string]string `mapstructure:"labels"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "docvault")
	v.SetDefault("metrics.service_version", AppVersion)
	v.SetDefault("metrics.pprof", false)
	v.SetDefault("metrics.collect_interval", "15s")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.labels", map[string]string{
		"service": "docvault",
		"version": AppVersion,
	})
}
