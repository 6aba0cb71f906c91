package config

import "fmt"

// MetricsConfig controls the Prometheus endpoint served while playing
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Bound to localhost unless overridden
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Addr returns host:port for the metrics listener
func (c MetricsConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
