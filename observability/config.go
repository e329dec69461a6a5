package observability

import "fmt"

// Config holds OpenTelemetry export configuration.
type Config struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`       // OTLP HTTP host:port
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`       // allow plaintext export
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"` // 0.0 to 1.0
	Interval   int     `yaml:"interval" mapstructure:"interval"`       // metric export interval, seconds
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be between 0 and 1 (got: %f)", c.SampleRate)
	}
	if c.Interval < 0 {
		return fmt.Errorf("observability.interval must be non-negative (got: %d)", c.Interval)
	}
	return nil
}
