package main

import (
	"github.com/kbukum/webdemo/auth"
	"github.com/kbukum/webdemo/config"
	"github.com/kbukum/webdemo/logger"
	"github.com/kbukum/webdemo/observability"
	"github.com/kbukum/webdemo/server"
	"github.com/kbukum/webdemo/store"
)

// Config is the full service configuration.
type Config struct {
	Base          config.BaseConfig    `yaml:"base" mapstructure:"base"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Store         store.Config         `yaml:"store" mapstructure:"store"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Base.Name == "" {
		c.Base.Name = "webdemo"
	}
	c.Base.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Store.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}
