package main

import (
	"fmt"
	"time"

	"github.com/kbukum/servicebox/config"
	"github.com/kbukum/servicebox/server"
)

// CatalogConfig is the catalog service configuration.
type CatalogConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server server.Config `yaml:"server" mapstructure:"server"`
	Store  StoreConfig   `yaml:"store" mapstructure:"store"`
}

// StoreConfig configures the item store.
type StoreConfig struct {
	// MaxItems caps the catalog size; zero means unlimited.
	MaxItems    int           `yaml:"max_items" mapstructure:"max_items"`
	OpenTimeout time.Duration `yaml:"open_timeout" mapstructure:"open_timeout"`
}

func (c *CatalogConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Store.OpenTimeout == 0 {
		c.Store.OpenTimeout = 5 * time.Second
	}
}

func (c *CatalogConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Store.MaxItems < 0 {
		return fmt.Errorf("store.max_items must not be negative (got: %d)", c.Store.MaxItems)
	}
	return nil
}
