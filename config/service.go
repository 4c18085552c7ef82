package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/kbukum/servicebox/logger"
	"github.com/kbukum/servicebox/observability"
)

// DefaultDisposeTimeout bounds container disposal during shutdown.
const DefaultDisposeTimeout = 15 * time.Second

// ServiceConfig contains the configuration every service needs.
// Projects extend it by embedding.
//
//	type CatalogConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    HTTP HTTPConfig `yaml:"http" mapstructure:"http"`
//	}
type ServiceConfig struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Version       string               `yaml:"version" mapstructure:"version"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Container     ContainerConfig      `yaml:"container" mapstructure:"container"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ContainerConfig configures the service container lifecycle.
type ContainerConfig struct {
	DisposeTimeout time.Duration `yaml:"dispose_timeout" mapstructure:"dispose_timeout"`
}

// GetServiceConfig returns the base ServiceConfig. The method is promoted
// through embedding so extended configs satisfy bootstrap.Config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values.
// Embedding structs that override it should call this first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Container.DisposeTimeout == 0 {
		c.Container.DisposeTimeout = DefaultDisposeTimeout
	}
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates the base fields.
// Embedding structs that override it should call this first.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if c.Container.DisposeTimeout < 0 {
		return fmt.Errorf("config.container.dispose_timeout must not be negative (got: %s)", c.Container.DisposeTimeout)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// ServiceInfo returns the identity used on exported telemetry.
func (c *ServiceConfig) ServiceInfo() observability.ServiceInfo {
	return observability.ServiceInfo{
		Name:        c.Name,
		Version:     c.Version,
		Environment: c.Environment,
	}
}
