package bootstrap

import (
	"github.com/kbukum/servicebox/config"
)

// Config is the constraint for application configuration types.
// Any struct that embeds config.ServiceConfig satisfies it through
// promoted methods.
//
//	type CatalogConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    HTTP HTTPConfig `yaml:"http" mapstructure:"http"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg, builder)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
