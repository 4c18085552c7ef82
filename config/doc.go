// Package config loads service configuration with Viper.
//
// Values come from a config.yml found next to the service's cmd directory,
// a .env file loaded through godotenv, and the process environment.
// Environment variables map onto nested keys by splitting on underscores,
// so CONTAINER_DISPOSE_TIMEOUT=5s sets container.dispose_timeout.
//
// # Usage
//
//	var cfg CatalogConfig
//	if err := config.LoadConfig("catalog", &cfg); err != nil {
//	    return err
//	}
package config
