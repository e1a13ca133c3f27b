// Package config provides configuration loading and validation for
// applications embedding restkit.
//
// It uses Viper to load configuration from YAML files and environment
// variables, godotenv to load .env files, and validator struct tags to
// check the result. Config and .env files are discovered in standard
// locations relative to the working directory, or passed explicitly.
//
// # Usage
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Backend client.Config `yaml:"backend" mapstructure:"backend"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("my-service", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g., BACKEND_HOSTNAME maps to backend.hostname).
package config
