// Package config defines the application configuration and its loading
// from environment variables and an optional config file.
package config
