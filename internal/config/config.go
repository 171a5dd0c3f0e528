package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	App     AppConfig     `mapstructure:"app"     validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the local storage settings.
type StorageConfig struct {
	// Dir is the directory holding the key-value records. It is created
	// on first use when missing.
	Dir string `mapstructure:"dir" validate:"required"`
}
