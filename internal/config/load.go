package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config file. Environment variables (prefix ROAMCAR_, dots become
// underscores, e.g. ROAMCAR_STORAGE_DIR) take precedence over values from
// the config file, which takes precedence over defaults.
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.log_level", "info")
	v.SetDefault("storage.dir", defaultStorageDir())

	v.SetConfigName("roamcar")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "roamcar"))
	}

	v.SetEnvPrefix("ROAMCAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything has a default.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// defaultStorageDir places the key-value records under the user's config
// directory, falling back to a dotdir in the working directory when the
// platform has none.
func defaultStorageDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "roamcar")
	}
	return ".roamcar"
}
