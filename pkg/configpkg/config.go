// Package configpkg provides parsing functionality for config files, environment variables and flags.
package configpkg

import (
	"errors"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from an optional config file, environment
// variables and command line flags, the latter taking precedence.
type Config struct {
	DataFile     string `mapstructure:"DATA_FILE"`
	StrictMode   bool   `mapstructure:"STRICT_MODE"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	Environement string `mapstructure:"GO_ENV"`
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"data-file": "DATA_FILE",
	"strict":    "STRICT_MODE",
	"log-level": "LOG_LEVEL",
}

// Load reads configuration from path/app.env, environment variables and the given flags.
// A missing config file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	var c Config

	v := viper.New()

	v.SetDefault("DATA_FILE", "users.json")
	v.SetDefault("STRICT_MODE", false)
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("GO_ENV", "production")

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}

			if err := v.BindPFlag(key, f); err != nil {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
