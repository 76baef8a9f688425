// Package config loads application settings from yaml files with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config defines the accessors for configuration values.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetFloat64(key string) float64
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	GetAll() map[string]interface{}
}

// viperConfig implements Config using viper.
type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *viperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *viperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *viperConfig) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

func (c *viperConfig) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

func (c *viperConfig) GetStringMap(key string) map[string]interface{} {
	return c.v.GetStringMap(key)
}

func (c *viperConfig) GetAll() map[string]interface{} {
	return c.v.AllSettings()
}

const configDir = "configs"

// Load reads the configuration file for the given service name.
// The lookup path is CONFIG_PATH if set, otherwise configs/ relative to the
// working directory. Environment variables prefixed with the upper-cased
// service name override file values.
func Load(serviceName string) (Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = configDir
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		// fall back to the example config shipped with the repo
		v.AddConfigPath(filepath.Join(configDir, "example"))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	return &viperConfig{v: v}, nil
}
