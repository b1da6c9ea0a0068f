// Package config reads the YAML configuration shared by all binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix marks a value that is read from the named environment variable,
// e.g. `password: $env:PLANIFY_DB_PASSWORD`.
const EnvPrefix = "$env:"

// DotEnvFile is loaded before the config when it exists.
var DotEnvFile = ".env"

// Load reads configFile over defaults and decodes it into out.
func Load(configFile string, defaults map[string]interface{}, out interface{}) error {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err := v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	for _, key := range v.AllKeys() {
		env := v.GetString(key)
		if strings.HasPrefix(env, EnvPrefix) {
			if err := v.BindEnv(key, env[len(EnvPrefix):]); err != nil {
				return fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = v.Unmarshal(out)
	if err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
