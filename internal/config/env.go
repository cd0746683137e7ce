package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel  = "VELVETSTAT_LOG_LEVEL"
	EnvLogFormat = "VELVETSTAT_LOG_FORMAT"
)

// LoadEnv loads variables from envFile (if it exists) without overriding the
// process environment, then applies VELVETSTAT_* settings to c.
func LoadEnv(c *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Runtime.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Runtime.LogFormat = v
	}
	return nil
}
