package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	EnvURL         = "DIRECTUS_URL"
	EnvToken       = "DIRECTUS_TOKEN"
	EnvOutput      = "TYPEGEN_OUTPUT"
	EnvSource      = "TYPEGEN_SOURCE"
	EnvDatabaseURL = "TYPEGEN_DATABASE_URL"
	EnvTimeout     = "TYPEGEN_TIMEOUT"
)

func applyEnv(c *Config, lookupEnv func(string) (string, bool)) error {
	getenv := func(k string, fallback string) string {
		if v, ok := lookupEnv(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	c.URL = getenv(EnvURL, c.URL)
	c.Token = getenv(EnvToken, c.Token)
	c.Output = getenv(EnvOutput, c.Output)
	c.Source = getenv(EnvSource, c.Source)
	c.DatabaseURL = getenv(EnvDatabaseURL, c.DatabaseURL)

	if v := getenv(EnvTimeout, ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf(`invalid %s "%s": %w`, EnvTimeout, v, err)
		}
		c.Timeout = d
	}

	return nil
}
