package config

import (
	"fmt"
	"strings"
	"time"
)

// DBConfig points at the sqlite file holding jobs, companies and seniority levels.
type DBConfig struct {
	ConnectionString string        `mapstructure:"connection_string"`
	BusyTimeout      time.Duration `mapstructure:"busy_timeout"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout must not be negative")
	}
	return nil
}

// DSN returns the connection string with the busy timeout pragma appended, unless the
// connection string already sets one.
func (config DBConfig) DSN() string {
	if config.BusyTimeout <= 0 || strings.Contains(config.ConnectionString, "busy_timeout") {
		return config.ConnectionString
	}
	separator := "?"
	if strings.Contains(config.ConnectionString, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", config.ConnectionString, separator, config.BusyTimeout.Milliseconds())
}

func (config DBConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.busy_timeout":      "DB_BUSY_TIMEOUT",
	})
}
