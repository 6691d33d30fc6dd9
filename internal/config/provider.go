// Package config supplies the connection settings the repository layer needs.
// The repository treats the connection string as opaque; resolving it from
// the environment or a config file happens here.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Provider hands out a ready-to-use connection string for the configured
// engine. Implementations decide where it comes from.
type Provider interface {
	ConnectionString() (string, error)
}

// Static is a fixed connection string, mostly useful for tests and one-off
// tooling.
type Static string

func (s Static) ConnectionString() (string, error) {
	return string(s), nil
}

// Settings is the viper-backed provider. It reads APIGEN_-prefixed
// environment variables and, when a path is given, a YAML config file with
// the keys "engine" and "connection_string".
type Settings struct {
	v *viper.Viper
}

// Load builds Settings from the environment plus an optional config file.
// Pass an empty path to use environment variables only.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("APIGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("engine", "")
	v.SetDefault("connection_string", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return &Settings{v: v}, nil
}

// Engine returns the configured engine name ("postgres", "mysql",
// "sqlserver" or "sqlite").
func (s *Settings) Engine() string {
	return s.v.GetString("engine")
}

// ConnectionString returns the configured connection string verbatim. An
// empty value is returned as-is; the repository turns that into a
// configuration error.
func (s *Settings) ConnectionString() (string, error) {
	return s.v.GetString("connection_string"), nil
}
