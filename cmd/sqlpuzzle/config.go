package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/dropbox/sqlpuzzle/database/sqlpuzzle"
	"github.com/dropbox/sqlpuzzle/errors"
)

const (
	statementSelect    = "select"
	statementFragments = "fragments"
)

// Config holds the rendering settings.
type Config struct {
	// mysql, postgres or sqlite.
	Dialect string `mapstructure:"dialect"`
	// select or fragments.
	Statement string `mapstructure:"statement"`
}

// LoadConfig loads configuration with precedence env > config file >
// defaults.  The config file is optional; an explicit path must exist.
// Values are not validated here since flags may still override them.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dialect", "mysql")
	v.SetDefault("statement", statementSelect)

	v.SetEnvPrefix("SQLPUZZLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Newf("config file not found: %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return cfg, nil
}

// ResolveConfig loads the config and applies flag values on top of it,
// then validates the result.
func ResolveConfig(path, dialectFlag, statementFlag string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.Dialect = resolveString(dialectFlag, cfg.Dialect)
	cfg.Statement = resolveString(statementFlag, cfg.Statement)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := sqlpuzzle.DatabaseByName(c.Dialect); err != nil {
		return err
	}
	switch c.Statement {
	case statementSelect, statementFragments:
		return nil
	}
	return errors.Newf(
		"unknown statement %q (expected %s or %s)",
		c.Statement,
		statementSelect,
		statementFragments)
}

// Returns the renderer for the configured dialect.
func (c *Config) Renderer() (sqlpuzzle.Renderer, error) {
	db, err := sqlpuzzle.DatabaseByName(c.Dialect)
	if err != nil {
		return nil, err
	}
	return sqlpuzzle.NewRenderer(db), nil
}

// resolveString returns the first non-empty value.  Used for
// flag > config > default precedence.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
