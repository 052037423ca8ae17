// Package config loads the portal-compatible key-value configuration via Viper.
//
// The on-disk format is the flat config.json the original tooling consumed:
// DIR selects the output directory and CSV/JSON/SQLITE3/PICKLE toggle the
// export formats. A missing file is not an error; a malformed one is.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/gcouto/sarwrangler/internal/export"
)

// DefaultPath is consulted when no --config flag is given.
const DefaultPath = "config.json"

// Config captures everything the run needs from the operator.
type Config struct {
	OutputDir string
	Formats   export.Formats
}

// Defaults returns the configuration used when no file is present:
// CSV only, written under __output__.
func Defaults() Config {
	return Config{
		OutputDir: "__output__",
		Formats:   export.Formats{CSV: true},
	}
}

// Load builds a Config from the file at path plus SARWRANGLER_* environment
// overrides. An absent file yields Defaults; an unreadable or malformed file
// is fatal so the operator never silently loses an intended setting.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SARWRANGLER")
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("DIR", defaults.OutputDir)
	v.SetDefault("CSV", defaults.Formats.CSV)
	v.SetDefault("JSON", defaults.Formats.JSON)
	v.SetDefault("SQLITE3", defaults.Formats.SQLite)
	v.SetDefault("PICKLE", defaults.Formats.Gob)

	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		// Missing file: defaults plus any environment overrides.
	}

	cfg := Config{
		OutputDir: v.GetString("DIR"),
		Formats: export.Formats{
			CSV:    v.GetBool("CSV"),
			JSON:   v.GetBool("JSON"),
			SQLite: v.GetBool("SQLITE3"),
			Gob:    v.GetBool("PICKLE"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the few hard requirements.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("DIR must not be empty")
	}
	return nil
}

func isNotFound(err error) bool {
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}
