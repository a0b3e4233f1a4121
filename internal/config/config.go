package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/speakeasy-api/textmerge/internal/env"
	"github.com/spf13/viper"
)

var (
	vCfg   = viper.New()
	cfgDir string
)

const (
	DifferKey      = "differ"
	FormatKey      = "format"
	ConcurrencyKey = "concurrency"
	MarkersKey     = "markers"

	envPrefix = "TEXTMERGE"
)

func init() {
	setDefaults(vCfg)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(DifferKey, "lcs")
	v.SetDefault(FormatKey, "text")
	v.SetDefault(ConcurrencyKey, 0)
	v.SetDefault(MarkersKey, true)
}

// Load reads ~/.textmerge/config.yaml, if present, and binds TEXTMERGE_* environment variables.
func Load() error {
	dir := env.ConfigDir()
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".textmerge")
	}

	return load(vCfg, dir)
}

func load(v *viper.Viper, dir string) error {
	cfgDir = dir

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config from %s: %w", dir, err)
		}
	}

	return nil
}

func GetDiffer() string {
	return vCfg.GetString(DifferKey)
}

func GetFormat() string {
	return vCfg.GetString(FormatKey)
}

// GetConcurrency returns the configured number of files merged in parallel. Zero means GOMAXPROCS.
func GetConcurrency() int {
	return vCfg.GetInt(ConcurrencyKey)
}

// GetMarkers reports whether conflicted merges are written with conflict markers
// rather than the remote-wins fallback.
func GetMarkers() bool {
	return vCfg.GetBool(MarkersKey)
}

func Set(key string, value any) error {
	vCfg.Set(key, value)
	return save()
}

func save() error {
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return err
	}

	if err := vCfg.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}

		if err := vCfg.SafeWriteConfig(); err != nil {
			return err
		}
	}

	return nil
}
