package config

import (
	"fmt"
	"io"
	"os"

	"lotogen/domain/filter"
	"lotogen/domain/stats"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
//
//	[filter]
//	pares = [6, 9]
//	soma  = [170, 220]
//
//	[generator]
//	target = 20
type FileConfig struct {
	Filter    map[string][]int `toml:"filter"`
	Generator GeneratorSection `toml:"generator,omitempty"`
}

// GeneratorSection maps generation defaults; nil fields keep the built-in value.
type GeneratorSection struct {
	Target      *int   `toml:"target"`
	MaxAttempts *int   `toml:"max-attempts"`
	Workers     *int   `toml:"workers"`
	PoolSize    *int   `toml:"pool-size"`
	Deduplicate *bool  `toml:"deduplicate"`
	Seed        *int64 `toml:"seed"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// FilterConfig applies the [filter] overrides to the default bounds
func (f FileConfig) FilterConfig() (filter.Config, error) {
	overrides, err := filter.ParseOverrides(f.Filter)
	if err != nil {
		return filter.Config{}, err
	}
	return filter.NewConfig(filter.DefaultConfig(), overrides)
}

// FilterSection converts a filter into the keyed pairs of a [filter] table
func FilterSection(cfg filter.Config) map[string][]int {
	out := make(map[string][]int, len(stats.Fields))
	for _, f := range stats.Fields {
		r := cfg.Range(f)
		out[f.String()] = []int{r.Min, r.Max}
	}
	return out
}

// Encode writes the config as TOML. Nil generator values are omitted.
func (f FileConfig) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(f)
}
