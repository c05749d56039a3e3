package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the subset of VM construction knobs worth overriding from
// a file rather than flags: arena/stack sizing and the default base. CLI
// flags always win over a loaded config.
type Config struct {
	ArenaCells  uint `toml:"arena_cells"`
	DataDepth   int  `toml:"data_stack_depth"`
	ReturnDepth int  `toml:"return_stack_depth"`
	UserDepth   int  `toml:"user_stack_depth"`
	Base        int  `toml:"base"`
}

// LoadConfig reads a TOML config file at path. Missing fields keep their
// Go zero value; ToOptions skips zero-valued fields so it can be merged
// with the package defaults freely.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ToOptions converts a loaded Config into VM Options, omitting any field
// left at its zero value so the VM's own defaults apply instead.
func (cfg Config) ToOptions() []Option {
	var opts []Option
	if cfg.ArenaCells > 0 {
		opts = append(opts, WithArenaSize(cfg.ArenaCells))
	}
	if cfg.DataDepth > 0 || cfg.ReturnDepth > 0 || cfg.UserDepth > 0 {
		data, ret, user := cfg.DataDepth, cfg.ReturnDepth, cfg.UserDepth
		if data == 0 {
			data = 64
		}
		if ret == 0 {
			ret = 64
		}
		if user == 0 {
			user = 64
		}
		opts = append(opts, WithStackDepths(data, ret, user))
	}
	if cfg.Base > 0 {
		opts = append(opts, WithBase(cfg.Base))
	}
	return opts
}
