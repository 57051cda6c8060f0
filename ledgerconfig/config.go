// Package ledgerconfig is the ambient runtime configuration layer: it
// loads a TOML file naming the protocol-parameter file to use plus the
// logging and network settings the CLI needs, wrapping params.ProtocolParams
// rather than duplicating its fields.
package ledgerconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"ledgerengine/params"
)

// Config is the top-level runtime configuration for cmd/ledgerctl.
type Config struct {
	Network        string               `toml:"network"`
	LogComponent   string               `toml:"log_component"`
	ParamsFile     string               `toml:"params_file"`
	GenesisFile    string               `toml:"genesis_file"`
	ProtocolParams params.ProtocolParams `toml:"-"`
}

// Default returns the configuration used when no file is given: the
// in-module default protocol parameters, a bare "ledgerctl" log
// component, and no genesis/params file (the caller must supply one
// explicitly).
func Default() Config {
	return Config{
		Network:        "local",
		LogComponent:   "ledgerctl",
		ProtocolParams: params.Default(),
	}
}

// Load reads a TOML runtime configuration file and, if it names a
// ParamsFile, loads the protocol parameters from there too.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("ledgerconfig: decode %s: %w", path, err)
	}
	if cfg.ParamsFile != "" {
		pp, err := params.LoadFile(cfg.ParamsFile)
		if err != nil {
			return Config{}, fmt.Errorf("ledgerconfig: %w", err)
		}
		cfg.ProtocolParams = pp
	}
	return cfg, nil
}
