// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/lib/blockstream"
	"github.com/bureau-foundation/pstore/lib/config"
	"github.com/bureau-foundation/pstore/lib/logsink"
	"github.com/bureau-foundation/pstore/lib/portable"
)

// commonParams are the flags every storage command accepts. Flags win
// over the config file; an empty flag leaves the config value alone.
type commonParams struct {
	ConfigPath string `json:"config"      flag:"config"      desc:"path to pstore.yaml (default: $PSTORE_CONFIG when set)"`
	LogFile    string `json:"log_file"    flag:"log-file"    desc:"append JSON log records to this file"`
	LogLevel   string `json:"log_level"   flag:"log-level"   desc:"verbosity from -1 (errors only) to 4 (everything)"`
	LogConsole bool   `json:"log_console" flag:"log-console" desc:"echo file log records to stderr"`
}

// environment is the resolved configuration a command runs with.
type environment struct {
	config      *config.Config
	codec       portable.Options
	blocks      blockstream.Options
	compression string
}

// loadConfig reads --config, else $PSTORE_CONFIG, else the defaults,
// and layers the flag overrides on top.
func (p *commonParams) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}

	if p.LogFile != "" {
		cfg.Log.Path = p.LogFile
	}
	if p.LogLevel != "" {
		level, err := strconv.Atoi(p.LogLevel)
		if err != nil {
			return nil, cli.Validation("--log-level must be an integer, got %q", p.LogLevel)
		}
		cfg.Log.Level = level
	}
	if p.LogConsole {
		cfg.Log.Console = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

// load resolves the configuration and applies its logging section to
// the process log sink.
func (p *commonParams) load(logger *slog.Logger) (*environment, error) {
	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}

	logsink.SetLevel(cfg.Log.Level)
	if cfg.Log.Path != "" {
		if err := logsink.Configure(cfg.Log.Path, cfg.Log.Console); err != nil {
			return nil, cli.Internal("configuring log file: %w", err)
		}
	}

	txEncoding, err := blockstream.ParseTxEncoding(cfg.Blocks.TxEncoding)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	env := &environment{
		config: cfg,
		codec: portable.Options{
			MaxDepth:             cfg.Limits.MaxDepth,
			MaxZeroWidthElements: cfg.Limits.MaxZeroWidthElements,
		},
		compression: cfg.Input.Compression,
	}
	env.blocks = blockstream.Options{
		TxEncoding: txEncoding,
		TxField:    cfg.Blocks.TxField,
		Codec:      env.codec,
	}

	logger.Debug("configuration loaded",
		"environment", cfg.Environment,
		"log_path", cfg.Log.Path,
		"max_depth", cfg.Limits.MaxDepth,
	)
	return env, nil
}
