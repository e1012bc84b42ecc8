// Copyright (c) 2025 The Demeter developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// nodeConfig is the optional YAML node config file. Values set here
// replace flag defaults; flags given explicitly on the command line still
// win.
type nodeConfig struct {
	Network string `yaml:"network"`
	DataDir string `yaml:"dataDir"`
	Cache   int    `yaml:"cache"`

	API struct {
		Addr        string `yaml:"addr"`
		Cors        string `yaml:"cors"`
		EventsLimit uint64 `yaml:"eventsLimit"`
		EnableLogs  bool   `yaml:"enableLogs"`
	} `yaml:"api"`

	EnableMetrics bool `yaml:"enableMetrics"`
	DisableEvents bool `yaml:"disableEvents"`
	Verbosity     *int `yaml:"verbosity"`
}

// applyConfigFile folds the config file named by --config-file into the
// cli context. A flag set on the command line keeps its value.
func applyConfigFile(ctx *cli.Context) error {
	path := ctx.String(configFileFlag.Name)
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var cfg nodeConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	setUnlessGiven := func(name, value string) error {
		if value == "" || ctx.IsSet(name) {
			return nil
		}
		return ctx.Set(name, value)
	}
	if err := setUnlessGiven(networkFlag.Name, cfg.Network); err != nil {
		return err
	}
	if err := setUnlessGiven(dataDirFlag.Name, cfg.DataDir); err != nil {
		return err
	}
	if cfg.Cache != 0 && !ctx.IsSet(cacheFlag.Name) {
		if err := ctx.Set(cacheFlag.Name, fmt.Sprint(cfg.Cache)); err != nil {
			return err
		}
	}
	if err := setUnlessGiven(apiAddrFlag.Name, cfg.API.Addr); err != nil {
		return err
	}
	if err := setUnlessGiven(apiCorsFlag.Name, cfg.API.Cors); err != nil {
		return err
	}
	if cfg.API.EventsLimit != 0 && !ctx.IsSet(apiEventsLimitFlag.Name) {
		if err := ctx.Set(apiEventsLimitFlag.Name, fmt.Sprint(cfg.API.EventsLimit)); err != nil {
			return err
		}
	}
	if cfg.API.EnableLogs && !ctx.IsSet(enableAPILogsFlag.Name) {
		if err := ctx.Set(enableAPILogsFlag.Name, "true"); err != nil {
			return err
		}
	}
	if cfg.EnableMetrics && !ctx.IsSet(enableMetricsFlag.Name) {
		if err := ctx.Set(enableMetricsFlag.Name, "true"); err != nil {
			return err
		}
	}
	if cfg.DisableEvents && !ctx.IsSet(disableEventsFlag.Name) {
		if err := ctx.Set(disableEventsFlag.Name, "true"); err != nil {
			return err
		}
	}
	if cfg.Verbosity != nil && !ctx.IsSet(verbosityFlag.Name) {
		if err := ctx.Set(verbosityFlag.Name, fmt.Sprint(*cfg.Verbosity)); err != nil {
			return err
		}
	}
	return nil
}
