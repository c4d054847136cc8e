/*
 * This file is part of the SayDos Disk Image Tool ("sdit")
 * Copyright (C) 2025 Andreas Signer <asigner@gmail.com>
 *
 * sdit is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * sdit is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with sdit.  If not, see <https://www.gnu.org/licenses/>.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel = "info"
	DefaultFSName   = "saydos"
)

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

type MountConfig struct {
	FSName string `yaml:"fsName"`
}

type Config struct {
	LogLevel string      `yaml:"logLevel"`
	NoColor  bool        `yaml:"noColor"`
	Logs     LogConfig   `yaml:"logs"`
	Mount    MountConfig `yaml:"mount"`
}

func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Logs.MaxSizeMB <= 0 {
		c.Logs.MaxSizeMB = 10
	}
	if c.Logs.MaxAgeDays < 0 {
		c.Logs.MaxAgeDays = 0
	}
	if c.Logs.MaxBackups < 0 {
		c.Logs.MaxBackups = 0
	}
	if strings.TrimSpace(c.Mount.FSName) == "" {
		c.Mount.FSName = DefaultFSName
	}
}

// DefaultPath is the config file used when none is given explicitly. It is
// empty when the user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sdit", "config.yaml")
}

// Load reads the config file at path. An empty path yields the defaults;
// a missing file is only an error when required is set.
func Load(fs afero.Fs, path string, required bool) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("Load: can't parse %s: %w", path, err)
	}
	if p := strings.TrimSpace(cfg.Logs.File); p != "" && !filepath.IsAbs(p) {
		cfg.Logs.File = filepath.Join(filepath.Dir(path), p)
	}
	cfg.applyDefaults()
	return cfg, nil
}
