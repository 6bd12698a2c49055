// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the intcode command configuration from an intcode.toml
// file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// FileName is the name of configuration files.
const FileName = "intcode.toml"

// Config holds the command configuration.
type Config struct {
	VM      VM      `toml:"vm"`
	Network Network `toml:"network"`
	Log     Log     `toml:"log"`
	Term    Term    `toml:"term"`

	// Path of the file the configuration was loaded from. Empty for defaults.
	Path string `toml:"-"`
}

// VM settings.
type VM struct {
	MemLimit int `toml:"mem-limit"`
}

// Network settings.
type Network struct {
	Timeout      Duration `toml:"timeout"`
	LinkCapacity int      `toml:"link-capacity"`
	Feedback     bool     `toml:"feedback"`
}

// Log settings.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Term settings.
type Term struct {
	Raw bool `toml:"raw"`
}

// Duration is a time.Duration read from a string like "1.5s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		VM: VM{MemLimit: vm.DefaultMemLimit},
		Network: Network{
			Timeout:      Duration(network.DefaultTimeout),
			LinkCapacity: network.DefaultLinkCapacity,
		},
	}
}

// Load reads the configuration file at path. Missing keys keep their default
// value and unknown keys are an error.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err = c.validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	c.Path = path
	return c, nil
}

// FindAndLoad looks for an intcode.toml file in startDir and its parents and
// loads the first one found. If there is none, it returns the default
// configuration.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, errors.Wrap(err, "FindAndLoad")
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	if c.VM.MemLimit <= 0 {
		return errors.Errorf("vm.mem-limit: invalid value %d", c.VM.MemLimit)
	}
	if c.Network.Timeout <= 0 {
		return errors.Errorf("network.timeout: invalid value %v", time.Duration(c.Network.Timeout))
	}
	if c.Network.LinkCapacity < 2 {
		return errors.Errorf("network.link-capacity: invalid value %d", c.Network.LinkCapacity)
	}
	return nil
}

// NetworkOptions returns the network options matching the configuration.
func (c *Config) NetworkOptions() []network.Option {
	return []network.Option{
		network.Feedback(c.Network.Feedback),
		network.Timeout(time.Duration(c.Network.Timeout)),
		network.LinkCapacity(c.Network.LinkCapacity),
		network.VMOptions(c.VMOptions()...),
	}
}

// VMOptions returns the VM options matching the configuration.
func (c *Config) VMOptions() []vm.Option {
	return []vm.Option{vm.MemLimit(c.VM.MemLimit)}
}
