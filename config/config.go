/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the egg driver. Command line flags override
// values read from the file.
type Config struct {
	HistoryFile string `yaml:"historyFile"`
	MaxSteps    int64  `yaml:"maxSteps"`  // 0 = unlimited
	MaxDepth    int    `yaml:"maxDepth"`  // 0 = unlimited
	MaxSource   string `yaml:"maxSource"` // largest program file, e.g. "16MB"
	LogLevel    string `yaml:"logLevel"`
	Trace       string `yaml:"trace,omitempty"` // chrome trace output file
	NoColor     bool   `yaml:"noColor"`
}

var (
	ErrConfigFileMissing        = errors.New("config file is missing")
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrMaxStepsInvalid          = errors.New("maxSteps must not be negative")
	ErrMaxDepthInvalid          = errors.New("maxDepth must not be negative")
	ErrMaxSourceInvalid         = errors.New("maxSource is not a valid size")
	ErrLogLevelInvalid          = errors.New("logLevel must be one of debug, info, warn, error, fatal")
)

func Default() *Config {
	return &Config{
		HistoryFile: ".egg-history.tmp",
		MaxDepth:    100000,
		MaxSource:   "16MB",
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigFileMissing
		}
		return nil, ErrConfigFileUnreadable
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ErrConfigFileUnmarshallable
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxSteps < 0 {
		return ErrMaxStepsInvalid
	}
	if c.MaxDepth < 0 {
		return ErrMaxDepthInvalid
	}
	if _, err := c.MaxSourceBytes(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// MaxSourceBytes parses MaxSource ("512KB", "16MB", ...); an empty value means unlimited (0).
func (c *Config) MaxSourceBytes() (int64, error) {
	if c.MaxSource == "" {
		return 0, nil
	}
	n, err := units.RAMInBytes(c.MaxSource)
	if err != nil || n < 0 {
		return 0, ErrMaxSourceInvalid
	}
	return n, nil
}

func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, ErrLogLevelInvalid
	}
	return level, nil
}
