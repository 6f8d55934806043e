// Package config loads the interpreter's settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the user's home directory when no path is given
const FileName = ".bisaya.yaml"

// Config holds settings shared by the file runner and the interactive mode
type Config struct {
	LogLevel string `yaml:"log_level"`
	Color    bool   `yaml:"color"`
	Prompt   string `yaml:"prompt"`
	History  string `yaml:"history"`
}

// Default returns the settings used when no file is present
func Default() *Config {
	return &Config{
		LogLevel: "warning",
		Color:    true,
		Prompt:   "bisaya> ",
		History:  ".bisaya_history",
	}
}

// DefaultPath returns the settings file in the home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Level parses LogLevel
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// HistoryPath resolves History against the home directory when it is relative
func (c *Config) HistoryPath() string {
	if c.History == "" || filepath.IsAbs(c.History) {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.History
	}
	return filepath.Join(home, c.History)
}
