// Package config loads snapshot codec settings from a YAML file
// (~/.config/szx/config.yaml by default).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/szx/internal/version"
	"github.com/samcharles93/szx/pkg/logger"
	"github.com/samcharles93/szx/pkg/szx"
)

// Config is the on-disk configuration. Empty fields select the codec
// defaults.
type Config struct {
	Compression string `yaml:"compression"`
	Version     string `yaml:"version"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Creator CreatorConfig `yaml:"creator"`
}

// CreatorConfig overrides the identity written to the CRTR block. Major and
// Minor are pointers so an explicit 0 can be told apart from unset.
type CreatorConfig struct {
	Program string  `yaml:"program"`
	Major   *uint16 `yaml:"major"`
	Minor   *uint16 `yaml:"minor"`
	Custom  string  `yaml:"custom"`
}

// DefaultPath returns the per-user config file location, or "" when the
// platform has no user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "szx", "config.yaml")
}

// Load reads the config file at path. A missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes YAML config data. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Options builds codec options, logging to w.
func (c Config) Options(w io.Writer) (szx.Options, error) {
	mode, err := szx.ParseCompression(c.Compression)
	if err != nil {
		return szx.Options{}, fmt.Errorf("config: %w", err)
	}
	opts := szx.Options{
		Logger:      c.Logger(w),
		Compression: mode,
	}
	if c.Version != "" {
		v, err := szx.ParseVersion(c.Version)
		if err != nil {
			return szx.Options{}, fmt.Errorf("config: %w", err)
		}
		opts.Version = v
	}
	return opts, nil
}

// CreatorInfo returns the creator identity to stamp on written snapshots,
// falling back to this build's name and version.
func (c Config) CreatorInfo() *szx.Creator {
	major, minor := version.Numbers()
	cr := &szx.Creator{
		Program: version.Program,
		Major:   major,
		Minor:   minor,
		Custom:  []byte(version.Program + ": " + version.String()),
	}
	if c.Creator.Program != "" {
		cr.Program = c.Creator.Program
	}
	if c.Creator.Major != nil {
		cr.Major = *c.Creator.Major
	}
	if c.Creator.Minor != nil {
		cr.Minor = *c.Creator.Minor
	}
	if c.Creator.Custom != "" {
		cr.Custom = []byte(c.Creator.Custom)
	}
	return cr
}

// Logger builds the configured logger writing to w. Without a log level
// nothing is logged.
func (c Config) Logger(w io.Writer) logger.Logger {
	if c.LogLevel == "" || w == nil {
		return logger.Discard()
	}
	level := logger.ParseLevel(c.LogLevel)
	switch strings.ToLower(c.LogFormat) {
	case "json":
		return logger.JSON(w, level)
	case "text":
		return logger.Text(w, level)
	default:
		return logger.Pretty(w, level)
	}
}
