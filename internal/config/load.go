package config

import (
	"fmt"

	"github.com/dshills/docmodel/internal/config/loader"
)

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	env       bool
}

// WithFileSystem reads config files from fsys instead of the OS.
func WithFileSystem(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the prefix of the environment variables consulted.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithoutEnv ignores the environment.
func WithoutEnv() LoadOption {
	return func(o *loadOptions) {
		o.env = false
	}
}

// Load builds a Config from the built-in defaults, the file at path, and
// the environment, each overriding the one before. The format is chosen by
// the file extension. An empty path or a missing file leaves the defaults in
// place. The result is validated.
func Load(path string, opts ...LoadOption) (Config, error) {
	o := loadOptions{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		env:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := map[string]any{}
	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return Config{}, err
		}
		m, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	if o.env {
		m, err := loader.NewEnvLoader(o.envPrefix, stringPaths...).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, fmt.Errorf("decoding %s: %w", sourceName(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating %s: %w", sourceName(path), err)
	}
	return cfg, nil
}

// stringPaths are the settings whose environment values are never
// converted to numbers or booleans.
var stringPaths = []string{
	keyLogLevel,
	sectionParagraph + "." + keyColor,
	sectionSpan + "." + keyColor,
}

func sourceName(path string) string {
	if path == "" {
		return "configuration"
	}
	return path
}
