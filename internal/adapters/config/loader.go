// Package config provides the configuration loader for press.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// SupportedVersion is the only press.yaml schema version.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers press.yaml from cwd upwards. The directory holding it becomes the
// project root; without one, cwd is the root and every setting has its default.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	configPath, found := findConfiguration(abs)
	if !found {
		return domain.DefaultConfig(abs), nil
	}

	var file Pressfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.resolve(filepath.Dir(configPath), &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) resolve(root string, file *Pressfile) (*domain.Config, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(domain.ErrUnsupportedConfigVersion, "version", file.Version)
	}

	if file.Version == "" {
		l.Logger.Warn(domain.ConfigFileName + " has no version, assuming " + SupportedVersion)
	}

	cfg := domain.DefaultConfig(root)

	if err := applyLayout(&cfg.Layout, file.Source, file.Output); err != nil {
		return nil, err
	}

	if s := file.Server; s != nil {
		if s.Host != "" {
			cfg.Server.Host = s.Host
		}
		if s.Port != nil {
			if *s.Port < 1 || *s.Port > 65535 {
				return nil, zerr.With(domain.ErrInvalidPort, "port", *s.Port)
			}
			cfg.Server.Port = *s.Port
		}
		if s.Open != nil {
			cfg.Server.Open = *s.Open
		}
	}

	if w := file.Watch; w != nil && w.Debounce != "" {
		d, err := time.ParseDuration(w.Debounce)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidDebounce.Error()), "debounce", w.Debounce)
		}
		if d < 0 {
			return nil, zerr.With(domain.ErrInvalidDebounce, "debounce", w.Debounce)
		}
		cfg.Watch.Debounce = d
	}

	if t := file.Tools; t != nil {
		cfg.Tools.Sass = override(cfg.Tools.Sass, t.Sass)
		cfg.Tools.OptiPNG = override(cfg.Tools.OptiPNG, t.OptiPNG)
		cfg.Tools.CJPEG = override(cfg.Tools.CJPEG, t.CJPEG)
		cfg.Tools.CWebP = override(cfg.Tools.CWebP, t.CWebP)
	}

	return cfg, nil
}

// applyLayout validates and installs the source and output directories.
// Both must stay inside the root and must not contain one another.
func applyLayout(layout *domain.Layout, source, output string) error {
	var err error
	if source != "" {
		if layout.Source, err = cleanDir("source", source); err != nil {
			return err
		}
	}
	if output != "" {
		if layout.Output, err = cleanDir("output", output); err != nil {
			return err
		}
	}

	if layout.Source == layout.Output ||
		strings.HasPrefix(layout.Output+"/", layout.Source+"/") ||
		strings.HasPrefix(layout.Source+"/", layout.Output+"/") {
		err := zerr.With(domain.ErrInvalidLayout, "source", layout.Source)
		return zerr.With(err, "output", layout.Output)
	}
	return nil
}

func cleanDir(field, dir string) (string, error) {
	slashed := filepath.ToSlash(dir)
	clean := path.Clean(slashed)
	if path.IsAbs(clean) || filepath.IsAbs(dir) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", zerr.With(domain.ErrInvalidLayout, field, dir)
	}
	return clean, nil
}

func override(current, value string) string {
	if value == "" {
		return current
	}
	return value
}

// readAndUnmarshalYAML reads a YAML file and strictly decodes it into target.
// An empty file decodes to the zero value.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from discovery
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
