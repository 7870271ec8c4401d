// Package pipeline defines the transform tasks and the build graph.
package pipeline

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

// Media types passed to the minifier.
const (
	mediaHTML = "text/html"
	mediaSVG  = "image/svg+xml"
)

// Deps are the adapters the transform tasks delegate to.
type Deps struct {
	Resolver ports.InputResolver
	Hasher   ports.Hasher
	Store    ports.ImageStore
	Executor ports.Executor
	Includer ports.Includer
	Minifier ports.Minifier
	Sass     ports.SassCompiler
	Bundler  ports.Bundler
	Sprites  ports.SpriteBuilder
	Reloader ports.Reloader
	Logger   ports.Logger
}

// Pipeline runs the transform tasks for one project.
type Pipeline struct {
	Deps

	layout domain.Layout
	tools  domain.Tools
}

// New returns a Pipeline for cfg. A nil Reloader discards notifications.
func New(cfg *domain.Config, deps Deps) *Pipeline {
	if deps.Reloader == nil {
		deps.Reloader = discard{}
	}
	return &Pipeline{Deps: deps, layout: cfg.Layout, tools: cfg.Tools}
}

type discard struct{}

func (discard) Notify(...string) {}

// resolve returns the root-relative files matching patterns.
func (p *Pipeline) resolve(patterns ...string) ([]string, error) {
	return p.Resolver.ResolveInputs(patterns, p.layout.Root)
}

// toOutput maps a root-relative source path to its root-relative build path.
func (p *Pipeline) toOutput(rel string) string {
	return p.layout.InOutput(strings.TrimPrefix(rel, p.layout.Source+"/"))
}

// served returns a root-relative build path as the dev server sees it.
func (p *Pipeline) served(rel string) string {
	return strings.TrimPrefix(rel, p.layout.Output+"/")
}

func (p *Pipeline) read(rel string) ([]byte, error) {
	// #nosec G304 -- rel comes from resolving fixed patterns under the project root
	data, err := os.ReadFile(p.layout.Abs(rel))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", rel)
	}
	return data, nil
}

// write stores data at the absolute path, creating parent directories.
func write(abs string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(abs), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", abs)
	}
	if err := os.WriteFile(abs, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", abs)
	}
	return nil
}

// writeOutputs writes bundler results and returns the served paths of the
// non source-map files.
func (p *Pipeline) writeOutputs(files []domain.OutputFile) ([]string, error) {
	var written []string
	for _, f := range files {
		if err := write(f.Path, f.Contents); err != nil {
			return nil, err
		}
		if path.Ext(f.Path) == ".map" {
			continue
		}
		rel, err := filepath.Rel(p.layout.Root, f.Path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", f.Path)
		}
		written = append(written, p.served(filepath.ToSlash(rel)))
	}
	return written, nil
}

// forEach runs fn for every file, stopping at the first error or cancellation.
func forEach(ctx context.Context, files []string, fn func(rel string) error) error {
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(rel); err != nil {
			return err
		}
	}
	return nil
}
