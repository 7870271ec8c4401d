// Package fs provides file system adapters for resolving globs and hashing files.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements ports.InputResolver by walking each pattern's static base.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs returns root-relative slash paths of files matching any pattern.
// Patterns that match nothing contribute nothing.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, raw := range patterns {
		pattern, err := CompilePattern(raw)
		if err != nil {
			return nil, err
		}

		base := filepath.Join(root, filepath.FromSlash(pattern.Base()))
		if _, err := os.Stat(base); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInputResolutionFailed.Error()), "path", base)
		}

		for file, err := range r.walker.WalkFiles(base) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrInputResolutionFailed.Error()), "pattern", raw)
			}
			rel, err := filepath.Rel(root, file)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrInputResolutionFailed.Error()), "path", file)
			}
			rel = filepath.ToSlash(rel)
			if pattern.Match(rel) {
				unique[rel] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(unique))
	for p := range unique {
		result = append(result, p)
	}
	slices.Sort(result)

	return result, nil
}
