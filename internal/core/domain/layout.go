package domain

import (
	"path"
	"path/filepath"
)

const (
	// StateDirName is the name of the internal state directory.
	StateDirName = ".press"

	// StoreDirName is the name of the image record store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "press.yaml"

	// DefaultSourceDir is the source root used when no config overrides it.
	DefaultSourceDir = "src"

	// DefaultOutputDir is the build root used when no config overrides it.
	DefaultOutputDir = "build"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout describes where a project's sources, outputs and state live.
// Source and Output are slash-separated and relative to Root.
type Layout struct {
	Root   string
	Source string
	Output string
}

// NewLayout returns a Layout rooted at root with the default directories.
func NewLayout(root string) Layout {
	return Layout{
		Root:   root,
		Source: DefaultSourceDir,
		Output: DefaultOutputDir,
	}
}

// SourceDir returns the absolute source directory.
func (l Layout) SourceDir() string {
	return filepath.Join(l.Root, filepath.FromSlash(l.Source))
}

// OutputDir returns the absolute build directory.
func (l Layout) OutputDir() string {
	return filepath.Join(l.Root, filepath.FromSlash(l.Output))
}

// StateDir returns the absolute .press directory.
func (l Layout) StateDir() string {
	return filepath.Join(l.Root, StateDirName)
}

// StorePath returns the absolute directory holding image records.
func (l Layout) StorePath() string {
	return filepath.Join(l.Root, StateDirName, StoreDirName)
}

// InSource joins a slash-separated pattern onto the source directory, relative to Root.
func (l Layout) InSource(pattern string) string {
	return path.Join(l.Source, pattern)
}

// InOutput joins a slash-separated pattern onto the build directory, relative to Root.
func (l Layout) InOutput(pattern string) string {
	return path.Join(l.Output, pattern)
}

// Abs converts a Root-relative slash path to an absolute OS path.
func (l Layout) Abs(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}
