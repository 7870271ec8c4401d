package domain

import "time"

// OutputFile is one file produced by a bundler, addressed by absolute path.
type OutputFile struct {
	Path     string
	Contents []byte
}

// Stylesheet is the result of compiling a Sass entry point.
type Stylesheet struct {
	CSS       string
	SourceMap string
}

// SassInput describes one Sass compilation.
type SassInput struct {
	// Entry is the absolute path of the entry stylesheet.
	Entry string
	// Binary is the Dart Sass executable.
	Binary string
	// IncludePaths are extra load paths for @use and @import.
	IncludePaths []string
}

// StyleBundle describes post-processing of compiled CSS.
type StyleBundle struct {
	Root       string
	Stylesheet Stylesheet
	// ResolveDir is the directory relative CSS imports resolve against.
	ResolveDir string
	// Outfile is the absolute path of the CSS file to produce.
	Outfile string
}

// ScriptBundle describes the transpilation of one JavaScript entry point.
type ScriptBundle struct {
	Root   string
	Entry  string
	Outdir string
}

// Command is one invocation of an external tool.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// ImageRecord remembers the content hash of an optimized image.
type ImageRecord struct {
	// Path is the image path relative to the project root.
	Path string `json:"path"`
	// Hash is the xxhash of the file after optimization.
	Hash uint64 `json:"hash"`
	// Timestamp is when the image was last optimized.
	Timestamp time.Time `json:"timestamp"`
}
