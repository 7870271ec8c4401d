package ports

import (
	"context"

	"go.trai.ch/press/internal/core/domain"
)

//go:generate mockgen -source=transform.go -destination=mocks/mock_transform.go -package=mocks

// Includer expands <include src="..."> elements in HTML documents.
type Includer interface {
	// Include returns doc with every include replaced by the referenced file,
	// resolved relative to root.
	Include(doc []byte, root string) ([]byte, error)
}

// Minifier minifies content of a given media type.
type Minifier interface {
	Minify(mediatype string, content []byte) ([]byte, error)
}

// SassCompiler compiles SCSS to CSS.
type SassCompiler interface {
	Compile(ctx context.Context, input domain.SassInput) (domain.Stylesheet, error)
}

// Bundler post-processes stylesheets and transpiles scripts.
type Bundler interface {
	// BundleStyles autoprefixes, inlines @import and minifies compiled CSS.
	BundleStyles(req domain.StyleBundle) ([]domain.OutputFile, error)
	// BundleScript transpiles and minifies a script entry point with its imports.
	BundleScript(req domain.ScriptBundle) ([]domain.OutputFile, error)
}

// SpriteBuilder merges SVG files into one symbol sprite.
type SpriteBuilder interface {
	// Build returns the sprite document for the given absolute SVG paths.
	Build(paths []string) ([]byte, error)
}
