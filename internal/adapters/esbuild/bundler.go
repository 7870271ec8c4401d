// Package esbuild post-processes stylesheets and transpiles scripts with esbuild.
package esbuild

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Engines are the browsers CSS is prefixed and lowered for.
var Engines = []api.Engine{
	{Name: api.EngineChrome, Version: "100"},
	{Name: api.EngineEdge, Version: "100"},
	{Name: api.EngineFirefox, Version: "100"},
	{Name: api.EngineSafari, Version: "14"},
	{Name: api.EngineIOS, Version: "14"},
}

// assetExternals keep url() references to copied assets untouched.
var assetExternals = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.svg", "*.webp", "*.avif", "*.ico",
	"*.woff", "*.woff2", "*.ttf", "*.otf", "*.eot",
}

// Bundler implements ports.Bundler.
type Bundler struct{}

// New returns a Bundler.
func New() *Bundler {
	return &Bundler{}
}

// BundleStyles autoprefixes, inlines @import and minifies compiled CSS.
// The Sass source map travels inline so the emitted map points at the .scss files.
func (b *Bundler) BundleStyles(req domain.StyleBundle) ([]domain.OutputFile, error) {
	contents := req.Stylesheet.CSS
	if req.Stylesheet.SourceMap != "" {
		contents += "\n/*# sourceMappingURL=data:application/json;base64," +
			base64.StdEncoding.EncodeToString([]byte(req.Stylesheet.SourceMap)) + " */\n"
	}

	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   contents,
			ResolveDir: req.ResolveDir,
			Sourcefile: strings.TrimSuffix(filepath.Base(req.Outfile), ".css") + ".scss",
			Loader:     api.LoaderCSS,
		},
		AbsWorkingDir:     req.Root,
		Outfile:           req.Outfile,
		Bundle:            true,
		Write:             false,
		Engines:           Engines,
		External:          assetExternals,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
		Sourcemap:         api.SourceMapLinked,
		LogLevel:          api.LogLevelSilent,
	})

	return collect(result, req.Outfile)
}

// BundleScript transpiles the entry point and its imports to ES2015 and minifies it.
func (b *Bundler) BundleScript(req domain.ScriptBundle) ([]domain.OutputFile, error) {
	result := api.Build(api.BuildOptions{
		EntryPoints:       []string{req.Entry},
		AbsWorkingDir:     req.Root,
		Outdir:            req.Outdir,
		Bundle:            true,
		Write:             false,
		Format:            api.FormatIIFE,
		Target:            api.ES2015,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
		Sourcemap:         api.SourceMapLinked,
		LogLevel:          api.LogLevelSilent,
	})

	return collect(result, req.Entry)
}

func collect(result api.BuildResult, subject string) ([]domain.OutputFile, error) {
	if len(result.Errors) > 0 {
		err := zerr.With(domain.ErrBundleFailed, "path", subject)
		for i, msg := range result.Errors {
			err = zerr.With(err, fmt.Sprintf("error_%d", i+1), formatMessage(msg))
		}
		return nil, err
	}

	files := make([]domain.OutputFile, 0, len(result.OutputFiles))
	for _, f := range result.OutputFiles {
		files = append(files, domain.OutputFile{Path: f.Path, Contents: f.Contents})
	}
	return files, nil
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}
