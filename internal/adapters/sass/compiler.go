// Package sass compiles SCSS through the Dart Sass embedded protocol.
package sass

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SassCompiler = (*Compiler)(nil)

// Compiler implements ports.SassCompiler.
// One Dart Sass process is started per binary on first use and reused afterwards.
type Compiler struct {
	logger ports.Logger

	mu          sync.Mutex
	transpilers map[string]*godartsass.Transpiler
}

// NewCompiler creates a Compiler that forwards Sass warnings to logger.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{
		logger:      logger,
		transpilers: make(map[string]*godartsass.Transpiler),
	}
}

// Compile compiles input.Entry to expanded CSS with a source map.
func (c *Compiler) Compile(ctx context.Context, input domain.SassInput) (domain.Stylesheet, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stylesheet{}, err
	}

	// #nosec G304 -- the entry point is fixed by the pipeline
	source, err := os.ReadFile(input.Entry)
	if err != nil {
		return domain.Stylesheet{}, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", input.Entry)
	}

	t, err := c.transpiler(input.Binary)
	if err != nil {
		return domain.Stylesheet{}, err
	}

	includePaths := slices.Concat([]string{filepath.Dir(input.Entry)}, input.IncludePaths)
	result, err := t.Execute(godartsass.Args{
		Source:                  string(source),
		URL:                     fileURL(input.Entry),
		SourceSyntax:            godartsass.SourceSyntaxSCSS,
		OutputStyle:             godartsass.OutputStyleExpanded,
		IncludePaths:            includePaths,
		EnableSourceMap:         true,
		SourceMapIncludeSources: true,
	})
	if err != nil {
		return domain.Stylesheet{}, zerr.With(zerr.Wrap(err, domain.ErrSassCompileFailed.Error()), "path", input.Entry)
	}

	return domain.Stylesheet{CSS: result.CSS, SourceMap: result.SourceMap}, nil
}

// transpiler returns the running transpiler for binary, starting it if needed.
func (c *Compiler) transpiler(binary string) (*godartsass.Transpiler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.transpilers[binary]; ok && !t.IsShutDown() {
		return t, nil
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: binary,
		LogEventHandler:          c.logEvent,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSassUnavailable.Error()), "binary", binary)
	}
	c.transpilers[binary] = t
	return t, nil
}

func (c *Compiler) logEvent(event godartsass.LogEvent) {
	switch event.Type {
	case godartsass.LogEventTypeDebug:
		c.logger.Info("sass: " + event.Message)
	default:
		c.logger.Warn("sass: " + event.Message)
	}
}

// Close shuts down every Dart Sass process.
func (c *Compiler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for binary, t := range c.transpilers {
		if !t.IsShutDown() {
			_ = t.Close()
		}
		delete(c.transpilers, binary)
	}
	return nil
}

func fileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
