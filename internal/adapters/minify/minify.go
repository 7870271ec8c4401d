// Package minify minifies HTML, SVG, CSS and JavaScript with tdewolff/minify.
package minify

import (
	"bytes"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Minifier = (*Minifier)(nil)

// Media types understood by Minify.
const (
	MediaHTML = "text/html"
	MediaSVG  = "image/svg+xml"
	MediaCSS  = "text/css"
	MediaJS   = "application/javascript"
)

// Minifier implements ports.Minifier.
// HTML is minified conservatively: whitespace collapses and comments go, but
// document structure, end tags and quotes stay so includes and inline SVG survive.
type Minifier struct {
	m *minify.M
}

// New returns a Minifier with HTML, SVG, CSS and JS registered.
func New() *Minifier {
	m := minify.New()
	m.Add(MediaHTML, &html.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	m.AddFunc(MediaSVG, svg.Minify)
	m.AddFunc(MediaCSS, css.Minify)
	m.AddFunc(MediaJS, js.Minify)
	return &Minifier{m: m}
}

// Minify returns content minified according to mediatype.
func (mn *Minifier) Minify(mediatype string, content []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(content))
	if err := mn.m.Minify(mediatype, &out, bytes.NewReader(content)); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMinifyFailed.Error()), "mediatype", mediatype)
	}
	return out.Bytes(), nil
}
