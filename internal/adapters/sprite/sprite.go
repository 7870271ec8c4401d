// Package sprite merges SVG icons into a single inline symbol sprite.
package sprite

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SpriteBuilder = (*Builder)(nil)

const svgNamespace = "http://www.w3.org/2000/svg"

// symbolAttrs are the root attributes carried over to each symbol.
var symbolAttrs = []string{"viewBox", "preserveAspectRatio"}

// Builder implements ports.SpriteBuilder with etree.
type Builder struct{}

// New returns a Builder.
func New() *Builder {
	return &Builder{}
}

// Build returns an <svg> holding one <symbol> per input, identified by the file's
// base name. The result has no XML prolog so it can be inlined into HTML.
func (b *Builder) Build(paths []string) ([]byte, error) {
	out := etree.NewDocument()
	root := out.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)

	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if seen[id] {
			return nil, zerr.With(zerr.With(domain.ErrSpriteFailed, "reason", "duplicate symbol id"), "id", id)
		}
		seen[id] = true

		src := etree.NewDocument()
		if err := src.ReadFromFile(path); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSpriteFailed.Error()), "path", path)
		}
		svg := src.Root()
		if svg == nil || svg.Tag != "svg" {
			return nil, zerr.With(zerr.With(domain.ErrSpriteFailed, "reason", "no <svg> root"), "path", path)
		}

		copyNamespaces(root, svg)

		symbol := root.CreateElement("symbol")
		symbol.CreateAttr("id", id)
		for _, key := range symbolAttrs {
			if v := svg.SelectAttrValue(key, ""); v != "" {
				symbol.CreateAttr(key, v)
			}
		}
		for _, child := range svg.ChildElements() {
			symbol.AddChild(child.Copy())
		}
	}

	out.WriteSettings.CanonicalEndTags = true
	data, err := out.WriteToBytes()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSpriteFailed.Error())
	}
	return data, nil
}

// copyNamespaces declares on dst every xmlns:prefix found on src.
func copyNamespaces(dst, src *etree.Element) {
	for _, attr := range src.Attr {
		if attr.Space != "xmlns" {
			continue
		}
		if dst.SelectAttr("xmlns:"+attr.Key) == nil {
			dst.CreateAttr("xmlns:"+attr.Key, attr.Value)
		}
	}
}
