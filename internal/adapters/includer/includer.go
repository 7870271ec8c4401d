// Package includer expands <include src="..."> elements in HTML documents.
package includer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
)

var _ ports.Includer = (*Includer)(nil)

// MaxDepth bounds nested includes; a cycle fails once it is exceeded.
const MaxDepth = 16

const tagInclude = "include"

// Includer implements ports.Includer with the x/net/html tokenizer.
// Everything outside include elements is copied byte for byte.
type Includer struct{}

// New returns an Includer.
func New() *Includer {
	return &Includer{}
}

// Include replaces every include element in doc with the referenced file.
// Sources are relative to root and included files are expanded recursively.
func (i *Includer) Include(doc []byte, root string) ([]byte, error) {
	return expand(doc, root, 0)
}

func expand(doc []byte, root string, depth int) ([]byte, error) {
	if depth > MaxDepth {
		return nil, zerr.With(domain.ErrIncludeTooDeep, "max_depth", MaxDepth)
	}

	var out bytes.Buffer
	out.Grow(len(doc))

	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return out.Bytes(), nil
			}
			return nil, zerr.Wrap(z.Err(), domain.ErrIncludeFailed.Error())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != tagInclude {
				out.Write(z.Raw())
				continue
			}

			src := ""
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "src" {
					src = string(val)
				}
			}

			included, err := load(src, root, depth)
			if err != nil {
				return nil, err
			}
			out.Write(included)

			if tt == html.StartTagToken {
				skipToEnd(z)
			}

		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tagInclude {
				continue
			}
			out.Write(z.Raw())

		default:
			out.Write(z.Raw())
		}
	}
}

// skipToEnd discards the body of an include element.
func skipToEnd(z *html.Tokenizer) {
	nested := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == tagInclude {
				nested++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tagInclude {
				if nested == 0 {
					return
				}
				nested--
			}
		}
	}
}

func load(src, root string, depth int) ([]byte, error) {
	if strings.TrimSpace(src) == "" {
		return nil, domain.ErrIncludeMissingSrc
	}

	path := filepath.Join(root, filepath.FromSlash(src))
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, zerr.With(domain.ErrIncludeOutsideRoot, "src", src)
	}

	// #nosec G304 -- path is confined to root above
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIncludeFailed.Error()), "src", src)
	}

	expanded, err := expand(content, root, depth+1)
	if err != nil {
		return nil, zerr.With(err, "src", src)
	}
	return expanded, nil
}
