package fs

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
)

const globMeta = "*?[{"

// Pattern is a compiled slash-separated glob.
// "*" stays within one path segment, "**" crosses segments, and "{a,b}" picks alternatives.
type Pattern struct {
	source string
	base   string
	globs  []glob.Glob
}

// CompilePattern compiles a root-relative glob.
func CompilePattern(pattern string) (*Pattern, error) {
	clean := strings.TrimPrefix(path.Clean(pattern), "./")

	variants := expandGlobstar(clean)
	globs := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", pattern)
		}
		globs = append(globs, g)
	}

	return &Pattern{source: pattern, base: staticBase(clean), globs: globs}, nil
}

// MustCompilePattern is CompilePattern for patterns known at compile time.
func MustCompilePattern(pattern string) *Pattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the root-relative slash path matches.
func (p *Pattern) Match(rel string) bool {
	for _, g := range p.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Base is the longest leading directory without wildcards.
func (p *Pattern) Base() string {
	return p.base
}

func (p *Pattern) String() string {
	return p.source
}

// expandGlobstar lets "**" match zero directories: "a/**/b" must match "a/b".
// gobwas requires at least one segment for "**" between separators, so every
// globstar yields one variant with it and one without.
func expandGlobstar(pattern string) []string {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		var out []string
		for _, v := range expandGlobstar(rest) {
			out = append(out, v, "**/"+v)
		}
		return out
	}

	head, tail, ok := strings.Cut(pattern, "/**/")
	if !ok {
		return []string{pattern}
	}
	var out []string
	for _, v := range expandGlobstar(tail) {
		out = append(out, head+"/"+v, head+"/**/"+v)
	}
	return out
}

func staticBase(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for i, seg := range segments {
		if strings.ContainsAny(seg, globMeta) || i == len(segments)-1 {
			break
		}
		static = append(static, seg)
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}
