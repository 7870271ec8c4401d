package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
)

// HTML expands includes in every top-level page and minifies it.
func (p *Pipeline) HTML(ctx context.Context) error {
	pages, err := p.resolve(p.layout.InSource("*.html"))
	if err != nil {
		return err
	}

	return forEach(ctx, pages, func(rel string) error {
		doc, err := p.read(rel)
		if err != nil {
			return err
		}
		if doc, err = p.Includer.Include(doc, p.layout.Root); err != nil {
			return zerr.With(err, "path", rel)
		}
		if doc, err = p.Minifier.Minify(mediaHTML, doc); err != nil {
			return zerr.With(err, "path", rel)
		}

		out := p.toOutput(rel)
		if err := write(p.layout.Abs(out), doc); err != nil {
			return err
		}
		p.Reloader.Notify(p.served(out))
		return nil
	})
}

// Styles compiles the Sass entry point, then prefixes, bundles and minifies the CSS.
// Sass failures are logged and leave the previous output in place.
func (p *Pipeline) Styles(ctx context.Context) error {
	entries, err := p.resolve(p.layout.InSource("styles/index.scss"))
	if err != nil || len(entries) == 0 {
		return err
	}

	entry := p.layout.Abs(entries[0])
	sheet, err := p.Sass.Compile(ctx, domain.SassInput{Entry: entry, Binary: p.tools.Sass})
	if err != nil {
		p.Logger.Error(zerr.With(err, "task", TaskStyles))
		return nil
	}

	files, err := p.Bundler.BundleStyles(domain.StyleBundle{
		Root:       p.layout.Root,
		Stylesheet: sheet,
		ResolveDir: filepath.Dir(entry),
		Outfile:    p.layout.Abs(p.layout.InOutput("styles/index.css")),
	})
	if err != nil {
		return err
	}

	written, err := p.writeOutputs(files)
	if err != nil {
		return err
	}
	for _, rel := range written {
		p.Reloader.Notify(rel)
	}
	return nil
}

// Scripts transpiles and minifies the script entry point with its imports.
func (p *Pipeline) Scripts(_ context.Context) error {
	entries, err := p.resolve(p.layout.InSource("scripts/index.js"))
	if err != nil || len(entries) == 0 {
		return err
	}

	files, err := p.Bundler.BundleScript(domain.ScriptBundle{
		Root:   p.layout.Root,
		Entry:  p.layout.Abs(entries[0]),
		Outdir: p.layout.Abs(p.layout.InOutput("scripts")),
	})
	if err != nil {
		return err
	}

	written, err := p.writeOutputs(files)
	if err != nil {
		return err
	}
	for _, rel := range written {
		p.Reloader.Notify(rel)
	}
	return nil
}

// Copy mirrors fonts, images and icons into the build directory.
func (p *Pipeline) Copy(ctx context.Context) error {
	files, err := p.resolve(
		p.layout.InSource("fonts/**"),
		p.layout.InSource("images/**"),
		p.layout.InSource("*.ico"),
	)
	if err != nil || len(files) == 0 {
		return err
	}

	written := make([]string, 0, len(files))
	err = forEach(ctx, files, func(rel string) error {
		out := p.toOutput(rel)
		if err := copyFile(p.layout.Abs(rel), p.layout.Abs(out)); err != nil {
			return zerr.With(err, "path", rel)
		}
		written = append(written, p.served(out))
		return nil
	})
	if err != nil {
		return err
	}

	p.Reloader.Notify(written...)
	return nil
}

// Sprite merges icon and logo SVGs into one symbol sprite.
func (p *Pipeline) Sprite(_ context.Context) error {
	icons, err := p.resolve(p.layout.InSource("images/{icon-*,logo-*}.svg"))
	if err != nil || len(icons) == 0 {
		return err
	}

	paths := make([]string, len(icons))
	for i, rel := range icons {
		paths[i] = p.layout.Abs(rel)
	}

	sprite, err := p.Sprites.Build(paths)
	if err != nil {
		return err
	}

	out := p.layout.InOutput("images/sprite.svg")
	if err := write(p.layout.Abs(out), sprite); err != nil {
		return err
	}
	p.Reloader.Notify(p.served(out))
	return nil
}

// Clean removes the build directory.
func (p *Pipeline) Clean(_ context.Context) error {
	if err := os.RemoveAll(p.layout.OutputDir()); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", p.layout.OutputDir())
	}
	return nil
}

func copyFile(src, dst string) error {
	// #nosec G304 -- src is a resolved input below the source directory
	in, err := os.Open(src)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFileReadFailed.Error())
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}
	// #nosec G304 -- dst mirrors src inside the build directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}
	if err := out.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}
	return nil
}
