package pipeline

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	jpegQuality = "80"
	webpQuality = "90"
)

// Images optimizes built images in place. Files whose content still matches
// their stored record are skipped.
func (p *Pipeline) Images(ctx context.Context) error {
	images, err := p.resolve(p.layout.InOutput("images/**/*.{png,jpg,svg}"))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, rel := range images {
		g.Go(func() error {
			return p.optimize(gctx, rel)
		})
	}
	return g.Wait()
}

func (p *Pipeline) optimize(ctx context.Context, rel string) error {
	abs := p.layout.Abs(rel)

	hash, err := p.Hasher.ComputeFileHash(abs)
	if err != nil {
		return err
	}
	record, err := p.Store.Get(p.layout.Root, rel)
	if err != nil {
		return err
	}
	if record != nil && record.Hash == hash {
		return nil
	}

	if err := p.optimizeFile(ctx, abs); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImageOptimizeFailed.Error()), "path", rel)
	}

	if hash, err = p.Hasher.ComputeFileHash(abs); err != nil {
		return err
	}
	return p.Store.Put(p.layout.Root, domain.ImageRecord{Path: rel, Hash: hash, Timestamp: time.Now()})
}

// optimizeFile writes an optimized candidate to the state directory and keeps
// whichever of the two is smaller.
func (p *Pipeline) optimizeFile(ctx context.Context, abs string) error {
	ext := path.Ext(abs)
	tmp, err := p.tempFile(ext)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	switch ext {
	case ".png":
		if err := p.Executor.Execute(ctx, domain.Command{
			Name: p.tools.OptiPNG,
			Args: []string{"-o3", "-quiet", "-clobber", "-out", tmp, abs},
			Dir:  p.layout.Root,
		}); err != nil {
			return err
		}
	case ".jpg":
		if err := p.Executor.Execute(ctx, domain.Command{
			Name: p.tools.CJPEG,
			Args: []string{"-quality", jpegQuality, "-progressive", "-outfile", tmp, abs},
			Dir:  p.layout.Root,
		}); err != nil {
			return err
		}
	case ".svg":
		// #nosec G304 -- abs is a resolved image below the build directory
		src, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		minified, err := p.Minifier.Minify(mediaSVG, src)
		if err != nil {
			return err
		}
		if err := os.WriteFile(tmp, minified, domain.FilePerm); err != nil {
			return err
		}
	default:
		return nil
	}

	return keepSmaller(abs, tmp)
}

// tempFile reserves an empty file under .press/tmp. Candidates stay out of the
// build directory so a concurrent webp run never picks them up.
func (p *Pipeline) tempFile(ext string) (string, error) {
	dir := filepath.Join(p.layout.StateDir(), "tmp")
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "image-*"+ext)
	if err != nil {
		return "", err
	}
	return f.Name(), f.Close()
}

func keepSmaller(abs, candidate string) error {
	orig, err := os.Stat(abs)
	if err != nil {
		return err
	}
	opt, err := os.Stat(candidate)
	if err != nil {
		return err
	}
	if opt.Size() == 0 || opt.Size() >= orig.Size() {
		return nil
	}
	// Temp files are created 0600; the served copy keeps the build permissions.
	if err := os.Chmod(candidate, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(candidate, abs)
}

// WebP writes a WebP sibling for every built PNG and JPEG image.
func (p *Pipeline) WebP(ctx context.Context) error {
	images, err := p.resolve(p.layout.InOutput("images/**/*.{png,jpg}"))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, rel := range images {
		g.Go(func() error {
			abs := p.layout.Abs(rel)
			out := strings.TrimSuffix(abs, path.Ext(abs)) + ".webp"
			err := p.Executor.Execute(gctx, domain.Command{
				Name: p.tools.CWebP,
				Args: []string{"-quiet", "-q", webpQuality, abs, "-o", out},
				Dir:  p.layout.Root,
			})
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrImageOptimizeFailed.Error()), "path", rel)
			}
			return nil
		})
	}
	return g.Wait()
}
