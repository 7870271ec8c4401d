package pipeline_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestHTML(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/index.html":        `<include src="src/partials/nav.html"></include><p>home</p>`,
		"src/about.html":        `<p>about</p>`,
		"src/partials/nav.html": `<nav></nav>`,
	})

	f.includer.EXPECT().Include(gomock.Any(), f.root).DoAndReturn(func(doc []byte, _ string) ([]byte, error) {
		return bytes.ReplaceAll(doc, []byte(`<include src="src/partials/nav.html"></include>`), []byte("<nav></nav>")), nil
	}).Times(2)
	f.minifier.EXPECT().Minify("text/html", gomock.Any()).DoAndReturn(func(_ string, doc []byte) ([]byte, error) {
		return append([]byte("<!--min-->"), doc...), nil
	}).Times(2)
	gomock.InOrder(
		f.reloader.EXPECT().Notify("about.html"),
		f.reloader.EXPECT().Notify("index.html"),
	)

	require.NoError(t, f.pipeline().HTML(t.Context()))

	assert.Equal(t, "<!--min--><nav></nav><p>home</p>", f.read(t, "build/index.html"))
	assert.Equal(t, "<!--min--><p>about</p>", f.read(t, "build/about.html"))
	assert.Equal(t, []string{"build/about.html", "build/index.html"}, f.tree(t, "build"))
}

func TestHTML_IncludeFailure(t *testing.T) {
	f := newFixture(t, map[string]string{"src/index.html": `<include src="missing.html">`})
	f.includer.EXPECT().Include(gomock.Any(), f.root).Return(nil, domain.ErrIncludeFailed)

	err := f.pipeline().HTML(t.Context())
	require.ErrorContains(t, err, domain.ErrIncludeFailed.Error())
}

func TestTasks_NoInputsAreNoOps(t *testing.T) {
	f := newFixture(t, map[string]string{"README.md": "x"})
	p := f.pipeline()

	for name, run := range map[string]func() error{
		"html":    func() error { return p.HTML(t.Context()) },
		"styles":  func() error { return p.Styles(t.Context()) },
		"scripts": func() error { return p.Scripts(t.Context()) },
		"copy":    func() error { return p.Copy(t.Context()) },
		"sprite":  func() error { return p.Sprite(t.Context()) },
		"images":  func() error { return p.Images(t.Context()) },
		"webp":    func() error { return p.WebP(t.Context()) },
		"clean":   func() error { return p.Clean(t.Context()) },
	} {
		require.NoError(t, run(), name)
	}
	assert.Empty(t, f.executor.tools())
}

func TestStyles(t *testing.T) {
	f := newFixture(t, map[string]string{"src/styles/index.scss": "$c: red; body { color: $c; }"})
	sheet := domain.Stylesheet{CSS: "body{color:red}", SourceMap: `{"version":3}`}

	f.sass.EXPECT().Compile(gomock.Any(), domain.SassInput{
		Entry:  f.abs("src/styles/index.scss"),
		Binary: "sass",
	}).Return(sheet, nil)
	f.bundler.EXPECT().BundleStyles(domain.StyleBundle{
		Root:       f.root,
		Stylesheet: sheet,
		ResolveDir: f.abs("src/styles"),
		Outfile:    f.abs("build/styles/index.css"),
	}).Return([]domain.OutputFile{
		{Path: f.abs("build/styles/index.css"), Contents: []byte("body{color:red}")},
		{Path: f.abs("build/styles/index.css.map"), Contents: []byte("{}")},
	}, nil)
	f.reloader.EXPECT().Notify("styles/index.css")

	require.NoError(t, f.pipeline().Styles(t.Context()))
	assert.Equal(t, []string{"build/styles/index.css", "build/styles/index.css.map"}, f.tree(t, "build"))
}

func TestStyles_SassFailureIsLogged(t *testing.T) {
	f := newFixture(t, map[string]string{"src/styles/index.scss": "body {"})

	f.sass.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(domain.Stylesheet{}, domain.ErrSassCompileFailed)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), domain.ErrSassCompileFailed.Error())
	})

	require.NoError(t, f.pipeline().Styles(t.Context()))
	assert.NoDirExists(t, f.abs("build"))
}

func TestStyles_BundleFailurePropagates(t *testing.T) {
	f := newFixture(t, map[string]string{"src/styles/index.scss": "body {}"})

	f.sass.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(domain.Stylesheet{CSS: "@import 'x.css';"}, nil)
	f.bundler.EXPECT().BundleStyles(gomock.Any()).Return(nil, domain.ErrBundleFailed)

	require.ErrorContains(t, f.pipeline().Styles(t.Context()), domain.ErrBundleFailed.Error())
}

func TestScripts(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/scripts/index.js":  "import './menu.js'",
		"src/scripts/menu.js":   "export {}",
		"src/scripts/legacy.js": "var x",
	})

	f.bundler.EXPECT().BundleScript(domain.ScriptBundle{
		Root:   f.root,
		Entry:  f.abs("src/scripts/index.js"),
		Outdir: f.abs("build/scripts"),
	}).Return([]domain.OutputFile{
		{Path: f.abs("build/scripts/index.js"), Contents: []byte("(()=>{})();")},
		{Path: f.abs("build/scripts/index.js.map"), Contents: []byte("{}")},
	}, nil)
	f.reloader.EXPECT().Notify("scripts/index.js")

	require.NoError(t, f.pipeline().Scripts(t.Context()))
	assert.Equal(t, "(()=>{})();", f.read(t, "build/scripts/index.js"))
}

func TestCopy_NotifiesOncePerBatch(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/fonts/inter/inter.woff2": "font",
		"src/images/photo.jpg":        "jpg",
		"src/images/icon-a.svg":       "<svg/>",
		"src/favicon.ico":             "ico",
		"src/notes.txt":               "skip",
	})

	f.reloader.EXPECT().Notify(
		"favicon.ico",
		"fonts/inter/inter.woff2",
		"images/icon-a.svg",
		"images/photo.jpg",
	)

	require.NoError(t, f.pipeline().Copy(t.Context()))
	assert.Equal(t, []string{
		"build/favicon.ico",
		"build/fonts/inter/inter.woff2",
		"build/images/icon-a.svg",
		"build/images/photo.jpg",
	}, f.tree(t, "build"))
	assert.Equal(t, "font", f.read(t, "build/fonts/inter/inter.woff2"))
}

func TestSprite(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/images/icon-a.svg": "<svg/>",
		"src/images/icon-b.svg": "<svg/>",
		"src/images/logo-x.svg": "<svg/>",
		"src/images/photo.svg":  "<svg/>",
	})

	f.sprites.EXPECT().Build([]string{
		f.abs("src/images/icon-a.svg"),
		f.abs("src/images/icon-b.svg"),
		f.abs("src/images/logo-x.svg"),
	}).Return([]byte("<svg>sprite</svg>"), nil)
	f.reloader.EXPECT().Notify("images/sprite.svg")

	require.NoError(t, f.pipeline().Sprite(t.Context()))
	assert.Equal(t, "<svg>sprite</svg>", f.read(t, "build/images/sprite.svg"))
}

func TestClean(t *testing.T) {
	f := newFixture(t, map[string]string{
		"build/index.html":       "x",
		"build/styles/index.css": "x",
		"src/index.html":         "x",
	})

	require.NoError(t, f.pipeline().Clean(t.Context()))
	assert.NoDirExists(t, f.abs("build"))
	assert.FileExists(t, f.abs("src/index.html"))
}

func TestImages(t *testing.T) {
	f := newFixture(t, map[string]string{
		"build/images/a.png":        "original png bytes",
		"build/images/nested/b.jpg": "original jpg bytes",
		"build/images/c.svg":        "<svg>   </svg>",
		"build/images/d.gif":        "gif",
	})
	f.minifier.EXPECT().Minify("image/svg+xml", []byte("<svg>   </svg>")).Return([]byte("<svg/>"), nil)

	p := f.pipeline()
	require.NoError(t, p.Images(t.Context()))

	assert.Equal(t, "optipng", f.read(t, "build/images/a.png"))
	assert.Equal(t, "cjpeg", f.read(t, "build/images/nested/b.jpg"))
	assert.Equal(t, "<svg/>", f.read(t, "build/images/c.svg"))
	assert.Equal(t, "gif", f.read(t, "build/images/d.gif"))
	assert.Equal(t, []string{"cjpeg", "optipng"}, f.executor.tools())

	png, ok := f.executor.find("optipng", "a.png")
	require.True(t, ok)
	assert.Equal(t, []string{"-o3", "-quiet", "-clobber"}, png.Args[:3])

	jpg, ok := f.executor.find("cjpeg", "b.jpg")
	require.True(t, ok)
	assert.Equal(t, []string{"-quality", "80", "-progressive"}, jpg.Args[:3])

	// Unchanged since the last run: nothing is optimized again.
	require.NoError(t, p.Images(t.Context()))
	assert.Len(t, f.executor.tools(), 2)

	// A rebuilt image is optimized again.
	writeFile(t, f.root, "build/images/a.png", "rebuilt png bytes")
	require.NoError(t, p.Images(t.Context()))
	assert.Equal(t, []string{"cjpeg", "optipng", "optipng"}, f.executor.tools())
	assert.Equal(t, []string{"build/images/a.png", "build/images/c.svg", "build/images/d.gif", "build/images/nested/b.jpg"},
		f.tree(t, "build"), "no temporary files are left behind")
}

func TestImages_KeepsSmallerFile(t *testing.T) {
	f := newFixture(t, map[string]string{"build/images/tiny.png": "png"})

	require.NoError(t, f.pipeline().Images(t.Context()))
	assert.Equal(t, "png", f.read(t, "build/images/tiny.png"))
	assert.DirExists(t, f.abs(".press/store/images"))
}

func TestImages_OptimizedFilesAreWorldReadable(t *testing.T) {
	f := newFixture(t, map[string]string{
		"build/images/a.png": "original png bytes",
		"build/images/c.svg": "<svg>   </svg>",
	})
	f.minifier.EXPECT().Minify("image/svg+xml", gomock.Any()).Return([]byte("<svg/>"), nil)

	require.NoError(t, f.pipeline().Images(t.Context()))

	for _, rel := range []string{"build/images/a.png", "build/images/c.svg"} {
		info, err := os.Stat(f.abs(rel))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm(), rel)
	}
}

func TestImages_ToolFailure(t *testing.T) {
	f := newFixture(t, map[string]string{"build/images/a.png": "original png bytes"})
	f.executor.err = errors.New("optipng: not found")

	err := f.pipeline().Images(t.Context())
	require.ErrorContains(t, err, domain.ErrImageOptimizeFailed.Error())
	assert.NoDirExists(t, f.abs(".press/store"))
}

func TestWebP(t *testing.T) {
	f := newFixture(t, map[string]string{
		"build/images/a.png":        "png",
		"build/images/nested/b.jpg": "jpg",
		"build/images/c.svg":        "svg",
	})

	require.NoError(t, f.pipeline().WebP(t.Context()))
	assert.Equal(t, []string{"cwebp", "cwebp"}, f.executor.tools())

	cmd, ok := f.executor.find("cwebp", "a.webp")
	require.True(t, ok)
	assert.Equal(t, []string{"-quiet", "-q", "90", f.abs("build/images/a.png"), "-o", f.abs("build/images/a.webp")}, cmd.Args)
	assert.FileExists(t, f.abs("build/images/nested/b.webp"))
	assert.NoFileExists(t, f.abs("build/images/c.webp"))
}

func TestTools_FromConfig(t *testing.T) {
	f := newFixture(t, map[string]string{"build/images/a.png": "png"})
	f.cfg.Tools.CWebP = "/opt/bin/cwebp"

	require.NoError(t, f.pipeline().WebP(t.Context()))
	assert.Equal(t, []string{"/opt/bin/cwebp"}, f.executor.tools())
}
