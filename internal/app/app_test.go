package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/adapters/cas"
	"go.trai.ch/press/internal/adapters/detector"
	"go.trai.ch/press/internal/adapters/devserver"
	"go.trai.ch/press/internal/adapters/fs"
	"go.trai.ch/press/internal/app"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/core/ports/mocks"
	"go.trai.ch/press/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// fakeWatcher never reports events; its sequence ends on Stop.
type fakeWatcher struct {
	mu       sync.Mutex
	root     string
	startErr error
	stopOnce sync.Once
	stop     chan struct{}
	started  chan struct{}
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{stop: make(chan struct{}), started: make(chan struct{})}
}

func (w *fakeWatcher) Start(_ context.Context, root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.root = root
	close(w.started)
	return w.startErr
}

func (w *fakeWatcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stop) })
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(func(ports.WatchEvent) bool) { <-w.stop }
}

func (w *fakeWatcher) startedAt() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

func (w *fakeWatcher) stopped() bool {
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

type harness struct {
	root     string
	cfg      *domain.Config
	out      *bytes.Buffer
	watcher  *fakeWatcher
	includer *mocks.MockIncluder
	minifier *mocks.MockMinifier
	logger   *mocks.MockLogger
	app      *app.App
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}

	cfg := domain.DefaultConfig(root)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(cfg, nil).AnyTimes()

	h := &harness{
		root:     root,
		cfg:      cfg,
		out:      new(bytes.Buffer),
		watcher:  newFakeWatcher(),
		includer: mocks.NewMockIncluder(ctrl),
		minifier: mocks.NewMockMinifier(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	h.app = app.New(loader, pipeline.Deps{
		Resolver: fs.NewResolver(fs.NewWalker()),
		Hasher:   fs.NewHasher(),
		Store:    cas.NewStore(),
		Executor: mocks.NewMockExecutor(ctrl),
		Includer: h.includer,
		Minifier: h.minifier,
		Sass:     mocks.NewMockSassCompiler(ctrl),
		Bundler:  mocks.NewMockBundler(ctrl),
		Sprites:  mocks.NewMockSpriteBuilder(ctrl),
		Logger:   h.logger,
	}, devserver.NewHub(), h.watcher).
		WithOutput(h.out).
		WithMode(detector.ModeCI)
	return h
}

func (h *harness) passthroughHTML() {
	h.includer.EXPECT().Include(gomock.Any(), h.root).DoAndReturn(func(doc []byte, _ string) ([]byte, error) {
		return doc, nil
	}).AnyTimes()
	h.minifier.EXPECT().Minify("text/html", gomock.Any()).DoAndReturn(func(_ string, doc []byte) ([]byte, error) {
		return doc, nil
	}).AnyTimes()
}

func TestApp_RunTask(t *testing.T) {
	h := newHarness(t, map[string]string{"src/index.html": "<p>home</p>"})
	h.passthroughHTML()

	require.NoError(t, h.app.Run(t.Context(), []string{"html"}, app.RunOptions{}))

	assert.FileExists(t, filepath.Join(h.root, "build", "index.html"))
	assert.Contains(t, h.out.String(), "[html] Starting...")
	assert.Contains(t, h.out.String(), "[html] ✓ Completed in")
}

func TestApp_RunQuiet(t *testing.T) {
	h := newHarness(t, map[string]string{"src/index.html": "<p>home</p>"})
	h.passthroughHTML()

	require.NoError(t, h.app.Run(t.Context(), []string{"clean", "html"}, app.RunOptions{Quiet: true}))
	assert.Empty(t, h.out.String())
}

func TestApp_RunFailure(t *testing.T) {
	h := newHarness(t, map[string]string{"src/index.html": `<include src="nope.html">`})
	h.includer.EXPECT().Include(gomock.Any(), h.root).Return(nil, domain.ErrIncludeFailed)

	err := h.app.Run(t.Context(), []string{"html"}, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	assert.Contains(t, h.out.String(), "[html] ✗ Failed after")
}

func TestApp_RunQuietFailureIsLogged(t *testing.T) {
	h := newHarness(t, map[string]string{"src/index.html": `<include src="nope.html">`})
	h.includer.EXPECT().Include(gomock.Any(), h.root).Return(nil, domain.ErrIncludeFailed)
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, `task "html" failed`)
		assert.ErrorContains(t, err, domain.ErrIncludeFailed.Error())
	})

	err := h.app.Run(t.Context(), []string{"html"}, app.RunOptions{Quiet: true})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Empty(t, h.out.String())
}

func TestApp_RunUnknownTask(t *testing.T) {
	h := newHarness(t, nil)

	err := h.app.Run(t.Context(), []string{"deploy"}, app.RunOptions{})
	require.ErrorContains(t, err, domain.ErrTaskNotFound.Error())
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Empty(t, h.out.String())
}

func TestApp_RunConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(nil, domain.ErrInvalidPort)

	a := app.New(loader, pipeline.Deps{Logger: mocks.NewMockLogger(ctrl)}, devserver.NewHub(), newFakeWatcher())
	err := a.Run(t.Context(), nil, app.RunOptions{})
	require.ErrorContains(t, err, domain.ErrInvalidPort.Error())
}

func TestApp_RunDefaultUntilCancelled(t *testing.T) {
	h := newHarness(t, map[string]string{"src/index.html": "<p>home</p>"})
	h.passthroughHTML()

	ctx, cancel := context.WithCancel(t.Context())
	opened := make(chan string, 1)
	h.app.WithMode(detector.ModeInteractive).WithBrowser(func(url string) error {
		opened <- url
		cancel()
		return nil
	})

	require.NoError(t, h.app.Run(ctx, nil, app.RunOptions{Open: true}))

	assert.Contains(t, <-opened, "http://127.0.0.1:")
	assert.Equal(t, h.root, h.watcher.startedAt())
	assert.True(t, h.watcher.stopped())
	assert.FileExists(t, filepath.Join(h.root, "build", "index.html"))
	assert.Contains(t, h.out.String(), "[default] ✓ Completed in")
}

func TestApp_RunDefaultServerFailureStopsWatcher(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	h := newHarness(t, nil)
	h.cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

	err = h.app.Run(t.Context(), []string{"default"}, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Contains(t, err.Error(), domain.ErrServerListenFailed.Error())
	assert.True(t, h.watcher.stopped())
}

func TestApp_RunDefaultWatcherFailureStopsServer(t *testing.T) {
	h := newHarness(t, nil)
	h.watcher.startErr = errors.New("too many open files")

	err := h.app.Run(t.Context(), nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Contains(t, err.Error(), "too many open files")
}

func TestApp_OpenRequiresInteractiveTerminal(t *testing.T) {
	h := newHarness(t, nil)

	ctx, cancel := context.WithCancel(t.Context())
	h.app.WithBrowser(func(string) error {
		t.Error("browser opened in CI mode")
		return nil
	})

	go func() {
		<-h.watcher.started
		cancel()
	}()

	h.cfg.Server.Open = true
	require.NoError(t, h.app.Run(ctx, nil, app.RunOptions{}))
}

func TestApp_Tasks(t *testing.T) {
	h := newHarness(t, nil)

	var buf bytes.Buffer
	require.NoError(t, h.app.Tasks(t.Context(), &buf))

	out := buf.String()
	for _, name := range []string{"build", "clean", "copy", "default", "html", "images", "imgproc", "scripts", "sprite", "styles", "webp"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Build, then watch and serve with live reload")
	assert.Contains(t, out, "clean    Remove the build directory")
}

func TestApp_Clean(t *testing.T) {
	h := newHarness(t, map[string]string{
		"build/index.html":             "x",
		".press/store/images/abc.json": "{}",
		"src/index.html":               "x",
	})

	require.NoError(t, h.app.Clean(t.Context(), app.CleanOptions{}))
	assert.NoDirExists(t, filepath.Join(h.root, "build"))
	assert.DirExists(t, filepath.Join(h.root, ".press"))

	require.NoError(t, h.app.Clean(t.Context(), app.CleanOptions{All: true}))
	assert.NoDirExists(t, filepath.Join(h.root, ".press"))
	assert.FileExists(t, filepath.Join(h.root, "src", "index.html"))
}
